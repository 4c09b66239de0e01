package loaders

import (
	"fmt"
	"os"
	"reflect"
	"strings"
)

// reads config values from command line arguments of the form
// --name=value or --name value, matched against the `flag` struct tag.
// the stdlib flag package is avoided on purpose: each config section is
// loaded separately, and flag.Parse can only run once per process.
type FlagLoader struct {
	args []string
}

func NewFlagLoader() *FlagLoader {
	return &FlagLoader{
		args: os.Args[1:],
	}
}

func (f *FlagLoader) Load(dest any) error {
	val := reflect.ValueOf(dest).Elem()
	typ := val.Type()

	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("unable to load config into destination: destination must be a struct pointer")
	}

	flags := f.parseArgs()

	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := typ.Field(i)

		if !field.CanSet() {
			continue
		}

		tag, ok := fieldType.Tag.Lookup("flag")
		if !ok {
			continue
		}

		flagValue, ok := flags[tag]
		if ok {
			if err := setConfigField(field, flagValue); err != nil {
				return fmt.Errorf("unable to load config: %s", err.Error())
			}
		}
	}

	return nil
}

func (f *FlagLoader) parseArgs() map[string]string {
	flags := make(map[string]string)

	for i := 0; i < len(f.args); i++ {
		arg := f.args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		arg = strings.TrimLeft(arg, "-")

		if name, value, found := strings.Cut(arg, "="); found {
			flags[name] = value
			continue
		}

		// --name value form, bare flags are treated as booleans
		if i+1 < len(f.args) && !strings.HasPrefix(f.args[i+1], "-") {
			flags[arg] = f.args[i+1]
			i++
		} else {
			flags[arg] = "true"
		}
	}

	return flags
}
