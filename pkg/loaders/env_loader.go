package loaders

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type EnvLoader struct{}

func NewEnvloader() *EnvLoader {
	return &EnvLoader{}
}

func (e *EnvLoader) Load(dest any) error {
	return applyEnvTags(dest, os.LookupEnv)
}

// applyEnvTags walks dest's fields and assigns every field carrying an
// `env` tag from the lookup source. dest must be a struct pointer.
func applyEnvTags(dest any, lookup func(key string) (string, bool)) error {
	val := reflect.ValueOf(dest).Elem()
	typ := val.Type()

	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("unable to load config into destination: destination must be a struct pointer")
	}

	for i := range val.NumField() {
		field := val.Field(i)
		if !field.CanSet() {
			continue
		}

		tag, ok := typ.Field(i).Tag.Lookup("env")
		if !ok {
			continue
		}

		value, ok := lookup(tag)
		if !ok {
			continue
		}
		if err := setConfigField(field, value); err != nil {
			return fmt.Errorf("unable to load config: %s", err.Error())
		}
	}

	return nil
}

func setConfigField(field reflect.Value, value string) error {
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		dur, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(dur))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		num, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetInt(num)
	case reflect.Bool:
		boolean, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolean)
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			field.Set(reflect.ValueOf(strings.Split(value, ",")))
		}
	}
	return nil
}
