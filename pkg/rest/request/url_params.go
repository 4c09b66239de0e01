package request

import (
	"fmt"
	"net/url"
	"reflect"
	"strconv"
)

// Populates a struct object containing exported data members with the `param:""` tag set,
// with all the values that the urlValues contains. Be mindfull to only pass the query string, and not anything host related.
func MarshallParams[T any](urlValues url.Values, dest *T) error {
	val := reflect.ValueOf(dest).Elem()
	valType := val.Type()

	if valType.Kind() != reflect.Struct {
		return fmt.Errorf("cannot marshall params, destination is not a struct")
	}

	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := valType.Field(i)

		tag, tagOK := fieldType.Tag.Lookup("param")
		if !tagOK || !urlValues.Has(tag) {
			continue
		}

		value := urlValues.Get(tag)
		if value == "" {
			continue
		}

		if err := setField(field, value); err != nil {
			return fmt.Errorf("unable to marshall url params: %w", err)
		}
	}

	return nil
}

func UnMarshallParams[T any](params *T) url.Values {
	values := make(url.Values)
	val := reflect.ValueOf(params).Elem()
	if val.Kind() == reflect.Interface { // unwrap when called through any
		val = val.Elem()
	}
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}
	valType := val.Type()

	if valType.Kind() != reflect.Struct {
		return values
	}

	for i := range val.NumField() {
		field := val.Field(i)
		fieldType := valType.Field(i)

		tag, ok := fieldType.Tag.Lookup("param")
		if !ok {
			continue
		}

		switch field.Kind() {
		case reflect.String:
			values.Add(tag, field.String())
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			values.Add(tag, strconv.FormatInt(field.Int(), 10))
		case reflect.Bool:
			values.Add(tag, strconv.FormatBool(field.Bool()))
		}
	}

	return values
}

// populates the field with the value of value
func setField(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		num, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return fmt.Errorf("unable to convert value: %w", err)
		}
		field.SetInt(num)
	case reflect.Bool:
		boolean, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("unable to convert value: %w", err)
		}
		field.SetBool(boolean)
	}

	return nil
}
