package main

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var tagNamesOnce sync.Once

// registerValidatorTagNames makes validation errors report the request field
// name (json, then form) instead of the Go struct field name
func registerValidatorTagNames() {
	tagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name, _, _ := strings.Cut(field.Tag.Get(tag), ",")
				if name != "" && name != "-" {
					return name
				}
			}
			return field.Name
		})
	})
}

// validationErrors maps a binding error to field -> messages
func validationErrors(err error) map[string][]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		// Malformed body or a value of the wrong type
		return map[string][]string{"request": {"The request body is invalid."}}
	}

	out := make(map[string][]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = append(out[fe.Field()], validationMessage(fe))
	}
	return out
}

func validationMessage(fe validator.FieldError) string {
	field := fe.Field()
	numeric := fe.Kind() == reflect.Float64 || fe.Kind() == reflect.Int

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "min":
		if numeric {
			return fmt.Sprintf("The %s field must be at least %s.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s characters.", field, fe.Param())
	case "max":
		if numeric {
			return fmt.Sprintf("The %s field must not be greater than %s.", field, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s characters.", field, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be greater than or equal to %s.", field, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must be less than or equal to %s.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s field is invalid.", field)
	}
}
