package middleware

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

// NewValidator reports field errors under their wire names, taken from the
// first of the json, param, query or header tags that is set.
func NewValidator() *Validator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	wireTags := []string{"json", "param", "query", "header"}
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range wireTags {
			name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return ""
	})

	return &Validator{validate: validate}
}

func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}
