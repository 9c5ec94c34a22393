package utils

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("trimmed_min2", validateTrimmedMin2); err != nil {
		panic(err)
	}
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// validateTrimmedMin2 rejects names that are shorter than two characters once trimmed.
func validateTrimmedMin2(fl validator.FieldLevel) bool {
	return len([]rune(strings.TrimSpace(fl.Field().String()))) >= 2
}
