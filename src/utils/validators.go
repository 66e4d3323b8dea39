package utils

import (
	"receh48/src/types"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var ServiceTypeValidator validator.Func = func(fl validator.FieldLevel) bool {
	v, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := types.ParseServiceType(v)
	return err == nil
}

// TrimMin checks the rune length of the trimmed string against the tag param.
var TrimMin validator.Func = func(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) >= n
}

var TrimMax validator.Func = func(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(fl.Field().String())) <= n
}

func RegisterValidations(v *validator.Validate) {
	v.RegisterValidation("servicetype", ServiceTypeValidator)
	v.RegisterValidation("trimmin", TrimMin)
	v.RegisterValidation("trimmax", TrimMax)
}
