package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// cpfCnpj accepts an optional CPF (11 digits) or CNPJ (14 digits), with or
// without formatting.
func cpfCnpj(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if strings.TrimSpace(value) == "" {
		return true
	}

	digits := stripNonDigits(value)
	return len(digits) == 11 || len(digits) == 14
}

// brPhone accepts an optional Brazilian phone number, 10 or 11 digits once
// formatting is stripped.
func brPhone(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if strings.TrimSpace(value) == "" {
		return true
	}

	digits := stripNonDigits(value)
	return len(digits) == 10 || len(digits) == 11
}

func RegisterValidation() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("error getting validation engine")
	}

	if err := v.RegisterValidation("cpfcnpj", cpfCnpj); err != nil {
		return err
	}
	return v.RegisterValidation("brphone", brPhone)
}
