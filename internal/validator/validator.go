// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("debt_frequency", validateDebtFrequency)
		_ = v.RegisterValidation("movement_type", validateMovementType)
	}
}

func validateDebtFrequency(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "monthly", "biweekly", "weekly":
		return true
	}
	return false
}

func validateMovementType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "contribution", "expense", "debt", "saving", "surplus_transfer", "adjustment":
		return true
	}
	return false
}
