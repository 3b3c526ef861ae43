// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"pennywise/internal/models"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("expense_category", validateExpenseCategory)
		_ = v.RegisterValidation("frequency_class", validateFrequencyClass)
	}
}

// validateExpenseCategory restricts a field to the fixed expense taxonomy.
func validateExpenseCategory(fl validator.FieldLevel) bool {
	return models.Category(fl.Field().String()).Valid()
}

// validateFrequencyClass restricts a field to the Monthly/Daily pair.
func validateFrequencyClass(fl validator.FieldLevel) bool {
	return models.Frequency(fl.Field().String()).Valid()
}
