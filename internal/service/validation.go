package service

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/event-planner-api/internal/models"
)

func registerValidations(v *validator.Validate) {
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("event_category", func(fl validator.FieldLevel) bool {
		return models.EventCategory(strings.ToUpper(strings.TrimSpace(fl.Field().String()))).Valid()
	})
}
