package handler

import (
	"fmt"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the domain specific binding tags to gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	if err := v.RegisterValidation("stage", func(fl validator.FieldLevel) bool {
		return domain.Stage(fl.Field().String()).IsValid()
	}); err != nil {
		return err
	}

	return v.RegisterValidation("response_status", func(fl validator.FieldLevel) bool {
		return domain.RequestStatus(fl.Field().String()).IsResponse()
	})
}
