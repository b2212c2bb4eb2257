package repository

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/result"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func paramsValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		err := v.RegisterValidation("pricelevel", func(fl validator.FieldLevel) bool {
			return domain.PriceLevel(fl.Field().String()).Valid()
		})
		if err != nil {
			panic(fmt.Sprintf("register pricelevel validation: %v", err))
		}
		validate = v
	})
	return validate
}

// validateParams checks struct tags before any I/O. Violations are ValidationFailure.
func validateParams(params any) error {
	err := paramsValidator().Struct(params)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return result.NewError(result.ValidationFailure, err.Error())
	}
	return result.NewError(result.ValidationFailure, describeFieldError(fieldErrs[0]))
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min", "max":
		if fe.Kind().String() == "int" {
			return fmt.Sprintf("%s must be between 1 and 5", field)
		}
		return fmt.Sprintf("%s must not be empty", field)
	case "pricelevel":
		return fmt.Sprintf("%s must be one of $, $$, $$$, $$$$", field)
	case "latitude", "longitude":
		return fmt.Sprintf("%s is not a valid coordinate", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

func requireVenueID(venueID string) error {
	if strings.TrimSpace(venueID) == "" {
		return result.NewError(result.ValidationFailure, "venue id is required")
	}
	return nil
}
