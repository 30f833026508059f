package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

type Validator struct {
	validate *validator.Validate
}
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (ve ValidationErrors) Error() string {
	var messages []string
	for _, err := range ve.Errors {
		messages = append(messages, err.Message)
	}
	return strings.Join(messages, "; ")
}

// MissingFields возвращает поля, которые не переданы или переданы пустой строкой
func (ve ValidationErrors) MissingFields() []string {
	var fields []string
	for _, err := range ve.Errors {
		if err.Tag == "required" || err.Tag == "notblank" {
			fields = append(fields, err.Field)
		}
	}
	return fields
}

func New() *Validator {
	validate := validator.New()
	mustRegisterValidation(validate, "notblank", validators.NotBlank)
	// в ошибках используем имена полей из json-тегов, как их видит клиент
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return &Validator{validate: validate}
}

// паникует, если тег не удалось зарегистрировать
func mustRegisterValidation(validate *validator.Validate, tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("validator registration error: %v", err))
	}
}

func (v *Validator) Validate(request any) error {
	err := v.validate.Struct(request)
	if err != nil {
		var validateErrs validator.ValidationErrors
		if errors.As(err, &validateErrs) {
			return v.formatValidationErrors(validateErrs)
		}
		return err
	}
	return nil
}

func (v *Validator) formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors []ValidationError

	for _, err := range errs {
		validationError := ValidationError{
			Field:   err.Field(),
			Tag:     err.Tag(),
			Value:   fmt.Sprintf("%v", err.Value()),
			Message: v.getErrorMessage(err),
		}
		validationErrors = append(validationErrors, validationError)
	}

	return ValidationErrors{Errors: validationErrors}
}

func (v *Validator) getErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return fmt.Sprintf("Field '%s' required", err.Field())
	case "notblank":
		return fmt.Sprintf("Field '%s' must not be blank", err.Field())
	case "min":
		return fmt.Sprintf("Field '%s' must contain at least %s characters", err.Field(), err.Param())
	case "max":
		return fmt.Sprintf("Field '%s' must contain a maximum of %s characters", err.Field(), err.Param())
	case "gte":
		return fmt.Sprintf("Field '%s' must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("Field '%s' must be less than or equal to %s", err.Field(), err.Param())
	case "numeric":
		return fmt.Sprintf("Field '%s' must contain only numbers", err.Field())
	default:
		return fmt.Sprintf("Field '%s' contains an incorrect value", err.Field())
	}
}
