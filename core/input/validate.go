package input

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"infra-estimator/core/types"
	"infra-estimator/internal/errors"
)

// ValidationRule registers a custom tag on a validator
type ValidationRule struct {
	Rule func(v *validator.Validate)
}

// Validator wraps go-playground/validator with the estimator's rules.
// Field names in errors are the json names of the offending fields.
type Validator struct {
	validator *validator.Validate
}

// NewValidator returns a validator with every document rule registered
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	for _, r := range DocumentValidationRules() {
		r.Rule(v)
	}
	return &Validator{validator: v}
}

// Struct validates s and flattens failures into one readable error
func (v *Validator) Struct(s any) error {
	err := v.validator.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Internal("validate", err)
	}

	fields := make([]string, 0, len(verrs))
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fieldName(fe))
		msgs = append(msgs, describe(fe))
	}
	return errors.Invalid(fields, strings.Join(msgs, "; "))
}

func fieldName(fe validator.FieldError) string {
	return strings.TrimPrefix(fe.Namespace(), "Document.")
}

func describe(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be >= %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be <= %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "service":
		return fmt.Sprintf("%s: unknown service %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

// DocumentValidationRules are the custom tags used by Document
func DocumentValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("service", serviceValidator),
		},
	}
}

func serviceValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := types.ParseService(val)
	return err == nil
}
