package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/Comraich/sortr-sub001/models"
	"github.com/go-playground/validator/v10"
)

const (
	tagResourceKind = "resource_kind"
	tagPermission   = "permission"
)

// StructValidator validates request bodies by their `validate` struct tags
// and reports every violated field by its JSON name.
type StructValidator struct {
	validate *validator.Validate
}

// NewStructValidator registers the domain tags and returns a ready
// validator. It is safe for concurrent use.
func NewStructValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(jsonFieldName)
	v.RegisterCustomTypeFunc(optionalIDValue, models.OptionalID{})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation(tagResourceKind, func(fl validator.FieldLevel) bool {
		return models.ResourceKind(fl.Field().String()).Shareable()
	})
	_ = v.RegisterValidation(tagPermission, func(fl validator.FieldLevel) bool {
		return models.Permission(fl.Field().String()).Valid()
	})

	return &StructValidator{validate: v}
}

// Validate checks obj, a struct or pointer to struct. When fields are given,
// only those Go field names (dotted for nested structs) are checked.
func (v *StructValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, invalid.Type)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := &ValidationError{Fields: make([]models.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, models.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: messageFor(fe),
		})
	}

	return out
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

// optionalIDValue exposes an OptionalID to the tag rules as a nullable
// int64, so absent and null values satisfy omitempty.
func optionalIDValue(field reflect.Value) any {
	id, ok := field.Interface().(models.OptionalID)
	if !ok {
		return nil
	}
	return id.Ptr()
}

func messageFor(fe validator.FieldError) string {
	isText := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isText {
			return fmt.Sprintf("must be at least %s characters long", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max":
		if isText {
			return fmt.Sprintf("must be at most %s characters long", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "gt":
		return "must be greater than " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "email":
		return "must be a valid email address"
	case "alphanumunicode":
		return "must contain only letters and digits"
	case tagResourceKind:
		return "must be one of item, box, location"
	case tagPermission:
		return "must be view or edit"
	}
	return fmt.Sprintf("failed the %q rule", fe.Tag())
}
