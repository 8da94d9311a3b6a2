// Package forms holds the dashboard's input forms and their validation
// rules. Each form reports at most one message per field, in field order.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DateLayout is how dates are printed in validation messages and parsed
// from terminal input.
const DateLayout = "2006-01-02"

var digitsRe = regexp.MustCompile(`^\d+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// digits: non-empty string of ASCII digits
	_ = v.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return digitsRe.MatchString(fl.Field().String())
	})
	return v
}

// Form is implemented by every form in this package.
type Form interface {
	message(fe validator.FieldError) string
}

// ValidationError lists the failing fields of a form, keyed by JSON field
// name.
type ValidationError struct {
	Fields map[string]string
	order  []string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.order))
	for _, f := range e.order {
		parts = append(parts, f+": "+e.Fields[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldNames returns the failing fields in form order.
func (e *ValidationError) FieldNames() []string {
	return append([]string(nil), e.order...)
}

// Validate checks every field of f. It returns nil or a *ValidationError.
func Validate(f Form) error {
	return toValidationError(f, validate.Struct(f))
}

// ValidateField checks a single field, named by its JSON name. Cross-field
// rules still see the other fields' current values.
func ValidateField(f Form, field string) error {
	name, ok := structFieldName(reflect.TypeOf(f), field)
	if !ok {
		return fmt.Errorf("unknown field %q", field)
	}
	return toValidationError(f, validate.StructPartial(f, name))
}

func toValidationError(f Form, err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out.Fields[field]; seen {
			continue
		}
		out.Fields[field] = f.message(fe)
		out.order = append(out.order, field)
	}
	return out
}

func structFieldName(t reflect.Type, jsonName string) (string, bool) {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return "", false
	}
	for i := range t.NumField() {
		sf := t.Field(i)
		if strings.SplitN(sf.Tag.Get("json"), ",", 2)[0] == jsonName {
			return sf.Name, true
		}
	}
	return "", false
}
