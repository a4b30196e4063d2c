// Package validation turns go-playground/validator struct tags into
// domain.ValidationError values with stable, human-readable messages.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/bookstore/catalog-api/internal/core/domain"
)

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// messages maps "<Field>.<tag>" to the message reported for that failure.
var messages = map[string]string{
	"Email.required":         "Email is required",
	"Email.email":            "Please provide a valid email",
	"Password.required":      "Password is required",
	"Password.min":           "Password must be at least 6 characters",
	"Password.maxbytes":      "Password cannot be longer than 72 bytes",
	"Title.required":         "Title is required",
	"Author.required":        "Author is required",
	"Category.required":      "Category is required",
	"Price.required":         "Price is required",
	"Price.isnumber":         "Price must be a number",
	"Price.min":              "Price cannot be negative",
	"Rating.required":        "Rating is required",
	"Rating.isnumber":        "Rating must be a number",
	"Rating.min":             "Rating cannot be less than 0",
	"Rating.max":             "Rating cannot be more than 5",
	"PublishedDate.required": "Published date is required",
	"PublishedDate.isodate":  "Published date must be a valid date",
}

// Validator is safe for concurrent use.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	// maxbytes bounds the encoded length; "max" on strings counts runes.
	_ = v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	_ = v.RegisterValidation("isnumber", func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() == reflect.Float64
	})
	v.RegisterCustomTypeFunc(numberValue, Number{})
	return &Validator{v: v}
}

// Struct validates s and returns nil or a *domain.ValidationError listing
// every violation in field order.
func (val *Validator) Struct(s any) error {
	err := val.v.Struct(s)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &domain.ValidationError{Violations: make([]domain.Violation, 0, len(ve))}
	for _, fe := range ve {
		out.Violations = append(out.Violations, domain.Violation{
			Field:   lowerFirst(fe.StructField()),
			Message: fieldError(fe),
		})
	}
	return out
}

// ParseDate accepts a calendar date or an RFC 3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

func fieldError(fe validator.FieldError) string {
	if msg, ok := messages[fe.StructField()+"."+fe.Tag()]; ok {
		return msg
	}

	field := lowerFirst(fe.StructField())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "maxbytes":
		return fmt.Sprintf("%s must be at most %s bytes", field, fe.Param())
	case "isnumber":
		return field + " must be a number"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
