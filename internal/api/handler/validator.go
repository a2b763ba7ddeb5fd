package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/userdesk/user-management/internal/core/domain"
)

var (
	nameRe    = regexp.MustCompile(`^[A-Za-z\s]+$`)
	contactRe = regexp.MustCompile(`^[+]?[\d\-()\s]{10,20}$`)
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
// Failures come back as a *domain.ValidationError aggregating every violated
// rule, never just the first one.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *echoValidator {
	v := validator.New()

	// Report fields under their wire names (json for bodies, query for
	// query-parameter structs).
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	// person_name: letters and spaces only. Doubles as the HTML-injection
	// guard since every markup character fails the character class.
	_ = v.RegisterValidation("person_name", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	})

	// phone: optional +, then 10-20 digits/dashes/parentheses/spaces.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return contactRe.MatchString(fl.Field().String())
	})

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	err := ev.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	violations := make([]domain.FieldViolation, 0, len(ve))
	for _, fe := range ve {
		violations = append(violations, domain.FieldViolation{
			Field:   fe.Field(),
			Message: violationMessage(fe),
			Value:   fe.Value(),
		})
	}
	return domain.NewValidationError(violations...)
}

// violationMessage converts a single field error into the message the API
// has always used for that field and rule.
func violationMessage(fe validator.FieldError) string {
	switch fe.Field() {
	case "Name":
		switch fe.Tag() {
		case "required":
			return "Name is required"
		case "min", "max":
			return "Name must be between 2 and 50 characters"
		case "person_name":
			return "Name can only contain letters and spaces"
		}
	case "Email":
		switch fe.Tag() {
		case "required":
			return "Email is required"
		case "email":
			return "Please provide a valid email address"
		case "max":
			return "Email cannot exceed 100 characters"
		}
	case "Contact":
		switch fe.Tag() {
		case "required":
			return "Contact number is required"
		case "phone":
			return "Please provide a valid contact number (10-20 digits, may include +, -, (), spaces)"
		}
	case "page":
		return "Page must be a positive integer between 1 and 1000"
	case "limit":
		return "Limit must be a positive integer between 1 and 100"
	case "search":
		return "Search term cannot exceed 100 characters"
	case "sortBy":
		return "Invalid sort field"
	case "sortOrder":
		return `Sort order must be either "asc" or "desc"`
	}
	return fmt.Sprintf("%s failed validation (%s)", fe.Field(), fe.Tag())
}
