package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that reports json field names and knows the
// language tags used by bilingual forms.
func New() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return fld.Name
	})

	_ = v.RegisterValidation("english", func(fl validator.FieldLevel) bool {
		return IsEnglish(fl.Field().String())
	})
	_ = v.RegisterValidation("hindi", func(fl validator.FieldLevel) bool {
		return IsHindi(fl.Field().String())
	})

	return v
}

// IsEnglish accepts Latin letters plus shared digits, spaces and punctuation.
func IsEnglish(s string) bool {
	return onlyScript(s, unicode.Latin)
}

// IsHindi accepts Devanagari letters plus shared digits, spaces and punctuation.
func IsHindi(s string) bool {
	return onlyScript(s, unicode.Devanagari)
}

func onlyScript(s string, script *unicode.RangeTable) bool {
	hasLetter := false
	for _, r := range s {
		switch {
		case unicode.Is(script, r):
			if unicode.IsLetter(r) {
				hasLetter = true
			}
		case unicode.Is(unicode.Common, r), unicode.Is(unicode.Inherited, r):
		default:
			return false
		}
	}
	return hasLetter
}

type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// Errors reports form problems found outside struct tag validation.
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return "invalid input"
	}
	return e[0].Message
}

// Fields flattens validator errors into a client friendly list. Any other
// error becomes a single entry without a field.
func Fields(err error) []FieldError {
	var own Errors
	if errors.As(err, &own) {
		return own
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "english":
		return fmt.Sprintf("%s must be written in English", fe.Field())
	case "hindi":
		return fmt.Sprintf("%s must be written in Hindi", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
