// Package validate builds the shared struct validator with the
// project-specific rules registered.
package validate

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var pseudoPattern = regexp.MustCompile(`^[\p{L}0-9_\-]+$`)

// New returns a validator with the "nonblank" and "pseudo" tags registered
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("pseudo", func(fl validator.FieldLevel) bool {
		return pseudoPattern.MatchString(fl.Field().String())
	})
	return v
}

// Describe flattens validator errors into "field: rule" pairs
func Describe(err error) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fe.Namespace()+": "+fe.Tag())
	}
	return out
}
