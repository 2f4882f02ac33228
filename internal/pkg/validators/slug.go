package validators

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{1,62})[a-z0-9]$`)

// SlugValidation accepts lower case portfolio slugs of 3 to 64 characters made of
// letters, digits and inner hyphens. Registered as "slug".
func SlugValidation(fl validator.FieldLevel) bool {
	return slugPattern.MatchString(fl.Field().String())
}
