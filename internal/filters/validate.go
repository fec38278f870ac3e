package filters

import (
	stdErrors "errors"
	"fmt"

	"github.com/aaravmahajanofficial/storefront-catalog/internal/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks the descriptor before it is sent.
func (f Filters) Validate() error {

	if err := validate.Struct(f); err != nil {
		var validationErrs validator.ValidationErrors
		if stdErrors.As(err, &validationErrs) && len(validationErrs) > 0 {
			fe := validationErrs[0]
			return errors.AddValidationError(fe.Field(), fmt.Sprintf("%s=%s", fe.Tag(), fe.Param()))
		}
		return errors.ValidationError("invalid filters").WithError(err)
	}

	if f.MinPrice != nil && f.MaxPrice != nil && *f.MaxPrice < *f.MinPrice {
		return errors.AddValidationError("MaxPrice", "must not be below MinPrice")
	}

	return nil
}
