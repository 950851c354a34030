package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks a scenario read from an external source. The
// calculators tolerate out-of-range values; this rejects them at the
// boundary instead.
func (s Scenario) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid scenario %q: %w", s.Name, err)
	}
	return nil
}

func ValidateParameters(space SpaceParameters, service ServiceParameters, operational OperationalParameters) error {
	for _, v := range []any{space, service, operational} {
		if err := validate.Struct(v); err != nil {
			return fmt.Errorf("invalid parameters: %w", err)
		}
	}
	return nil
}
