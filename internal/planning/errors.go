package planning

import (
	"errors"
	"fmt"
)

var (
	ErrConfigurationMissing = errors.New("configuration missing")
	ErrScenarioNotFound     = errors.New("scenario not found")
	ErrInvalidParameter     = errors.New("invalid parameter")
)

// ConfigurationMissingError reports an operational constant the provider
// does not have. It matches ErrConfigurationMissing with errors.Is.
type ConfigurationMissingError struct {
	Category string
	Name     string
}

func (e *ConfigurationMissingError) Error() string {
	return fmt.Sprintf("operational constant not found: %s.%s", e.Category, e.Name)
}

func (e *ConfigurationMissingError) Unwrap() error {
	return ErrConfigurationMissing
}

type ScenarioNotFoundError struct {
	ID string
}

func (e *ScenarioNotFoundError) Error() string {
	return fmt.Sprintf("scenario with ID %s not found", e.ID)
}

func (e *ScenarioNotFoundError) Unwrap() error {
	return ErrScenarioNotFound
}

func invalidParameter(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
