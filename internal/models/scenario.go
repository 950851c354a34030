package models

import "time"

type Scenario struct {
	ID                    string                `json:"id" mapstructure:"id" yaml:"id"`
	Name                  string                `json:"name" mapstructure:"name" yaml:"name" validate:"required"`
	Brand                 string                `json:"brand,omitempty" mapstructure:"brand" yaml:"brand,omitempty"`
	Outlet                string                `json:"outlet,omitempty" mapstructure:"outlet" yaml:"outlet,omitempty"`
	SpaceParameters       SpaceParameters       `json:"space_parameters" mapstructure:"space_parameters" yaml:"space_parameters"`
	ServiceParameters     ServiceParameters     `json:"service_parameters" mapstructure:"service_parameters" yaml:"service_parameters"`
	OperationalParameters OperationalParameters `json:"operational_parameters" mapstructure:"operational_parameters" yaml:"operational_parameters"`
	CreatedAt             time.Time             `json:"created_at" mapstructure:"created_at" yaml:"created_at"`
	UpdatedAt             time.Time             `json:"updated_at" mapstructure:"updated_at" yaml:"updated_at"`
}

// ScenarioChanges overrides parts of a base scenario for what-if analysis.
// Nil fields keep the base scenario's values.
type ScenarioChanges struct {
	Name                  *string                `json:"name,omitempty" mapstructure:"name"`
	SpaceParameters       *SpaceParameters       `json:"space_parameters,omitempty" mapstructure:"space_parameters"`
	ServiceParameters     *ServiceParameters     `json:"service_parameters,omitempty" mapstructure:"service_parameters"`
	OperationalParameters *OperationalParameters `json:"operational_parameters,omitempty" mapstructure:"operational_parameters"`
}

// Apply returns a copy of s with the non-nil changes applied. The copy
// does not share maps or slices with s.
func (c ScenarioChanges) Apply(s Scenario) Scenario {
	out := s
	out.OperationalParameters = cloneOperational(s.OperationalParameters)
	if c.Name != nil {
		out.Name = *c.Name
	}
	if c.SpaceParameters != nil {
		out.SpaceParameters = *c.SpaceParameters
	}
	if c.ServiceParameters != nil {
		out.ServiceParameters = *c.ServiceParameters
	}
	if c.OperationalParameters != nil {
		out.OperationalParameters = cloneOperational(*c.OperationalParameters)
	}
	return out
}

func cloneOperational(o OperationalParameters) OperationalParameters {
	out := o
	if o.DayFactors != nil {
		out.DayFactors = make(map[string]float64, len(o.DayFactors))
		for k, v := range o.DayFactors {
			out.DayFactors[k] = v
		}
	}
	if o.HourFactors != nil {
		out.HourFactors = make(map[int]float64, len(o.HourFactors))
		for k, v := range o.HourFactors {
			out.HourFactors[k] = v
		}
	}
	if o.PeakHours != nil {
		out.PeakHours = append([]int(nil), o.PeakHours...)
	}
	return out
}
