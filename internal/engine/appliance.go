package engine

import (
	"errors"
	"fmt"
)

var ErrInvalidApplianceSpec = errors.New("invalid appliance spec")

// Validate checks the spec's rated wattage and duty cycle
func (s ApplianceSpec) Validate() error {
	if s.RatedWatts <= 0 {
		return fmt.Errorf("%w: %s rated at %.1f W (must be > 0)", ErrInvalidApplianceSpec, s.Name, s.RatedWatts)
	}
	if s.DutyCycle < 0 || s.DutyCycle > 1 {
		return fmt.Errorf("%w: %s duty cycle %.2f (must be within [0,1])", ErrInvalidApplianceSpec, s.Name, s.DutyCycle)
	}
	return nil
}

// ComputeApplianceWatts sums the contribution of every active appliance.
// Inactive specs contribute nothing regardless of duty cycle, and the
// commutative sum means input order never changes the result.
func ComputeApplianceWatts(specs []ApplianceSpec) (float64, error) {
	total := 0.0
	for _, s := range specs {
		if err := s.Validate(); err != nil {
			return 0, err
		}
		if !s.Active {
			continue
		}
		total += s.RatedWatts * s.DutyCycle
	}
	return total, nil
}
