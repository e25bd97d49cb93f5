package engine

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidBillingInput = errors.New("invalid billing input")

// Unbounded reports whether the slab has no upper boundary
func (t TariffTier) Unbounded() bool {
	return t.UpperBoundUnits <= 0 || math.IsInf(t.UpperBoundUnits, 1)
}

// Validate checks the schedule covers 0 to unbounded with strictly
// ascending slab boundaries and non-negative rates
func (ts TariffSchedule) Validate() error {
	if len(ts.Tiers) == 0 {
		return fmt.Errorf("%w: schedule %q has no tiers", ErrInvalidBillingInput, ts.Name)
	}

	prev := 0.0
	for i, tier := range ts.Tiers {
		if tier.RatePerUnit < 0 || math.IsNaN(tier.RatePerUnit) {
			return fmt.Errorf("%w: tier %d rate %.4f per unit", ErrInvalidBillingInput, i, tier.RatePerUnit)
		}
		if tier.Unbounded() {
			if i != len(ts.Tiers)-1 {
				return fmt.Errorf("%w: tier %d is unbounded but not final", ErrInvalidBillingInput, i)
			}
			continue
		}
		if tier.UpperBoundUnits <= prev {
			return fmt.Errorf("%w: tier %d boundary %.2f not above previous %.2f", ErrInvalidBillingInput, i, tier.UpperBoundUnits, prev)
		}
		prev = tier.UpperBoundUnits
	}

	if !ts.Tiers[len(ts.Tiers)-1].Unbounded() {
		return fmt.Errorf("%w: final tier of %q must be unbounded", ErrInvalidBillingInput, ts.Name)
	}
	return nil
}

// EstimateBill extrapolates a load over a duration and bills it against a
// progressive schedule. Units are consumed slab by slab in ascending order,
// each slab absorbing min(remaining, capacity) at its own marginal rate; the
// whole consumption is never billed at the rate of the slab it lands in.
func EstimateBill(totalWatts, durationHours float64, schedule TariffSchedule) (*BillEstimate, error) {
	if totalWatts < 0 || math.IsNaN(totalWatts) || math.IsInf(totalWatts, 0) {
		return nil, fmt.Errorf("%w: total watts %.2f", ErrInvalidBillingInput, totalWatts)
	}
	if durationHours < 0 || math.IsNaN(durationHours) || math.IsInf(durationHours, 0) {
		return nil, fmt.Errorf("%w: duration %.2f hours", ErrInvalidBillingInput, durationHours)
	}
	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	// 1 unit = 1 kWh
	units := totalWatts * durationHours / 1000.0

	bill := &BillEstimate{UnitsConsumed: units}
	remaining := units
	prevBound := 0.0

	for i, tier := range schedule.Tiers {
		if remaining <= 0 {
			break
		}

		take := remaining
		if !tier.Unbounded() {
			capacity := tier.UpperBoundUnits - prevBound
			if take > capacity {
				take = capacity
			}
			prevBound = tier.UpperBoundUnits
		}

		cost := take * tier.RatePerUnit
		bill.Breakdown = append(bill.Breakdown, TierCharge{
			TierIndex:   i,
			UnitsInTier: take,
			CostInTier:  cost,
		})
		bill.CostPKR += cost
		remaining -= take
	}

	return bill, nil
}
