package engine

// WeatherSample holds the ambient readings driving the base load prediction
type WeatherSample struct {
	TemperatureC float64
	HumidityPct  float64 // relative humidity, percentage 0-100
}

// ApplianceSpec describes one catalog device and its current state
type ApplianceSpec struct {
	Name       string
	RatedWatts float64
	Active     bool
	DutyCycle  float64 // fraction of time drawing rated watts, 0-1
}

// LoadEstimate is the aggregated instantaneous load, recomputed per call
type LoadEstimate struct {
	BaseWatts      float64
	ApplianceWatts float64
	TotalWatts     float64
}

// TariffTier is one slab of a progressive rate schedule.
// UpperBoundUnits <= 0 marks the final, unbounded slab.
type TariffTier struct {
	UpperBoundUnits float64
	RatePerUnit     float64 // PKR per kWh
}

// TariffSchedule is an ordered sequence of slabs covering 0 to unbounded
type TariffSchedule struct {
	Name  string
	Tiers []TariffTier
}

// TierCharge records how many units one slab absorbed and at what cost
type TierCharge struct {
	TierIndex   int
	UnitsInTier float64
	CostInTier  float64
}

// BillEstimate is the tiered cost of a load extrapolated over a duration
type BillEstimate struct {
	UnitsConsumed float64
	CostPKR       float64
	Breakdown     []TierCharge
}

// Bounds is the plausible physical range for user-entered weather.
// Out-of-range samples are clamped, never rejected.
type Bounds struct {
	MinTempC       float64
	MaxTempC       float64
	MinHumidityPct float64
	MaxHumidityPct float64
}

// DefaultBounds returns the standard plausible range for Pakistani weather input
func DefaultBounds() Bounds {
	return Bounds{
		MinTempC:       -10,
		MaxTempC:       55,
		MinHumidityPct: 0,
		MaxHumidityPct: 100,
	}
}

// Clamp pulls a sample into the plausible range
func (b Bounds) Clamp(s WeatherSample) WeatherSample {
	s.TemperatureC = clamp(s.TemperatureC, b.MinTempC, b.MaxTempC)
	s.HumidityPct = clamp(s.HumidityPct, b.MinHumidityPct, b.MaxHumidityPct)
	return s
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Request carries everything one estimation invocation needs.
// All fields are request-scoped values; nothing is retained across calls.
type Request struct {
	Weather       WeatherSample
	Appliances    []ApplianceSpec
	DurationHours float64
	Schedule      TariffSchedule
}

// Result is the flat output contract returned to the caller
type Result struct {
	Load LoadEstimate
	Bill BillEstimate
	Tips []string
}
