package engine

import "strings"

// Humidity above this makes air conditioning noticeably less efficient
const humidAirThresholdPct = 70.0

// Suggest derives simple efficiency tips from the load composition. Rules are
// evaluated in a fixed order over the inputs alone, so the output is a finite
// ordered sequence with no hidden state behind it.
func Suggest(estimate LoadEstimate, specs []ApplianceSpec, sample WeatherSample) []string {
	tips := []string{}

	acOn := anyActive(specs, "air condition", "a/c")
	ironOn := anyActive(specs, "iron")
	motorOn := anyActive(specs, "motor", "pump")
	upsOn := anyActive(specs, "ups")

	if ironOn && acOn {
		tips = append(tips, "Running the iron and air conditioner together drives peak load; stagger them to stay out of the higher tariff slabs.")
	}
	if acOn && sample.HumidityPct > humidAirThresholdPct {
		tips = append(tips, "High humidity makes the AC work harder; a reduced duty cycle or dry mode will cut its share of the load.")
	}
	if motorOn {
		tips = append(tips, "Switch the water motor off as soon as the tank is full; it draws heavy load the whole time it runs.")
	}
	if upsOn {
		tips = append(tips, "UPS charging adds a steady draw; healthy batteries charge faster and spend less time on the meter.")
	}

	if len(tips) == 0 && estimate.TotalWatts > 0 {
		tips = append(tips, "Usage looks balanced; no changes suggested.")
	}

	return tips
}

// anyActive reports whether an active spec's name contains any of the given
// fragments, matched case-insensitively
func anyActive(specs []ApplianceSpec, fragments ...string) bool {
	for _, s := range specs {
		if !s.Active {
			continue
		}
		name := strings.ToLower(s.Name)
		for _, f := range fragments {
			if strings.Contains(name, f) {
				return true
			}
		}
	}
	return false
}
