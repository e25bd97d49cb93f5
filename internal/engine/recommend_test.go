package engine

import (
	"strings"
	"testing"
)

func TestSuggest(t *testing.T) {
	catalog := func(active ...string) []ApplianceSpec {
		specs := []ApplianceSpec{
			{Name: "Air Conditioner", RatedWatts: 1500, DutyCycle: 1.0},
			{Name: "Iron", RatedWatts: 1000, DutyCycle: 1.0},
			{Name: "Water Motor", RatedWatts: 1000, DutyCycle: 1.0},
			{Name: "UPS Charger", RatedWatts: 300, DutyCycle: 1.0},
			{Name: "Refrigerator", RatedWatts: 250, DutyCycle: 1.0},
		}
		for i := range specs {
			for _, name := range active {
				if specs[i].Name == name {
					specs[i].Active = true
				}
			}
		}
		return specs
	}

	tests := []struct {
		name         string
		active       []string
		humidity     float64
		wantContains []string
		wantCount    int
	}{
		{
			name:         "iron and AC together warn about peak load",
			active:       []string{"Air Conditioner", "Iron"},
			humidity:     40,
			wantContains: []string{"iron and air conditioner"},
			wantCount:    1,
		},
		{
			name:         "AC in humid weather suggests reduced duty cycle",
			active:       []string{"Air Conditioner"},
			humidity:     85,
			wantContains: []string{"humidity"},
			wantCount:    1,
		},
		{
			name:         "water motor reminder",
			active:       []string{"Water Motor"},
			humidity:     40,
			wantContains: []string{"water motor"},
			wantCount:    1,
		},
		{
			name:         "ups charging note",
			active:       []string{"UPS Charger"},
			humidity:     40,
			wantContains: []string{"UPS"},
			wantCount:    1,
		},
		{
			name:         "quiet load gets the all-clear",
			active:       []string{"Refrigerator"},
			humidity:     40,
			wantContains: []string{"balanced"},
			wantCount:    1,
		},
		{
			name:     "multiple rules fire in fixed order",
			active:   []string{"Air Conditioner", "Iron", "Water Motor"},
			humidity: 90,
			wantContains: []string{
				"iron and air conditioner",
				"humidity",
				"water motor",
			},
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			specs := catalog(tt.active...)
			watts, err := ComputeApplianceWatts(specs)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			estimate := Aggregate(50, watts)

			tips := Suggest(estimate, specs, WeatherSample{TemperatureC: 32, HumidityPct: tt.humidity})

			if len(tips) != tt.wantCount {
				t.Fatalf("got %d tips %v, want %d", len(tips), tips, tt.wantCount)
			}
			for i, fragment := range tt.wantContains {
				if i >= len(tips) {
					break
				}
				if !strings.Contains(strings.ToLower(tips[i]), strings.ToLower(fragment)) {
					t.Errorf("tip %d = %q, want it to mention %q", i, tips[i], fragment)
				}
			}
		})
	}
}

func TestSuggestDerivedSolelyFromInputs(t *testing.T) {
	specs := []ApplianceSpec{{Name: "Iron", RatedWatts: 1000, Active: true, DutyCycle: 1.0}}
	estimate := Aggregate(50, 1000)
	sample := WeatherSample{TemperatureC: 30, HumidityPct: 50}

	first := Suggest(estimate, specs, sample)
	second := Suggest(estimate, specs, sample)

	if len(first) != len(second) {
		t.Fatalf("repeated calls differ: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("tip %d differs across identical calls: %q vs %q", i, first[i], second[i])
		}
	}
}
