package engine

import (
	"errors"
	"math"
	"testing"
)

func TestComputeApplianceWatts(t *testing.T) {
	tests := []struct {
		name      string
		specs     []ApplianceSpec
		want      float64
		wantError error
	}{
		{
			name: "active appliances sum rated watts times duty cycle",
			specs: []ApplianceSpec{
				{Name: "Air Conditioner", RatedWatts: 1500, Active: true, DutyCycle: 1.0},
				{Name: "Ceiling Fan", RatedWatts: 80, Active: true, DutyCycle: 0.5},
				{Name: "Refrigerator", RatedWatts: 250, Active: true, DutyCycle: 1.0},
			},
			want: 1500 + 40 + 250,
		},
		{
			name: "inactive appliances contribute nothing regardless of duty cycle",
			specs: []ApplianceSpec{
				{Name: "Iron", RatedWatts: 1000, Active: false, DutyCycle: 1.0},
				{Name: "Water Motor", RatedWatts: 1000, Active: false, DutyCycle: 0.25},
			},
			want: 0,
		},
		{
			name:  "empty catalog",
			specs: []ApplianceSpec{},
			want:  0,
		},
		{
			name: "zero rated watts rejected",
			specs: []ApplianceSpec{
				{Name: "Broken", RatedWatts: 0, Active: true, DutyCycle: 1.0},
			},
			wantError: ErrInvalidApplianceSpec,
		},
		{
			name: "negative rated watts rejected",
			specs: []ApplianceSpec{
				{Name: "Broken", RatedWatts: -500, Active: true, DutyCycle: 1.0},
			},
			wantError: ErrInvalidApplianceSpec,
		},
		{
			name: "duty cycle above one rejected even when inactive",
			specs: []ApplianceSpec{
				{Name: "Iron", RatedWatts: 1000, Active: false, DutyCycle: 1.5},
			},
			wantError: ErrInvalidApplianceSpec,
		},
		{
			name: "negative duty cycle rejected",
			specs: []ApplianceSpec{
				{Name: "Fan", RatedWatts: 80, Active: true, DutyCycle: -0.1},
			},
			wantError: ErrInvalidApplianceSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeApplianceWatts(tt.specs)

			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Fatalf("got error %v, want %v", err, tt.wantError)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %.4f W, want %.4f W", got, tt.want)
			}
		})
	}
}

func TestComputeApplianceWattsOrderInvariant(t *testing.T) {
	specs := []ApplianceSpec{
		{Name: "Air Conditioner", RatedWatts: 1500, Active: true, DutyCycle: 0.8},
		{Name: "Ceiling Fan", RatedWatts: 80, Active: true, DutyCycle: 1.0},
		{Name: "Refrigerator", RatedWatts: 250, Active: true, DutyCycle: 1.0},
		{Name: "Iron", RatedWatts: 1000, Active: false, DutyCycle: 1.0},
		{Name: "UPS Charger", RatedWatts: 300, Active: true, DutyCycle: 0.5},
	}

	forward, err := ComputeApplianceWatts(specs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reversed := make([]ApplianceSpec, len(specs))
	for i, s := range specs {
		reversed[len(specs)-1-i] = s
	}

	backward, err := ComputeApplianceWatts(reversed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(forward-backward) > 1e-9 {
		t.Errorf("sum depends on input order: forward %.6f, reversed %.6f", forward, backward)
	}
}
