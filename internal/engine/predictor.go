package engine

import (
	"errors"
	"fmt"
)

var ErrModelUnavailable = errors.New("prediction model unavailable")

// Predictor produces a scalar prediction from a feature vector.
// Implementations must be safe for concurrent use once constructed.
type Predictor interface {
	Predict(features []float64) (float64, error)
}

// BaseLoad wraps a trained regression model that estimates the always-on
// background draw (fridge standby, idle circuits) from ambient weather.
type BaseLoad struct {
	Model         Predictor
	Bounds        Bounds
	FallbackWatts float64 // static base load used when the model is unavailable
}

// PredictBaseWatts clamps the sample into the plausible range, feeds the model
// the feature vector [temperatureC, humidityPct] in exactly that order, and
// clamps a negative raw prediction to zero. A missing or broken model returns
// ErrModelUnavailable; callers recover via FallbackWatts.
func (b BaseLoad) PredictBaseWatts(sample WeatherSample) (float64, error) {
	if b.Model == nil {
		return 0, fmt.Errorf("%w: no model configured", ErrModelUnavailable)
	}

	s := b.Bounds.Clamp(sample)
	watts, err := b.Model.Predict([]float64{s.TemperatureC, s.HumidityPct})
	if err != nil {
		return 0, err
	}

	// Base load cannot be negative
	if watts < 0 {
		watts = 0
	}
	return watts, nil
}
