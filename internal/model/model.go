// Package model loads the pre-trained base load regression artifact.
//
// The artifact is a small JSON file produced by the offline training pipeline:
// a bias plus one weight per feature. The estimation core only ever sees it
// through the engine.Predictor interface, so the training framework and
// on-disk format are swappable without touching the engine.
package model

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/awaistahir/ecohome/internal/engine"
)

// artifact is the on-disk JSON layout
type artifact struct {
	Bias    float64   `json:"bias"`
	Weights []float64 `json:"weights"`
}

// Linear is a loaded linear regression model. Immutable after Load, so
// concurrent Predict calls need no locking.
type Linear struct {
	bias    float64
	weights []float64
}

// Load reads a model artifact from disk. The file handle is held only for the
// duration of the read. Missing or corrupt artifacts wrap
// engine.ErrModelUnavailable so the pipeline can fall back to its static
// default base load.
func Load(path string) (*Linear, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", engine.ErrModelUnavailable, path, err)
	}
	defer f.Close()

	var a artifact
	if err := json.NewDecoder(f).Decode(&a); err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", engine.ErrModelUnavailable, path, err)
	}
	if len(a.Weights) == 0 {
		return nil, fmt.Errorf("%w: %s carries no weights", engine.ErrModelUnavailable, path)
	}

	return &Linear{bias: a.Bias, weights: a.Weights}, nil
}

// Predict implements engine.Predictor. The feature vector must match the
// trained weight count; for the base load artifact that is
// [temperatureC, humidityPct] in exactly that order.
func (l *Linear) Predict(features []float64) (float64, error) {
	if len(features) != len(l.weights) {
		return 0, fmt.Errorf("model expects %d features, got %d", len(l.weights), len(features))
	}

	y := l.bias
	for i, w := range l.weights {
		y += w * features[i]
	}
	return y, nil
}

// Loader lazily loads an artifact exactly once and serves it to concurrent
// callers thereafter. A failed load is sticky: every Predict repeats the same
// engine.ErrModelUnavailable rather than retrying the filesystem.
type Loader struct {
	Path string

	once sync.Once
	lin  *Linear
	err  error
}

// Predict implements engine.Predictor
func (ld *Loader) Predict(features []float64) (float64, error) {
	ld.once.Do(func() {
		ld.lin, ld.err = Load(ld.Path)
	})
	if ld.err != nil {
		return 0, ld.err
	}
	return ld.lin.Predict(features)
}
