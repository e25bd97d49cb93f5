package model

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/awaistahir/ecohome/internal/engine"
)

func writeArtifact(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ecohome_model.json")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}
	return path
}

func TestLoadAndPredict(t *testing.T) {
	path := writeArtifact(t, `{"bias": 12.5, "weights": [2.0, 0.5]}`)

	lin, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 12.5 + 2.0*30 + 0.5*60 = 102.5
	got, err := lin.Predict([]float64{30, 60})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-102.5) > 1e-9 {
		t.Errorf("got %.6f, want 102.5", got)
	}
}

func TestPredictRejectsWrongFeatureCount(t *testing.T) {
	path := writeArtifact(t, `{"bias": 0, "weights": [1.0, 1.0]}`)

	lin, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := lin.Predict([]float64{30}); err == nil {
		t.Error("expected error for short feature vector")
	}
	if _, err := lin.Predict([]float64{30, 60, 5}); err == nil {
		t.Error("expected error for long feature vector")
	}
}

func TestLoadFailuresWrapModelUnavailable(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(t.TempDir(), "nope.json")},
		{"corrupt json", writeArtifact(t, `{"bias": `)},
		{"empty weights", writeArtifact(t, `{"bias": 5, "weights": []}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if !errors.Is(err, engine.ErrModelUnavailable) {
				t.Errorf("got error %v, want engine.ErrModelUnavailable", err)
			}
		})
	}
}

func TestLoaderLoadsOnce(t *testing.T) {
	path := writeArtifact(t, `{"bias": 40, "weights": [1.0, 0.1]}`)
	ld := &Loader{Path: path}

	var wg sync.WaitGroup
	results := make([]float64, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := ld.Predict([]float64{25, 50})
			if err != nil {
				t.Errorf("concurrent predict: %v", err)
				return
			}
			results[i] = v
		}(i)
	}
	wg.Wait()

	want := 40 + 25 + 5.0
	for i, v := range results {
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("result %d: got %.6f, want %.6f", i, v, want)
		}
	}
}

func TestLoaderStickyFailure(t *testing.T) {
	ld := &Loader{Path: filepath.Join(t.TempDir(), "missing.json")}

	for i := 0; i < 2; i++ {
		_, err := ld.Predict([]float64{30, 60})
		if !errors.Is(err, engine.ErrModelUnavailable) {
			t.Errorf("call %d: got error %v, want engine.ErrModelUnavailable", i, err)
		}
	}
}
