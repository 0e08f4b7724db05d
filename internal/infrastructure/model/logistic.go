// Package model loads the classifier artifact exported by the offline trainer.
package model

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
)

const TypeLogisticRegression = "logistic_regression"

var ErrArtifactNotFound = errors.New("model artifact not found")

// Artifact is the serialized form. Scaler is optional; when present inputs
// are standardized as (x - mean) / scale before the linear term.
type Artifact struct {
	ModelType    string    `json:"model_type"`
	Version      string    `json:"version"`
	Features     []string  `json:"features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Scaler       *Scaler   `json:"scaler,omitempty"`
}

type Scaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Logistic is read-only after Load and safe for concurrent use.
type Logistic struct {
	version string
	coef    []float64
	icpt    float64
	mean    []float64
	scale   []float64
}

// Load reads the artifact at path and checks that its feature order matches
// expected. A missing file yields ErrArtifactNotFound.
func Load(path string, expected []string) (*Logistic, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrArtifactNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	return FromArtifact(a, expected)
}

func FromArtifact(a Artifact, expected []string) (*Logistic, error) {
	if a.ModelType != TypeLogisticRegression {
		return nil, fmt.Errorf("unsupported model_type %q", a.ModelType)
	}
	if len(a.Features) != len(expected) {
		return nil, fmt.Errorf("artifact has %d features, want %d", len(a.Features), len(expected))
	}
	for i, name := range expected {
		if a.Features[i] != name {
			return nil, fmt.Errorf("artifact feature %d is %q, want %q", i, a.Features[i], name)
		}
	}
	if len(a.Coefficients) != len(expected) {
		return nil, fmt.Errorf("artifact has %d coefficients, want %d", len(a.Coefficients), len(expected))
	}
	m := &Logistic{version: a.Version, coef: a.Coefficients, icpt: a.Intercept}
	if a.Scaler != nil {
		if len(a.Scaler.Mean) != len(expected) || len(a.Scaler.Scale) != len(expected) {
			return nil, errors.New("artifact scaler does not match feature count")
		}
		for i, s := range a.Scaler.Scale {
			if s == 0 {
				return nil, fmt.Errorf("artifact scaler has zero scale for %q", expected[i])
			}
		}
		m.mean, m.scale = a.Scaler.Mean, a.Scaler.Scale
	}
	return m, nil
}

func (m *Logistic) Version() string { return m.version }

// PredictProba returns P(default) for x, ordered as the artifact's features.
func (m *Logistic) PredictProba(_ context.Context, x []float64) (float64, error) {
	if len(x) != len(m.coef) {
		return 0, fmt.Errorf("got %d features, want %d", len(x), len(m.coef))
	}
	z := m.icpt
	for i, v := range x {
		if m.scale != nil {
			v = (v - m.mean[i]) / m.scale[i]
		}
		z += m.coef[i] * v
	}
	p := 1 / (1 + math.Exp(-z))
	if math.IsNaN(p) {
		return 0, errors.New("model produced NaN")
	}
	return p, nil
}
