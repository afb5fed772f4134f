package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// FaceModel scores a normalized grayscale face crop. Actor identity models
// expect 100x100 input, emotion models 48x48; the artifact records its own
// geometry so the pipeline prepares crops to match.
type FaceModel struct {
	Name    string    `json:"name"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Bias    float64   `json:"bias"`
	Weights []float64 `json:"weights"`
}

// LoadFaceModel reads and validates a face model artifact.
func LoadFaceModel(path string) (*FaceModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var model FaceModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parse face model %s: %w", path, err)
	}
	if model.Width <= 0 || model.Height <= 0 {
		return nil, fmt.Errorf("face model %s has invalid geometry %dx%d", path, model.Width, model.Height)
	}
	if len(model.Weights) != model.Width*model.Height {
		return nil, fmt.Errorf("face model %s expects %d weights, has %d", path, model.Width*model.Height, len(model.Weights))
	}
	return &model, nil
}

// Predict returns the model confidence for a prepared face crop. The pixel
// slice must contain Width*Height values normalized to [0,1].
func (m *FaceModel) Predict(pixels []float64) (float64, error) {
	if len(pixels) != len(m.Weights) {
		return 0, fmt.Errorf("face model %s: got %d pixels, want %d", m.Name, len(pixels), len(m.Weights))
	}
	z := m.Bias
	for i, p := range pixels {
		z += m.Weights[i] * p
	}
	return sigmoid(z), nil
}
