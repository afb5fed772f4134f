package models

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"moviesphere/internal/textutil"
)

// TextModel is a linear bag-of-words classifier with its vectorizer
// vocabulary baked into the artifact. Artifacts are exported from the
// training pipeline as JSON documents.
type TextModel struct {
	Name      string             `json:"name"`
	Bias      float64            `json:"bias"`
	Threshold float64            `json:"threshold"`
	Weights   map[string]float64 `json:"weights"`
}

// LoadTextModel reads and validates a text model artifact.
func LoadTextModel(path string) (*TextModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var model TextModel
	if err := json.Unmarshal(data, &model); err != nil {
		return nil, fmt.Errorf("parse text model %s: %w", path, err)
	}
	if len(model.Weights) == 0 {
		return nil, fmt.Errorf("text model %s has no weights", path)
	}
	if model.Threshold == 0 {
		model.Threshold = 0.5
	}
	return &model, nil
}

// Predict vectorizes the text with the embedded vocabulary and returns the
// binary class label: 1 when the decision probability reaches the threshold.
func (m *TextModel) Predict(text string) int {
	z := m.Bias
	for _, token := range textutil.Tokenize(text) {
		z += m.Weights[token]
	}
	if sigmoid(z) >= m.Threshold {
		return 1
	}
	return 0
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
