package models_test

import (
	"testing"

	"moviesphere/internal/models"
	"moviesphere/internal/testsupport"
)

func TestTextModelPredict(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteTextModel(t, dir, "toxic", testsupport.TextModelDoc{
		Bias:      -4,
		Threshold: 0.5,
		Weights:   map[string]float64{"trash": 3, "awful": 3},
	})
	model, err := models.LoadTextModel(path)
	if err != nil {
		t.Fatalf("LoadTextModel failed: %v", err)
	}

	cases := []struct {
		text string
		want int
	}{
		{"a lovely film", 0},
		{"this was trash", 0},          // one hit: z = -1, below threshold
		{"awful trash acting", 1},      // two hits: z = 2
		{"TRASH! Awful, awful...", 1},  // tokenization is case/punct insensitive
		{"", 0},
	}
	for _, tc := range cases {
		if got := model.Predict(tc.text); got != tc.want {
			t.Errorf("Predict(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestFaceModelPredictValidatesInput(t *testing.T) {
	dir := t.TempDir()
	path := testsupport.WriteFaceModel(t, dir, "happy", 48, 2, 0)
	model, err := models.LoadFaceModel(path)
	if err != nil {
		t.Fatalf("LoadFaceModel failed: %v", err)
	}

	pixels := make([]float64, 48*48)
	conf, err := model.Predict(pixels)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if conf < 0.85 {
		t.Fatalf("bias 2 should predict high confidence, got %v", conf)
	}

	if _, err := model.Predict(pixels[:10]); err == nil {
		t.Fatal("expected error for wrong pixel count")
	}
}
