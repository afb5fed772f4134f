package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"moviesphere/internal/textutil"
)

// TextModelDoc mirrors the text classifier artifact layout.
type TextModelDoc struct {
	Name      string             `json:"name"`
	Bias      float64            `json:"bias"`
	Threshold float64            `json:"threshold"`
	Weights   map[string]float64 `json:"weights"`
}

// FaceModelDoc mirrors the face classifier artifact layout.
type FaceModelDoc struct {
	Name    string    `json:"name"`
	Width   int       `json:"width"`
	Height  int       `json:"height"`
	Bias    float64   `json:"bias"`
	Weights []float64 `json:"weights"`
}

// WriteTextModel writes a text classifier artifact into dir.
func WriteTextModel(t testing.TB, dir, name string, doc TextModelDoc) string {
	t.Helper()
	if doc.Name == "" {
		doc.Name = name
	}
	if doc.Weights == nil {
		doc.Weights = map[string]float64{"placeholder": 0}
	}
	path := filepath.Join(dir, name+"_classifier.json")
	writeJSON(t, path, doc)
	return path
}

// WriteFaceModel writes a face classifier artifact named for slug into dir.
// A uniform weight is applied to every pixel so tests can steer confidence
// with bias alone.
func WriteFaceModel(t testing.TB, dir, slug string, size int, bias, pixelWeight float64) string {
	t.Helper()
	weights := make([]float64, size*size)
	for i := range weights {
		weights[i] = pixelWeight
	}
	doc := FaceModelDoc{Name: slug, Width: size, Height: size, Bias: bias, Weights: weights}
	path := filepath.Join(dir, slug+"_detection.json")
	writeJSON(t, path, doc)
	return path
}

// WriteActorModel writes an identity artifact for the given display name.
func WriteActorModel(t testing.TB, dir, actorName string, bias float64) string {
	t.Helper()
	return WriteFaceModel(t, dir, textutil.Slugify(actorName), 100, bias, 0)
}

// WriteEmotionModels writes the three emotion artifacts with the given biases.
func WriteEmotionModels(t testing.TB, dir string, happy, sad, angry float64) {
	t.Helper()
	WriteFaceModel(t, dir, "happy", 48, happy, 0)
	WriteFaceModel(t, dir, "sad", 48, sad, 0)
	WriteFaceModel(t, dir, "angry", 48, angry, 0)
}

// WriteDetectorArtifacts writes the detector config, weights, and names
// files under dir/detector.
func WriteDetectorArtifacts(t testing.TB, dir string) {
	t.Helper()
	base := filepath.Join(dir, "detector")
	if err := os.MkdirAll(base, 0o755); err != nil {
		t.Fatalf("mkdir detector dir: %v", err)
	}
	files := map[string]string{
		"facedet.cfg":     "[net]\nwidth=416\nheight=416\n",
		"facedet.weights": "stub-weights",
		"face.names":      "face\nperson\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(base, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write detector artifact %s: %v", name, err)
		}
	}
}

// WriteDefaultModels writes a full artifact set: the three text classifiers,
// the three emotion classifiers, an actor model, and detector files.
func WriteDefaultModels(t testing.TB, dir, actorName string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir models dir: %v", err)
	}
	for _, name := range []string{"toxic", "offensive", "hate"} {
		WriteTextModel(t, dir, name, TextModelDoc{Bias: -10})
	}
	WriteEmotionModels(t, dir, -10, -10, -10)
	WriteActorModel(t, dir, actorName, -10)
	WriteDetectorArtifacts(t, dir)
}

func writeJSON(t testing.TB, path string, doc any) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal %s: %v", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
