package models

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"moviesphere/internal/config"
	"moviesphere/internal/services"
	"moviesphere/internal/textutil"
)

// Logical names for the text classifiers.
const (
	TextToxic     = "toxic"
	TextOffensive = "offensive"
	TextHate      = "hate"
)

// Logical names for the emotion classifiers.
const (
	EmotionHappy = "happy"
	EmotionSad   = "sad"
	EmotionAngry = "angry"
)

const (
	textModelSuffix  = "_classifier.json"
	actorModelSuffix = "_detection.json"
	detectorSubdir   = "detector"
	detectorConfig   = "facedet.cfg"
	detectorWeights  = "facedet.weights"
	detectorNames    = "face.names"
)

// DetectorArtifacts holds the on-disk detector files and the label set
// parsed from the names file.
type DetectorArtifacts struct {
	ConfigPath  string
	WeightsPath string
	NamesPath   string
	Labels      []string
}

// Registry holds all loaded classifier artifacts for the process lifetime.
// Text and emotion models load eagerly at startup; actor identity models
// are discovered by slugified actor name on first use and cached, since new
// actor artifacts appear as actors are onboarded. The registry is immutable
// apart from the actor cache and safe for concurrent use.
type Registry struct {
	dir      string
	text     map[string]*TextModel
	emotions map[string]*FaceModel
	detector DetectorArtifacts

	mu     sync.RWMutex
	actors map[string]*FaceModel
}

// Load builds a registry from the configured models directory. Any missing
// artifact surfaces as services.ErrModelNotFound before the registry is
// handed to callers.
func Load(cfg *config.Config) (*Registry, error) {
	dir := cfg.Paths.ModelsDir
	reg := &Registry{
		dir:      dir,
		text:     make(map[string]*TextModel, 3),
		emotions: make(map[string]*FaceModel, 3),
		actors:   make(map[string]*FaceModel),
	}

	for _, name := range []string{TextToxic, TextOffensive, TextHate} {
		path := filepath.Join(dir, name+textModelSuffix)
		model, err := loadArtifact(path, LoadTextModel)
		if err != nil {
			return nil, err
		}
		reg.text[name] = model
	}

	for _, name := range []string{EmotionHappy, EmotionSad, EmotionAngry} {
		path := filepath.Join(dir, name+actorModelSuffix)
		model, err := loadArtifact(path, LoadFaceModel)
		if err != nil {
			return nil, err
		}
		reg.emotions[name] = model
	}

	detector, err := loadDetectorArtifacts(dir)
	if err != nil {
		return nil, err
	}
	reg.detector = detector

	return reg, nil
}

// TextModel returns the named text classifier.
func (r *Registry) TextModel(name string) (*TextModel, error) {
	model, ok := r.text[name]
	if !ok {
		return nil, services.Wrap(services.ErrModelNotFound, "models", "text", name, nil)
	}
	return model, nil
}

// EmotionModel returns the named emotion classifier.
func (r *Registry) EmotionModel(name string) (*FaceModel, error) {
	model, ok := r.emotions[name]
	if !ok {
		return nil, services.Wrap(services.ErrModelNotFound, "models", "emotion", name, nil)
	}
	return model, nil
}

// ActorModelPath returns the artifact location for an actor without loading it.
func (r *Registry) ActorModelPath(actorName string) string {
	return filepath.Join(r.dir, textutil.Slugify(actorName)+actorModelSuffix)
}

// ActorModel loads (or returns the cached) identity model for an actor.
func (r *Registry) ActorModel(actorName string) (*FaceModel, error) {
	slug := textutil.Slugify(actorName)

	r.mu.RLock()
	model, ok := r.actors[slug]
	r.mu.RUnlock()
	if ok {
		return model, nil
	}

	path := filepath.Join(r.dir, slug+actorModelSuffix)
	model, err := loadArtifact(path, LoadFaceModel)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if existing, ok := r.actors[slug]; ok {
		model = existing
	} else {
		r.actors[slug] = model
	}
	r.mu.Unlock()
	return model, nil
}

// Detector returns the loaded detector artifact paths and labels.
func (r *Registry) Detector() DetectorArtifacts {
	return r.detector
}

// ValidateActor checks that the identity artifact for an actor exists
// without loading it. Pipelines call this before starting any frame work.
func (r *Registry) ValidateActor(actorName string) error {
	path := r.ActorModelPath(actorName)
	if _, err := os.Stat(path); err != nil {
		return services.Wrap(services.ErrModelNotFound, "models", "actor", path, err)
	}
	return nil
}

func loadArtifact[T any](path string, load func(string) (*T, error)) (*T, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, services.Wrap(services.ErrModelNotFound, "models", "load", path, err)
	}
	model, err := load(path)
	if err != nil {
		return nil, services.Wrap(services.ErrModelNotFound, "models", "load", path, err)
	}
	return model, nil
}

func loadDetectorArtifacts(dir string) (DetectorArtifacts, error) {
	base := filepath.Join(dir, detectorSubdir)
	artifacts := DetectorArtifacts{
		ConfigPath:  filepath.Join(base, detectorConfig),
		WeightsPath: filepath.Join(base, detectorWeights),
		NamesPath:   filepath.Join(base, detectorNames),
	}
	for _, path := range []string{artifacts.ConfigPath, artifacts.WeightsPath, artifacts.NamesPath} {
		if _, err := os.Stat(path); err != nil {
			return DetectorArtifacts{}, services.Wrap(services.ErrModelNotFound, "models", "detector", path, err)
		}
	}

	labels, err := readLabels(artifacts.NamesPath)
	if err != nil {
		return DetectorArtifacts{}, services.Wrap(services.ErrModelNotFound, "models", "detector", artifacts.NamesPath, err)
	}
	artifacts.Labels = labels
	return artifacts, nil
}

func readLabels(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var labels []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		labels = append(labels, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("names file %s is empty", path)
	}
	return labels, nil
}
