package moderation

import (
	"moviesphere/internal/models"
)

// Scorer computes hate scores by summing the binary outputs of the three
// independent text classifiers. Deterministic for fixed model artifacts.
type Scorer struct {
	classifiers []*models.TextModel
}

// NewScorer resolves the toxic, offensive, and hate classifiers from the
// registry.
func NewScorer(registry *models.Registry) (*Scorer, error) {
	names := []string{models.TextToxic, models.TextOffensive, models.TextHate}
	classifiers := make([]*models.TextModel, 0, len(names))
	for _, name := range names {
		model, err := registry.TextModel(name)
		if err != nil {
			return nil, err
		}
		classifiers = append(classifiers, model)
	}
	return &Scorer{classifiers: classifiers}, nil
}

// Score runs the text through every classifier and returns the summed
// predictions.
func (s *Scorer) Score(text string) int {
	score := 0
	for _, model := range s.classifiers {
		score += model.Predict(text)
	}
	return score
}

// NewsScore weights the body score and adds the title score. The body of a
// news item reaches more readers before moderation catches up, so it counts
// more than the title.
func (s *Scorer) NewsScore(title, body string, bodyWeight int) int {
	if bodyWeight < 1 {
		bodyWeight = 1
	}
	return bodyWeight*s.Score(body) + s.Score(title)
}
