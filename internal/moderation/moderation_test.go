package moderation_test

import (
	"errors"
	"testing"
	"time"

	"moviesphere/internal/models"
	"moviesphere/internal/moderation"
	"moviesphere/internal/services"
	"moviesphere/internal/testsupport"
)

// newScorer builds a scorer whose classifiers each fire on one trigger word:
// "vile" (toxic), "slur" (offensive), "menace" (hate).
func newScorer(t *testing.T) *moderation.Scorer {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	dir := cfg.Paths.ModelsDir
	testsupport.WriteDefaultModels(t, dir, "Tom Hanks")
	testsupport.WriteTextModel(t, dir, "toxic", testsupport.TextModelDoc{
		Bias: -5, Weights: map[string]float64{"vile": 10},
	})
	testsupport.WriteTextModel(t, dir, "offensive", testsupport.TextModelDoc{
		Bias: -5, Weights: map[string]float64{"slur": 10},
	})
	testsupport.WriteTextModel(t, dir, "hate", testsupport.TextModelDoc{
		Bias: -5, Weights: map[string]float64{"menace": 10},
	})

	registry, err := models.Load(cfg)
	if err != nil {
		t.Fatalf("load registry: %v", err)
	}
	scorer, err := moderation.NewScorer(registry)
	if err != nil {
		t.Fatalf("new scorer: %v", err)
	}
	return scorer
}

func TestScoreSumsClassifierOutputs(t *testing.T) {
	scorer := newScorer(t)
	cases := []struct {
		text string
		want int
	}{
		{"a perfectly nice film", 0},
		{"vile acting", 1},
		{"vile slur", 2},
		{"vile slur menace", 3},
	}
	for _, tc := range cases {
		if got := scorer.Score(tc.text); got != tc.want {
			t.Errorf("Score(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestNewsScoreWeightsBody(t *testing.T) {
	scorer := newScorer(t)
	// score = 2*score(body) + score(title)
	cases := []struct {
		title, body string
		want        int
	}{
		{"fine title", "fine body", 0},
		{"vile title", "fine body", 1},
		{"fine title", "vile body", 2},
		{"vile slur", "vile slur menace", 8},
	}
	for _, tc := range cases {
		if got := scorer.NewsScore(tc.title, tc.body, 2); got != tc.want {
			t.Errorf("NewsScore(%q, %q) = %d, want %d", tc.title, tc.body, got, tc.want)
		}
	}
}

func newEngine(t *testing.T) *moderation.Engine {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	return moderation.NewEngine(newScorer(t), cfg.Moderation)
}

func TestModerateReviewThresholds(t *testing.T) {
	engine := newEngine(t)
	now := time.Now()
	cases := []struct {
		body      string
		wantState moderation.State
		wantScore int
	}{
		{"lovely stuff", moderation.StatePublished, 0},
		{"vile", moderation.StateInReview, 1},
		{"vile slur", moderation.StateInReview, 2},
		{"vile slur menace", moderation.StateForbidden, 3},
	}
	for _, tc := range cases {
		outcome, err := engine.Moderate(moderation.Content{Kind: moderation.KindReview, Body: tc.body}, moderation.IntentPublish, now)
		if err != nil {
			t.Fatalf("Moderate(%q) failed: %v", tc.body, err)
		}
		if outcome.State != tc.wantState || outcome.Score != tc.wantScore {
			t.Errorf("Moderate(%q) = (%s, %d), want (%s, %d)", tc.body, outcome.State, outcome.Score, tc.wantState, tc.wantScore)
		}
		if tc.wantState == moderation.StatePublished && outcome.PublishedAt == nil {
			t.Errorf("Moderate(%q): published content must get a publication timestamp", tc.body)
		}
	}
}

func TestModerateNewsThresholds(t *testing.T) {
	engine := newEngine(t)
	now := time.Now()
	cases := []struct {
		title, body string
		wantState   moderation.State
		wantScore   int
	}{
		{"vile slur", "all good", moderation.StatePublished, 2},
		{"vile", "vile", moderation.StateInReview, 3},
		{"fine", "vile slur menace", moderation.StateInReview, 6},
		{"vile", "vile slur menace", moderation.StateForbidden, 7},
	}
	for _, tc := range cases {
		content := moderation.Content{Kind: moderation.KindNews, Title: tc.title, Body: tc.body}
		outcome, err := engine.Moderate(content, moderation.IntentPublish, now)
		if err != nil {
			t.Fatalf("Moderate failed: %v", err)
		}
		if outcome.State != tc.wantState || outcome.Score != tc.wantScore {
			t.Errorf("Moderate(%q/%q) = (%s, %d), want (%s, %d)", tc.title, tc.body, outcome.State, outcome.Score, tc.wantState, tc.wantScore)
		}
	}
}

func TestModerateDraftSkipsScoring(t *testing.T) {
	engine := newEngine(t)
	content := moderation.Content{Kind: moderation.KindReview, Body: "vile slur menace"}
	outcome, err := engine.Moderate(content, moderation.IntentDraft, time.Now())
	if err != nil {
		t.Fatalf("Moderate failed: %v", err)
	}
	if outcome.State != moderation.StateDraft || outcome.Score != 0 || outcome.StrikeRequired {
		t.Fatalf("draft save must not score or strike: %+v", outcome)
	}
}

func TestStrikeRequiredOnlyOnTransitionIntoForbidden(t *testing.T) {
	engine := newEngine(t)
	now := time.Now()
	cases := []struct {
		name      string
		prevState moderation.State
		want      bool
	}{
		{"new content", "", true},
		{"from published", moderation.StatePublished, true},
		{"from in_review", moderation.StateInReview, true},
		{"already forbidden", moderation.StateForbidden, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			content := moderation.Content{
				Kind:      moderation.KindReview,
				Body:      "vile slur menace",
				PrevState: tc.prevState,
			}
			outcome, err := engine.Moderate(content, moderation.IntentPublish, now)
			if err != nil {
				t.Fatalf("Moderate failed: %v", err)
			}
			if outcome.State != moderation.StateForbidden {
				t.Fatalf("expected forbidden state, got %s", outcome.State)
			}
			if outcome.StrikeRequired != tc.want {
				t.Fatalf("StrikeRequired = %v, want %v", outcome.StrikeRequired, tc.want)
			}
		})
	}
}

func TestModerateRejectsUnknownKindAndIntent(t *testing.T) {
	engine := newEngine(t)
	now := time.Now()
	if _, err := engine.Moderate(moderation.Content{Kind: "poem"}, moderation.IntentPublish, now); !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for unknown kind, got %v", err)
	}
	if _, err := engine.Moderate(moderation.Content{Kind: moderation.KindReview}, "archive", now); !errors.Is(err, services.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for unknown intent, got %v", err)
	}
}

func TestParseStateAndKind(t *testing.T) {
	if state, ok := moderation.ParseState(" Published "); !ok || state != moderation.StatePublished {
		t.Fatalf("ParseState failed: %v %v", state, ok)
	}
	if _, ok := moderation.ParseState("limbo"); ok {
		t.Fatal("ParseState should reject unknown state")
	}
	if kind, ok := moderation.ParseKind("NEWS"); !ok || kind != moderation.KindNews {
		t.Fatalf("ParseKind failed: %v %v", kind, ok)
	}
}
