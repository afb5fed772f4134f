package moderation

import "strings"

// State represents the moderation lifecycle of a piece of content.
type State string

const (
	StateDraft     State = "draft"
	StateInReview  State = "in_review"
	StatePublished State = "published"
	StateForbidden State = "forbidden"
	StateDeleted   State = "deleted"
)

var allStates = []State{
	StateDraft,
	StateInReview,
	StatePublished,
	StateForbidden,
	StateDeleted,
}

var stateSet = func() map[State]struct{} {
	set := make(map[State]struct{}, len(allStates))
	for _, state := range allStates {
		set[state] = struct{}{}
	}
	return set
}()

// AllStates returns the ordered list of known states.
func AllStates() []State {
	cp := make([]State, len(allStates))
	copy(cp, allStates)
	return cp
}

// ParseState converts a string into a known State.
func ParseState(value string) (State, bool) {
	normalized := State(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := stateSet[normalized]
	return normalized, ok
}

// Kind identifies the content type being moderated.
type Kind string

const (
	KindReview Kind = "review"
	KindNews   Kind = "news"
)

// ParseKind converts a string into a known Kind.
func ParseKind(value string) (Kind, bool) {
	normalized := Kind(strings.ToLower(strings.TrimSpace(value)))
	switch normalized {
	case KindReview, KindNews:
		return normalized, true
	default:
		return "", false
	}
}

// Intent describes what the author asked the save operation to do.
type Intent string

const (
	IntentDraft   Intent = "draft"
	IntentPublish Intent = "publish"
)
