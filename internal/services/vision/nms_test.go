package vision_test

import (
	"testing"

	"moviesphere/internal/media"
	"moviesphere/internal/services/vision"
)

func det(x, y, w, h int, conf float64) vision.Detection {
	return vision.Detection{Box: media.Box{X: x, Y: y, W: w, H: h}, Confidence: conf}
}

func TestFilterDropsLowConfidence(t *testing.T) {
	candidates := []vision.Detection{det(0, 0, 10, 10, 0.9), det(0, 0, 10, 10, 0.5)}
	kept := vision.Filter(candidates, 0.7)
	if len(kept) != 1 || kept[0].Confidence != 0.9 {
		t.Fatalf("unexpected filter result: %v", kept)
	}
}

func TestSuppressRemovesOverlappingBoxes(t *testing.T) {
	candidates := []vision.Detection{
		det(0, 0, 100, 100, 0.8),
		det(5, 5, 100, 100, 0.95), // heavy overlap with the first, higher confidence
		det(300, 300, 50, 50, 0.75),
	}
	kept := vision.Suppress(candidates, 0.4)
	if len(kept) != 2 {
		t.Fatalf("expected 2 kept boxes, got %v", kept)
	}
	if kept[0].Confidence != 0.95 {
		t.Fatalf("highest confidence box should win, got %v", kept[0])
	}
	if kept[1].Box.X != 300 {
		t.Fatalf("distant box should survive, got %v", kept[1])
	}
}

func TestSuppressKeepsDisjointBoxes(t *testing.T) {
	candidates := []vision.Detection{
		det(0, 0, 10, 10, 0.9),
		det(100, 100, 10, 10, 0.8),
		det(200, 200, 10, 10, 0.7),
	}
	if kept := vision.Suppress(candidates, 0.4); len(kept) != 3 {
		t.Fatalf("disjoint boxes must all survive, got %v", kept)
	}
}
