package vision

import "sort"

// Filter drops candidates below the confidence threshold.
func Filter(candidates []Detection, confidence float64) []Detection {
	kept := make([]Detection, 0, len(candidates))
	for _, det := range candidates {
		if det.Confidence > confidence {
			kept = append(kept, det)
		}
	}
	return kept
}

// Suppress applies greedy non-maximum suppression: candidates are visited in
// descending confidence order and kept only when their overlap with every
// already-kept box stays at or below the threshold.
func Suppress(candidates []Detection, overlap float64) []Detection {
	if len(candidates) <= 1 {
		return candidates
	}

	sorted := make([]Detection, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	kept := make([]Detection, 0, len(sorted))
	for _, det := range sorted {
		suppressed := false
		for _, winner := range kept {
			if iou(det, winner) > overlap {
				suppressed = true
				break
			}
		}
		if !suppressed {
			kept = append(kept, det)
		}
	}
	return kept
}

func iou(a, b Detection) float64 {
	ax2 := a.Box.X + a.Box.W
	ay2 := a.Box.Y + a.Box.H
	bx2 := b.Box.X + b.Box.W
	by2 := b.Box.Y + b.Box.H

	ix := min(ax2, bx2) - max(a.Box.X, b.Box.X)
	iy := min(ay2, by2) - max(a.Box.Y, b.Box.Y)
	if ix <= 0 || iy <= 0 {
		return 0
	}

	intersection := float64(ix * iy)
	union := float64(a.Box.W*a.Box.H+b.Box.W*b.Box.H) - intersection
	if union <= 0 {
		return 0
	}
	return intersection / union
}
