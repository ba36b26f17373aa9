package parse

import (
	"sort"

	"github.com/nvr-ai/go-yolo/boxes"
)

// suppress applies class-aware greedy Non-Maximum Suppression.
//
// Candidates are stable-sorted by descending confidence, so equal scores
// keep their decode order; that order is the deterministic tie-break for
// which of two equally confident boxes survives. Walking in that order, each
// unsuppressed candidate is accepted and every later same-class candidate
// overlapping it above iouThreshold is marked suppressed. Acceptance stops
// once maxDetections boxes have been kept.
//
// Arguments:
//   - candidates: Unordered decoded candidates; the slice is reordered in
//     place.
//   - iouThreshold: Overlap above which same-class boxes are suppressed.
//   - maxDetections: Upper bound on the number of boxes kept.
//
// Returns:
//   - Kept candidates in descending-confidence order, at most
//     maxDetections of them, no two of which share a class and overlap
//     above iouThreshold. Nil if there are no candidates.
func suppress(candidates []Candidate, iouThreshold float32, maxDetections int) []Candidate {
	n := len(candidates)
	if n == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Confidence > candidates[j].Confidence
	})

	kept := make([]Candidate, 0, min(n, maxDetections))
	used := make([]bool, n)

	for i := 0; i < n && len(kept) < maxDetections; i++ {
		if used[i] {
			continue
		}

		anchor := candidates[i]
		kept = append(kept, anchor)
		used[i] = true

		anchorRect := anchor.Rect()
		for j := i + 1; j < n; j++ {
			if used[j] || candidates[j].ClassID != anchor.ClassID {
				continue
			}
			if boxes.CalculateIoU(anchorRect, candidates[j].Rect()) > iouThreshold {
				used[j] = true
			}
		}
	}

	return kept
}
