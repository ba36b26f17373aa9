// Package boxes - Bounding box geometry for detection post-processing.
package boxes

import "github.com/chewxy/math32"

// Rect is a lightweight corner-form bounding box.
//
// Coordinates are float32 because detector outputs are sub-pixel; rounding to
// integer rectangles this early would shift IoU values near the suppression
// threshold.
type Rect struct {
	// X2,Y2 are exclusive (like image.Rectangle).
	X1, Y1, X2, Y2 float32
}

// Area returns the area of the rectangle. Degenerate (inverted) rectangles
// have zero area.
func (r Rect) Area() float32 {
	w := r.X2 - r.X1
	h := r.Y2 - r.Y1
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// CalculateIoU computes the Intersection over Union of two rectangles.
//
// IoU is the standard overlap metric used by Non-Maximum Suppression:
//
//	IoU = Area of Intersection / Area of Union
//
//   - 1.0 means the rectangles are identical.
//   - 0.0 means they do not overlap at all.
//
// The union is computed with the Principle of Inclusion-Exclusion:
//
//	Union(A, B) = Area(A) + Area(B) - Intersection(A, B)
//
// A zero-area union (both rectangles degenerate) yields 0 rather than NaN so
// suppression loops never have to special-case empty boxes.
//
// See also:
//   - http://ronny.rest/tutorials/module/localization_001/iou
//
// Arguments:
//   - r: The first rectangle.
//   - o: The other rectangle to compare against.
//
// Returns:
//   - float32: A value between 0.0 and 1.0 representing the IoU score.
func CalculateIoU(r, o Rect) float32 {
	// The intersection starts where both rectangles have begun and ends as
	// soon as the first one ends.
	ix1 := math32.Max(r.X1, o.X1)
	iy1 := math32.Max(r.Y1, o.Y1)
	ix2 := math32.Min(r.X2, o.X2)
	iy2 := math32.Min(r.Y2, o.Y2)

	interW := ix2 - ix1
	interH := iy2 - iy1
	if interW <= 0 || interH <= 0 {
		return 0
	}
	interArea := interW * interH

	unionArea := r.Area() + o.Area() - interArea
	if unionArea <= 0 {
		return 0
	}

	return interArea / unionArea
}

// Clamp constrains v to the inclusive range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}
