package parse

// decode reads every prediction in the buffer under the resolved plan and
// returns the candidates at or above the confidence threshold.
//
// Both layouts share this one loop; they differ only in how a
// (channel, prediction) pair maps into the flat buffer and in how the final
// confidence is composed. Channel-major heads have no objectness term, so
// confidence is the best class score directly. Row-major heads carry an
// objectness scalar in channel 4 which gates the row (a row whose objectness
// is already below threshold is skipped without scanning class scores) and
// multiplies into the final confidence.
func decode(data []float32, p plan, confThreshold float32) []Candidate {
	at := func(ch, pred int) float32 { return data[ch*p.predictions+pred] }
	classBase := 4
	if p.layout == rowMajor {
		at = func(ch, pred int) float32 { return data[pred*p.channels+ch] }
		classBase = 5
	}

	candidates := make([]Candidate, 0, 1000)

	for i := 0; i < p.predictions; i++ {
		gate := float32(1)
		if p.layout == rowMajor {
			gate = at(4, i)
			if gate < confThreshold {
				continue
			}
		}

		best := float32(0)
		bestClass := 0
		for c := 0; c < p.classes; c++ {
			if score := at(classBase+c, i); score > best {
				best = score
				bestClass = c
			}
		}

		confidence := gate * best
		if confidence < confThreshold {
			continue
		}

		candidates = append(candidates, Candidate{
			CenterX:    at(0, i),
			CenterY:    at(1, i),
			Width:      at(2, i),
			Height:     at(3, i),
			Confidence: confidence,
			ClassID:    bestClass,
		})
	}

	return candidates
}
