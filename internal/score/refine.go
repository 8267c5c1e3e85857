package score

import "math"

// Refine post-processes a converted timeline so it is playable: runs longer
// than the maximum are split, most of the remaining mid-length runs are
// broken up, and long silent stretches get filler notes.
func (d Data) Refine(bpm float64) {
	d.SplitSegments(MaxSegmentLen, 1)
	d.SplitSegments(5, 0.75)
	d.FillGap(3, bpm)
}

// SplitSegments blanks out beats inside runs longer than maxLen until none
// remain. With ratio below 1 only that share of the long runs is split, in a
// single pass.
func (d Data) SplitSegments(maxLen int, ratio float64) {
	segments := d.Segments()
	for {
		var long []Segment
		for _, seg := range segments {
			if seg.Length > maxLen {
				long = append(long, seg)
			}
		}
		if len(long) == 0 {
			return
		}

		count := int(math.Round(float64(len(long)) * ratio))
		if count == 0 {
			return
		}
		step := len(long) / count

		for i := 0; i < len(long); i += step {
			seg := long[i]
			best := splitScore(seg.Length, 2)
			for s := 3; s < maxLen; s++ {
				if cand := splitScore(seg.Length, s); cand.score > best.score {
					best = cand
				}
			}
			for j := 0; j < best.quotient; j++ {
				d[seg.Start+j*(best.split+1)] = Blank
			}
			if best.remainder == 1 {
				d[seg.Start+seg.Length-1] = Heavy
			}
		}

		if ratio != 1 {
			return
		}
		segments = d.Segments()
	}
}

// FillGap drops filler notes into blank stretches longer than gapSeconds.
func (d Data) FillGap(gapSeconds float64, bpm float64) {
	gapBeats := int(math.Round(gapSeconds / 60 * bpm))
	for _, seg := range d.BlankSegments() {
		if seg.Length <= gapBeats {
			continue
		}
		for i := seg.Start + gapBeats; i < seg.Start+seg.Length; i += 5 {
			d[i] = Normal
		}
	}
}

type splitPlan struct {
	score     int
	split     int
	quotient  int
	remainder int
}

// splitScore rates splitting a run of the given length with blanks every
// split+1 beats; higher is better.
func splitScore(length, split int) splitPlan {
	quotient := length / split
	remainder := length % split
	if remainder < quotient {
		quotient--
	}
	quotient = (length - quotient) / split
	remainder = (length - quotient) % split
	return splitPlan{
		score:     split - quotient - remainder,
		split:     split,
		quotient:  quotient,
		remainder: remainder,
	}
}
