// Package score models the per-beat note timeline of a song.
package score

import (
	"fmt"
	"strings"
)

// MaxSegmentLen is the longest playable run of consecutive non-blank beats.
const MaxSegmentLen = 9

// Entry is a single beat slot marker.
type Entry uint8

const (
	// Blank is an empty beat slot ("-").
	Blank Entry = iota
	// Normal is a regular note ("O").
	Normal
	// Heavy is an accented note ("S").
	Heavy
)

// String returns the single-character script form of the entry.
func (e Entry) String() string {
	switch e {
	case Normal:
		return "O"
	case Heavy:
		return "S"
	default:
		return "-"
	}
}

// ParseEntry maps a script character back to an entry.
func ParseEntry(c byte) (Entry, error) {
	switch c {
	case 'O':
		return Normal, nil
	case 'S':
		return Heavy, nil
	case '-':
		return Blank, nil
	}
	return Blank, &ParseError{Token: string(c), Reason: "unknown score entry"}
}

// Data is the ordered note timeline, one entry per beat slot.
type Data []Entry

// Segment is a maximal run of equal-kind beat slots.
type Segment struct {
	Start  int
	Length int
}

// Segments returns all maximal non-blank runs in order.
func (d Data) Segments() []Segment {
	return d.segments(false)
}

// BlankSegments returns all maximal blank runs in order.
func (d Data) BlankSegments() []Segment {
	return d.segments(true)
}

func (d Data) segments(blank bool) []Segment {
	var segs []Segment
	count := 0
	start := 0
	for i, e := range d {
		if (e != Blank) != blank {
			if count == 0 {
				start = i
			}
			count++
		} else if count != 0 {
			segs = append(segs, Segment{Start: start, Length: count})
			count = 0
		}
	}
	if count != 0 {
		segs = append(segs, Segment{Start: start, Length: count})
	}
	return segs
}

// Validate reports every non-blank run longer than MaxSegmentLen.
func (d Data) Validate() error {
	var long []Segment
	for _, seg := range d.Segments() {
		if seg.Length > MaxSegmentLen {
			long = append(long, seg)
		}
	}
	if len(long) > 0 {
		return &TooLongSegmentsError{Segments: long}
	}
	return nil
}

// TooLongSegmentsError lists every run exceeding MaxSegmentLen.
type TooLongSegmentsError struct {
	Segments []Segment
}

func (e *TooLongSegmentsError) Error() string {
	parts := make([]string, 0, len(e.Segments))
	for _, seg := range e.Segments {
		parts = append(parts, fmt.Sprintf("(%d, %d)", seg.Start, seg.Length))
	}
	return fmt.Sprintf("segments longer than %d beats: %s", MaxSegmentLen, strings.Join(parts, ", "))
}

// ParseError reports a malformed script token.
type ParseError struct {
	Token  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid score token %q: %s", e.Token, e.Reason)
}
