// Package beat models tempo changes, the irregular line layout they induce,
// and the per-beat time table derived from them.
package beat

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultLineLen is the nominal number of beat slots per line.
const DefaultLineLen = 4

// Change is one tempo change event: starting the beat immediately after
// Index, the tempo becomes BPM.
type Change struct {
	Index int
	BPM   float64
}

// Changes is the ordered tempo-change table, indices strictly increasing.
// The initial tempo is not part of the table; it lives in the song metadata.
type Changes []Change

// Layout maps a 1-based line number to its length in beats. Entries are
// change points: a length stays in effect until the next entry. Lines before
// the first entry have DefaultLineLen.
type Layout map[int]int

// Position locates a tempo change in line/column space.
type Position struct {
	Line int
	Pos  int
}

// Layout derives the line layout forced by the tempo changes. A change off a
// 4-beat boundary shortens its line to absorb the remainder and resets the
// next line to the default length. Entries repeating the previous surviving
// length are pruned; only length changes remain.
func (c Changes) Layout() Layout {
	layout := Layout{}
	remainder := 0
	added := 0
	for _, ch := range c {
		line := (ch.Index-remainder)/DefaultLineLen + 1 + added
		lineLen := (ch.Index - remainder) % DefaultLineLen
		remainder += lineLen
		if lineLen != 0 {
			layout[line] = lineLen
			layout[line+1] = DefaultLineLen
			added++
		}
	}

	lines := make([]int, 0, len(layout))
	for line := range layout {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	prev := -1
	for _, line := range lines {
		if layout[line] == prev {
			delete(layout, line)
			continue
		}
		prev = layout[line]
	}
	return layout
}

// EntryPositions converts each change's beat index into a line/column pair
// under the derived layout.
func (c Changes) EntryPositions() []Position {
	layout := c.Layout()
	positions := make([]Position, 0, len(c))
	for _, ch := range c {
		idx := ch.Index
		line := 1
		lineLen := DefaultLineLen
		for {
			if l, ok := layout[line]; ok {
				lineLen = l
			}
			if idx < lineLen {
				break
			}
			idx -= lineLen
			line++
		}
		positions = append(positions, Position{Line: line, Pos: idx})
	}
	return positions
}

// ToScript renders the tempo-script: the sorted layout overrides followed by
// the sorted "[BPM]" lines, newline-joined with a trailing newline.
func (c Changes) ToScript() string {
	layout := c.Layout()
	lines := make([]int, 0, len(layout))
	for line := range layout {
		lines = append(lines, line)
	}
	sort.Ints(lines)

	var out []string
	for _, line := range lines {
		out = append(out, fmt.Sprintf("%d:%d,", line, layout[line]))
	}
	positions := c.EntryPositions()
	for i, pos := range positions {
		out = append(out, fmt.Sprintf("[BPM]%d:%s,", pos.Line, strconv.FormatFloat(c[i].BPM, 'f', 1, 64)))
	}
	return strings.Join(out, "\n") + "\n"
}

// FromScript parses a tempo-script back into the change table, reconstructing
// absolute beat indices from the layout-override block. It returns nil when
// the script has no "[BPM]" lines.
func FromScript(text string) (Changes, error) {
	layout := Layout{}
	type bpmLine struct {
		line int
		bpm  float64
	}
	var bpmLines []bpmLine

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), ","))
		if line == "" {
			continue
		}
		if rest, ok := strings.CutPrefix(line, "[BPM]"); ok {
			num, bpmStr, ok := strings.Cut(rest, ":")
			if !ok {
				return nil, &ParseError{Line: raw, Reason: "missing ':' in BPM line"}
			}
			n, err := strconv.Atoi(num)
			if err != nil {
				return nil, &ParseError{Line: raw, Reason: "invalid line number"}
			}
			bpm, err := strconv.ParseFloat(bpmStr, 64)
			if err != nil {
				return nil, &ParseError{Line: raw, Reason: "invalid BPM value"}
			}
			bpmLines = append(bpmLines, bpmLine{line: n, bpm: bpm})
			continue
		}
		num, lenStr, ok := strings.Cut(line, ":")
		if !ok {
			return nil, &ParseError{Line: raw, Reason: "missing ':' in layout line"}
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return nil, &ParseError{Line: raw, Reason: "invalid line number"}
		}
		l, err := strconv.Atoi(lenStr)
		if err != nil {
			return nil, &ParseError{Line: raw, Reason: "invalid line length"}
		}
		layout[n] = l
	}

	if len(bpmLines) == 0 {
		return nil, nil
	}

	changes := make(Changes, 0, len(bpmLines))
	for _, bl := range bpmLines {
		idx := 0
		lineLen := DefaultLineLen
		for line := 1; line < bl.line; line++ {
			if l, ok := layout[line]; ok {
				lineLen = l
			}
			idx += lineLen
		}
		changes = append(changes, Change{Index: idx, BPM: bl.bpm})
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Index < changes[j].Index })
	return changes, nil
}

// ParseError reports a malformed tempo-script line.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid tempo-script line %q: %s", e.Line, e.Reason)
}
