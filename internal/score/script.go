package score

import (
	"strings"

	"github.com/tetofu/beatpatch/internal/beat"
)

// ToScript renders the timeline as the script text the patch engine consumes:
// comma-separated entry characters, chunked into lines whose lengths follow
// the layout, each line ending with a comma, and a single trailing space
// after the final line.
//
// A layout override at key c+2 takes effect when entering 0-based line c+1;
// the engine indexes layout lines this way and the shift has to match.
func (d Data) ToScript(layout beat.Layout) string {
	var lines []string
	lineLen := beat.DefaultLineLen
	for c, i := 0, 0; i < len(d); c++ {
		end := i + lineLen
		if end > len(d) {
			end = len(d)
		}
		parts := make([]string, 0, end-i)
		for _, e := range d[i:end] {
			parts = append(parts, e.String())
		}
		lines = append(lines, strings.Join(parts, ", ")+",")
		i = end
		if l, ok := layout[c+2]; ok {
			lineLen = l
		}
	}
	return strings.Join(lines, "\n") + " "
}

// Compact returns the timeline as one character per beat slot, the form the
// maps config stores.
func (d Data) Compact() string {
	var b strings.Builder
	b.Grow(len(d))
	for _, e := range d {
		b.WriteString(e.String())
	}
	return b.String()
}

// ParseCompact parses the compact one-character-per-slot form.
func ParseCompact(s string) (Data, error) {
	data := make(Data, 0, len(s))
	for i := 0; i < len(s); i++ {
		entry, err := ParseEntry(s[i])
		if err != nil {
			return nil, err
		}
		data = append(data, entry)
	}
	return data, nil
}

// FromScore parses script text back into the flat timeline. Line breaks carry
// no beat information, so any chunking recovers the same sequence.
func FromScore(text string) (Data, error) {
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, text)

	var data Data
	for _, token := range strings.Split(stripped, ",") {
		if token == "" {
			continue
		}
		entry, err := ParseEntry(token[0])
		if err != nil {
			return nil, err
		}
		data = append(data, entry)
	}
	return data, nil
}
