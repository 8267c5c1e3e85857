package score

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, s string) Data {
	t.Helper()
	data, err := ParseCompact(s)
	if err != nil {
		t.Fatalf("ParseCompact(%q): %v", s, err)
	}
	return data
}

func TestSegments(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		want  []Segment
		blank bool
	}{
		{name: "empty", data: "", want: nil},
		{name: "single run", data: "OOO", want: []Segment{{0, 3}}},
		{name: "two runs", data: "OO-S-OOO", want: []Segment{{0, 2}, {3, 1}, {5, 3}}},
		{name: "trailing run", data: "--OO", want: []Segment{{2, 2}}},
		{name: "blank runs", data: "O--S-", want: []Segment{{1, 2}, {4, 1}}, blank: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := mustParse(t, tt.data)
			got := data.Segments()
			if tt.blank {
				got = data.BlankSegments()
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d segments, want %d (%v)", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("segment %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestValidateTooLongSegments(t *testing.T) {
	data := mustParse(t, "OOOOOOOOOO")
	err := data.Validate()
	if err == nil {
		t.Fatal("expected validation error for a 10-beat run")
	}
	var tooLong *TooLongSegmentsError
	if !errors.As(err, &tooLong) {
		t.Fatalf("expected TooLongSegmentsError, got %T", err)
	}
	if len(tooLong.Segments) != 1 || tooLong.Segments[0] != (Segment{0, 10}) {
		t.Fatalf("unexpected segments: %+v", tooLong.Segments)
	}
}

func TestValidateMaxLengthRunOK(t *testing.T) {
	data := mustParse(t, "OOOOOOOOO")
	if err := data.Validate(); err != nil {
		t.Fatalf("9-beat run should validate, got %v", err)
	}
}

func TestParseEntryUnknown(t *testing.T) {
	if _, err := ParseEntry('X'); err == nil {
		t.Fatal("expected error for unknown entry")
	}
	var perr *ParseError
	_, err := ParseCompact("O-X")
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestCompactRoundTrip(t *testing.T) {
	const src = "O-S--OO-S"
	data := mustParse(t, src)
	if got := data.Compact(); got != src {
		t.Fatalf("Compact: got %q, want %q", got, src)
	}
}

func TestEntryString(t *testing.T) {
	if Blank.String() != "-" || Normal.String() != "O" || Heavy.String() != "S" {
		t.Fatalf("unexpected entry strings: %q %q %q", Blank, Normal, Heavy)
	}
}
