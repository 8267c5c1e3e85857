package score

import "testing"

func TestSplitSegmentsLongRun(t *testing.T) {
	data := mustParse(t, "OOOOOOOOOO")
	data.SplitSegments(MaxSegmentLen, 1)
	if got, want := data.Compact(), "-OOOOOOOOS"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if err := data.Validate(); err != nil {
		t.Fatalf("split data should validate: %v", err)
	}
}

func TestSplitSegmentsKeepsShortRuns(t *testing.T) {
	data := mustParse(t, "OOOO-OOO")
	data.SplitSegments(MaxSegmentLen, 1)
	if got, want := data.Compact(), "OOOO-OOO"; got != want {
		t.Fatalf("short runs must stay untouched: got %q, want %q", got, want)
	}
}

func TestFillGap(t *testing.T) {
	data := mustParse(t, "O------------O")
	// 3 seconds at 100 BPM is 5 beats; longer silences get filler notes
	// every 5 beats starting at the threshold.
	data.FillGap(3, 100)
	if got, want := data.Compact(), "O-----O----O-O"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFillGapLeavesShortGaps(t *testing.T) {
	data := mustParse(t, "O----O")
	data.FillGap(3, 100)
	if got, want := data.Compact(), "O----O"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestRefineProducesPlayableData(t *testing.T) {
	data := make(Data, 40)
	for i := 0; i < 20; i++ {
		data[i] = Normal
	}
	data.Refine(120)
	if err := data.Validate(); err != nil {
		t.Fatalf("refined data should validate: %v", err)
	}
	if len(data.Segments()) == 0 {
		t.Fatal("refined data lost all notes")
	}
}
