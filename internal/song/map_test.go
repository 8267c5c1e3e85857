package song

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/tetofu/beatpatch/internal/beat"
	"github.com/tetofu/beatpatch/internal/score"
)

type fakeCatalog map[string]struct{}

func (c fakeCatalog) Contains(id string) bool {
	_, ok := c[id]
	return ok
}

func mustScores(t *testing.T, compact string) score.Data {
	t.Helper()
	data, err := score.ParseCompact(compact)
	if err != nil {
		t.Fatalf("ParseCompact(%q): %v", compact, err)
	}
	return data
}

func validMap(t *testing.T) Map {
	t.Helper()
	return Map{
		SongInfo: SongInfo{
			ID:     "song01",
			BPM:    150,
			Length: 8,
			InfoText: map[Lang]SongInfoText{
				LangJA: {Title: "タイトル", Artist: "アーティスト"},
			},
		},
		Scores: map[Difficulty]MapScore{
			Hard: {Scores: mustScores(t, "O-S-O-O-")},
		},
	}
}

func TestValidateOK(t *testing.T) {
	m := validMap(t)
	if err := m.Validate(nil, false); err != nil {
		t.Fatalf("valid map rejected: %v", err)
	}
}

func TestValidateAggregatesIssues(t *testing.T) {
	m := Map{
		SongInfo: SongInfo{
			ID: "song01",
			InfoText: map[Lang]SongInfoText{
				LangJA: {},
			},
		},
	}
	err := m.Validate(nil, false)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []error{ErrEmptyTitle, ErrEmptyArtist, ErrEmptyScores} {
		if !errors.Is(err, want) {
			t.Fatalf("missing %v in %v", want, err)
		}
	}
}

func TestValidateEmptyInfoText(t *testing.T) {
	m := validMap(t)
	m.SongInfo.InfoText = nil
	if err := m.Validate(nil, false); !errors.Is(err, ErrEmptySongInfoText) {
		t.Fatalf("expected ErrEmptySongInfoText, got %v", err)
	}
}

func TestValidateTooLongSegmentsSurface(t *testing.T) {
	m := validMap(t)
	m.Scores[Hard] = MapScore{Scores: mustScores(t, "OOOOOOOOOO")}
	err := m.Validate(nil, false)
	var tooLong *score.TooLongSegmentsError
	if !errors.As(err, &tooLong) {
		t.Fatalf("expected TooLongSegmentsError, got %v", err)
	}
}

func TestValidateIDKinds(t *testing.T) {
	catalog := fakeCatalog{"known": {}}

	m := validMap(t)
	m.SongInfo.ID = "known"
	if err := m.Validate(catalog, true); err != nil {
		t.Fatalf("replace mode with known ID must pass: %v", err)
	}
	if err := m.Validate(catalog, false); !errors.Is(err, ErrIDExists) {
		t.Fatalf("insert mode with known ID: expected ErrIDExists, got %v", err)
	}

	m.SongInfo.ID = "fresh"
	if err := m.Validate(catalog, false); err != nil {
		t.Fatalf("insert mode with fresh ID must pass: %v", err)
	}
	if err := m.Validate(catalog, true); !errors.Is(err, ErrIDNotExists) {
		t.Fatalf("replace mode with fresh ID: expected ErrIDNotExists, got %v", err)
	}
}

func TestBeatCountHardCanonical(t *testing.T) {
	m := validMap(t)
	if got := m.BeatCount(); got != 8 {
		t.Fatalf("hard chart length: got %d, want 8", got)
	}
	delete(m.Scores, Hard)
	if got := m.BeatCount(); got != 8 {
		t.Fatalf("stored length fallback: got %d, want 8", got)
	}
}

func TestDurationAndEffectiveBPM(t *testing.T) {
	m := Map{SongInfo: SongInfo{BPM: 150, Length: 1500}}
	wantDuration := 1499.0 / 150 * 60
	if got := m.Duration(); math.Abs(got-wantDuration) > 1e-9 {
		t.Fatalf("duration: got %v, want %v", got, wantDuration)
	}
	if got := m.EffectiveBPM(); got != 150 {
		t.Fatalf("effective BPM: got %v, want 150", got)
	}
}

func TestScriptAndTempoScript(t *testing.T) {
	m := validMap(t)
	script := m.Script(Hard)
	if want := "O, -, S, -,\nO, -, O, -, "; script != want {
		t.Fatalf("script: got %q, want %q", script, want)
	}
	if got := m.Script(Easy); got != "" {
		t.Fatalf("absent chart must render empty, got %q", got)
	}
	if got := m.TempoScript(); got != "" {
		t.Fatalf("constant tempo must have no tempo-script, got %q", got)
	}

	m.SongInfo.BpmChanges = beat.Changes{{Index: 6, BPM: 180}}
	ts := m.TempoScript()
	if !strings.Contains(ts, "[BPM]") {
		t.Fatalf("tempo-script missing BPM line: %q", ts)
	}
}

func TestEndToEndConstantTempo(t *testing.T) {
	m := validMap(t)
	m.SongInfo.BPM = 150
	m.SongInfo.Length = 1500
	m.Scores[Hard] = MapScore{Scores: mustScores(t, strings.Repeat("O---", 375))}

	if err := m.Validate(nil, false); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := m.EffectiveBPM(); got != 150 {
		t.Fatalf("effective BPM: got %v, want 150", got)
	}
	wantDuration := 1499.0 / 150 * 60
	if got := m.Duration(); math.Abs(got-wantDuration) > 1e-3 {
		t.Fatalf("duration: got %v, want %v", got, wantDuration)
	}
}

func TestParseDifficulty(t *testing.T) {
	for name, want := range map[string]Difficulty{"easy": Easy, "normal": Normal, "hard": Hard} {
		got, err := ParseDifficulty(name)
		if err != nil || got != want {
			t.Fatalf("ParseDifficulty(%q) = %v, %v", name, got, err)
		}
	}
	if _, err := ParseDifficulty("expert"); err == nil {
		t.Fatal("expected error for unknown difficulty")
	}
}

func TestCombinedText(t *testing.T) {
	text := SongInfoText{Title: "Title", SubTitle: "Sub", Artist: "A", Artist2: "B"}
	if got := text.CombinedTitle(); got != "Title Sub" {
		t.Fatalf("combined title: got %q", got)
	}
	if got := text.CombinedArtist(); got != "A B" {
		t.Fatalf("combined artist: got %q", got)
	}
	bare := SongInfoText{Title: "Title", Artist: "A"}
	if got := bare.CombinedTitle(); got != "Title" {
		t.Fatalf("bare title: got %q", got)
	}
}
