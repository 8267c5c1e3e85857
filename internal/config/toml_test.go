package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tetofu/beatpatch/internal/beat"
	"github.com/tetofu/beatpatch/internal/song"
)

func sampleRecord() MapRecord {
	return MapRecord{
		SongInfo: SongInfoRecord{
			ID:           "song01",
			MusicFile:    "audio.wav",
			BPM:          150.5,
			Offset:       0.25,
			Length:       16,
			Area:         "arena",
			PreviewStart: 30000,
			InfoText: map[string]TextRecord{
				"ja": {Title: "タイトル", Artist: "アーティスト"},
				"en": {Title: "Title", Artist: "Artist"},
			},
			BpmChanges: []ChangeRecord{{Index: 8, BPM: 180}},
		},
		Scores: map[string]ScoreRecord{
			"hard": {Scores: "O-S-O-O-O-S-O-O-"},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.toml")
	want := MapsFile{Maps: []MapRecord{sampleRecord()}}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Maps) != 1 {
		t.Fatalf("got %d maps, want 1", len(got.Maps))
	}
	rec := got.Maps[0]
	if rec.SongInfo.ID != "song01" || rec.SongInfo.BPM != 150.5 {
		t.Fatalf("unexpected song info: %+v", rec.SongInfo)
	}
	if rec.SongInfo.InfoText["ja"].Title != "タイトル" {
		t.Fatalf("unexpected info text: %+v", rec.SongInfo.InfoText)
	}
	if rec.Scores["hard"].Scores != "O-S-O-O-O-S-O-O-" {
		t.Fatalf("unexpected scores: %+v", rec.Scores)
	}
	if len(rec.SongInfo.BpmChanges) != 1 || rec.SongInfo.BpmChanges[0].Index != 8 {
		t.Fatalf("unexpected bpm changes: %+v", rec.SongInfo.BpmChanges)
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if len(got.Maps) != 0 {
		t.Fatalf("expected empty config, got %d maps", len(got.Maps))
	}
}

func TestLoadEmptyPath(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.toml")
	if err := os.WriteFile(path, []byte("maps = [[\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestRecordConversionRoundTrip(t *testing.T) {
	m, err := sampleRecord().ToMap()
	if err != nil {
		t.Fatalf("ToMap: %v", err)
	}
	if m.SongInfo.ID != "song01" {
		t.Fatalf("unexpected ID: %q", m.SongInfo.ID)
	}
	if m.SongInfo.InfoText[song.LangEN].Title != "Title" {
		t.Fatalf("unexpected info text: %+v", m.SongInfo.InfoText)
	}
	if len(m.SongInfo.BpmChanges) != 1 || m.SongInfo.BpmChanges[0] != (beat.Change{Index: 8, BPM: 180}) {
		t.Fatalf("unexpected changes: %+v", m.SongInfo.BpmChanges)
	}
	hard, ok := m.Scores[song.Hard]
	if !ok || hard.Scores.Compact() != "O-S-O-O-O-S-O-O-" {
		t.Fatalf("unexpected hard scores: %+v", m.Scores)
	}

	back := FromMap(m)
	if back.SongInfo.ID != "song01" || back.SongInfo.MusicFile != "audio.wav" {
		t.Fatalf("unexpected record: %+v", back.SongInfo)
	}
	if back.Scores["hard"].Scores != "O-S-O-O-O-S-O-O-" {
		t.Fatalf("unexpected scores record: %+v", back.Scores)
	}
}

func TestToMapRejectsBadDifficulty(t *testing.T) {
	rec := sampleRecord()
	rec.Scores = map[string]ScoreRecord{"expert": {Scores: "O"}}
	if _, err := rec.ToMap(); err == nil {
		t.Fatal("expected error for unknown difficulty key")
	}
}

func TestToMapRejectsBadScores(t *testing.T) {
	rec := sampleRecord()
	rec.Scores = map[string]ScoreRecord{"hard": {Scores: "OXO"}}
	if _, err := rec.ToMap(); err == nil {
		t.Fatal("expected error for malformed score characters")
	}
}
