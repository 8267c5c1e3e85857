package config

import (
	"os"
	"path/filepath"
	"testing"
)

const legacyYAML = `songs:
  - song_id: song01
    music_file: audio.wav
    title: タイトル
    sub_title: sub
    artist: アーティスト
    artist2: feat
    original: original work
    area: arena
    bpm: 150
    offset: 2
    length: 1500
  - song_id: song02
    title: Second
    artist: Someone
    bpm: 120
    length: 800
`

func TestLoadLegacy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.yaml")
	if err := os.WriteFile(path, []byte(legacyYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	file, err := LoadLegacy(path)
	if err != nil {
		t.Fatalf("LoadLegacy: %v", err)
	}
	if len(file.Maps) != 2 {
		t.Fatalf("got %d maps, want 2", len(file.Maps))
	}

	first := file.Maps[0].SongInfo
	if first.ID != "song01" || first.MusicFile != "audio.wav" {
		t.Fatalf("unexpected song info: %+v", first)
	}
	if first.BPM != 150 || first.Offset != 2 || first.Length != 1500 {
		t.Fatalf("integer fields must widen to floats: %+v", first)
	}
	ja, ok := first.InfoText["ja"]
	if !ok {
		t.Fatalf("missing ja info text: %+v", first.InfoText)
	}
	if ja.Title != "タイトル" || ja.SubTitle != "sub" || ja.Artist2 != "feat" || ja.Original != "original work" {
		t.Fatalf("unexpected ja text: %+v", ja)
	}
	if len(file.Maps[0].Scores) != 0 {
		t.Fatalf("legacy files carry no scores, got %+v", file.Maps[0].Scores)
	}
}

func TestLoadLegacyMissingFile(t *testing.T) {
	if _, err := LoadLegacy(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing legacy file")
	}
}

func TestLoadLegacyMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.yaml")
	if err := os.WriteFile(path, []byte("songs: [\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadLegacy(path); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	if got := DefaultMapsPath(); got != filepath.Join("/tmp/xdg-config", "beatpatch", "maps.toml") {
		t.Fatalf("unexpected maps path: %q", got)
	}
	if got := DefaultCatalogPath(); got != filepath.Join("/tmp/xdg-data", "beatpatch", "catalog.db") {
		t.Fatalf("unexpected catalog path: %q", got)
	}
}
