package extmap

import (
	"testing"

	"github.com/tetofu/beatpatch/internal/score"
)

const adofaiSample = "\ufeff" + `{
	"angleData": [0, 90, 180, 270, 0, 90, 180, 270],
	"settings": {
		"bpm": 150,
		"offset": 500
	},
	"actions": [
		{"floor": 1, "eventType": "PlaySound", "hitSound": "Hat"},
		{"floor": 2, "eventType": "PlaySound", "hitSound": "Kick"},
		{"floor": 3, "eventType": "PlaySound", "hitSound": "Hammer"},
		{"floor": 4, "eventType": "SetSpeed", "speedType": "Multiplier", "bpmMultiplier": 1.5},
		{"floor": 5, "eventType": "SetSpeed", "speedType": "Bpm", "beatsPerMinute": 180},
		{"floor": 6, "eventType": "MoveCamera"}
	]
}`

func TestParseADoFaI(t *testing.T) {
	ext, err := ParseADoFaI([]byte(adofaiSample))
	if err != nil {
		t.Fatalf("ParseADoFaI: %v", err)
	}
	if ext.BPM != 150 {
		t.Fatalf("bpm: got %v, want 150", ext.BPM)
	}
	if ext.Offset != 0.5 {
		t.Fatalf("offset: got %v, want 0.5", ext.Offset)
	}
	if ext.Length != 8 {
		t.Fatalf("length: got %d, want 8", ext.Length)
	}

	want := []Note{
		{Index: 0, Entry: score.Normal},
		{Index: 2, Entry: score.Heavy},
	}
	if len(ext.Notes) != len(want) {
		t.Fatalf("notes: got %v, want %v", ext.Notes, want)
	}
	for i := range want {
		if ext.Notes[i] != want[i] {
			t.Fatalf("note %d: got %+v, want %+v", i, ext.Notes[i], want[i])
		}
	}

	if len(ext.Changes) != 1 || ext.Changes[0].Index != 4 || ext.Changes[0].BPM != 180 {
		t.Fatalf("changes: got %v, want [{4 180}]", ext.Changes)
	}
}

func TestParseADoFaIRejectsEmptyAngleData(t *testing.T) {
	if _, err := ParseADoFaI([]byte(`{"settings": {"bpm": 100}}`)); err == nil {
		t.Fatal("expected error without angle data")
	}
}

func TestParseADoFaIRejectsMalformedJSON(t *testing.T) {
	if _, err := ParseADoFaI([]byte(`{"angleData": [`)); err == nil {
		t.Fatal("expected decode error")
	}
}
