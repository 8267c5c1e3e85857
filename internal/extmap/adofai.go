package extmap

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tetofu/beatpatch/internal/beat"
	"github.com/tetofu/beatpatch/internal/score"
)

type adofaiMap struct {
	AngleData []float64      `json:"angleData"`
	Settings  adofaiSettings `json:"settings"`
	Actions   []adofaiAction `json:"actions"`
}

type adofaiSettings struct {
	BPM    float64 `json:"bpm"`
	Offset float64 `json:"offset"` // ms
}

type adofaiAction struct {
	Floor     int     `json:"floor"`
	EventType string  `json:"eventType"`
	HitSound  string  `json:"hitSound"`
	SpeedType string  `json:"speedType"`
	BPM       float64 `json:"beatsPerMinute"`
}

// ParseADoFaI extracts the beat-aligned model from an .adofai map. Every
// floor is one beat slot; PlaySound actions become notes (Hat normal,
// Hammer heavy) and SetSpeed actions with a BPM speed type become tempo
// changes. ADoFaI files often start with a BOM, which is tolerated.
func ParseADoFaI(data []byte) (Extract, error) {
	text := strings.TrimPrefix(string(data), "\ufeff")
	var m adofaiMap
	if err := json.Unmarshal([]byte(text), &m); err != nil {
		return Extract{}, fmt.Errorf("failed to decode adofai map: %w", err)
	}
	if len(m.AngleData) == 0 {
		return Extract{}, fmt.Errorf("adofai map has no angle data")
	}

	var notes []Note
	var changes beat.Changes
	for _, action := range m.Actions {
		switch action.EventType {
		case "PlaySound":
			var entry score.Entry
			switch action.HitSound {
			case "Hat":
				entry = score.Normal
			case "Hammer":
				entry = score.Heavy
			default:
				continue
			}
			notes = append(notes, Note{Index: action.Floor - 1, Entry: entry})
		case "SetSpeed":
			if action.SpeedType != "Bpm" {
				continue
			}
			changes = append(changes, beat.Change{Index: action.Floor - 1, BPM: action.BPM})
		}
	}

	return Extract{
		BPM:     m.Settings.BPM,
		Offset:  m.Settings.Offset / 1000,
		Length:  len(m.AngleData),
		Notes:   notes,
		Changes: changes,
	}, nil
}
