// Package extmap extracts note timings and tempo curves from external map
// formats (osu!, ADoFaI) into the internal beat-slot model.
package extmap

import (
	"github.com/tetofu/beatpatch/internal/beat"
	"github.com/tetofu/beatpatch/internal/score"
	"github.com/tetofu/beatpatch/internal/song"
)

// Note assigns an entry to one beat slot.
type Note struct {
	Index int
	Entry score.Entry
}

// Extract is the beat-aligned result of reading an external map source.
type Extract struct {
	// BPM is the initial tempo.
	BPM float64
	// Offset is the audio lead-in in seconds.
	Offset float64
	// Length is the song length in beats.
	Length int
	// Preview is the preview start in milliseconds; 0 when the source has none.
	Preview int
	// Notes are the beat-slot assignments, indices within [0, Length).
	Notes []Note
	// Changes is the tempo-change table; nil for constant tempo.
	Changes beat.Changes
}

// ScoreData lays the notes out over a blank timeline of the song's length.
func (e Extract) ScoreData() score.Data {
	data := make(score.Data, e.Length)
	for _, n := range e.Notes {
		if n.Index >= 0 && n.Index < len(data) {
			data[n.Index] = n.Entry
		}
	}
	return data
}

// ApplyTo writes the extraction into a map at the given difficulty,
// refining the timeline so it satisfies the segment rules. Display text
// gets a blank Japanese entry when the map has none yet, ready for editing.
func (e Extract) ApplyTo(m *song.Map, d song.Difficulty) {
	m.SongInfo.BPM = e.BPM
	m.SongInfo.Offset = e.Offset
	m.SongInfo.Length = float64(e.Length)
	if e.Preview > 0 {
		m.SongInfo.PreviewStart = e.Preview
	}
	if len(e.Changes) > 0 {
		m.SongInfo.BpmChanges = e.Changes
	}

	data := e.ScoreData()
	data.Refine(e.BPM)
	if m.Scores == nil {
		m.Scores = map[song.Difficulty]song.MapScore{}
	}
	m.Scores[d] = song.MapScore{Scores: data}

	if len(m.SongInfo.InfoText) == 0 {
		m.SongInfo.InfoText = map[song.Lang]song.SongInfoText{song.LangJA: {}}
	}
}
