package song

import (
	"errors"
	"fmt"

	"github.com/tetofu/beatpatch/internal/beat"
	"github.com/tetofu/beatpatch/internal/score"
)

// Difficulty selects one of the three charts of a song.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Normal
	Hard
)

// String returns the name the patch engine expects.
func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "Easy"
	case Normal:
		return "Normal"
	case Hard:
		return "Hard"
	}
	return fmt.Sprintf("Difficulty(%d)", uint8(d))
}

// Difficulties in chart order.
var Difficulties = []Difficulty{Easy, Normal, Hard}

// ParseDifficulty maps a lowercase difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "normal":
		return Normal, nil
	case "hard":
		return Hard, nil
	}
	return Easy, fmt.Errorf("unknown difficulty %q", s)
}

// MapScore is one difficulty's chart.
type MapScore struct {
	Scores score.Data
}

// Map is a complete patchable song: metadata plus per-difficulty charts.
// Value semantics throughout; the line layout is always recomputed from the
// tempo changes, never stored.
type Map struct {
	SongInfo SongInfo
	Scores   map[Difficulty]MapScore
}

// IDCatalog answers whether a song ID exists in the game's catalog.
type IDCatalog interface {
	Contains(id string) bool
}

// Validate runs every invariant check and aggregates the failures. With a
// non-nil catalog the ID kind is checked against the patch mode: replacing
// needs an existing ID, inserting needs a fresh one.
func (m *Map) Validate(catalog IDCatalog, replaceOnly bool) error {
	var errs []error

	if err := m.SongInfo.Validate(); err != nil {
		errs = append(errs, err)
	}
	if len(m.Scores) == 0 {
		errs = append(errs, ErrEmptyScores)
	}
	for _, d := range Difficulties {
		ms, ok := m.Scores[d]
		if !ok {
			continue
		}
		if err := ms.Scores.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", d, err))
		}
	}
	if catalog != nil {
		exists := catalog.Contains(m.SongInfo.ID)
		if replaceOnly && !exists {
			errs = append(errs, idError(ErrIDNotExists, m.SongInfo.ID))
		}
		if !replaceOnly && exists {
			errs = append(errs, idError(ErrIDExists, m.SongInfo.ID))
		}
	}

	return errors.Join(errs...)
}

// BeatCount is the canonical song length in beats: the Hard chart when
// present, the stored length otherwise.
func (m *Map) BeatCount() int {
	if hard, ok := m.Scores[Hard]; ok && len(hard.Scores) > 0 {
		return len(hard.Scores)
	}
	return int(m.SongInfo.Length)
}

// Timetable is the per-beat time table over the canonical beat count.
func (m *Map) Timetable() []float64 {
	return beat.Timetable(m.SongInfo.BPM, m.BeatCount(), m.SongInfo.BpmChanges)
}

// Duration is the elapsed time through the song's last beat, in seconds.
func (m *Map) Duration() float64 {
	return beat.Duration(m.SongInfo.BPM, m.BeatCount(), m.SongInfo.BpmChanges)
}

// EffectiveBPM is the constant tempo that reproduces the song's duration
// over its beat count.
func (m *Map) EffectiveBPM() float64 {
	return beat.EffectiveBPM(m.SongInfo.BPM, m.BeatCount(), m.SongInfo.BpmChanges)
}

// Script renders a difficulty's beat-script under the derived layout.
func (m *Map) Script(d Difficulty) string {
	ms, ok := m.Scores[d]
	if !ok {
		return ""
	}
	return ms.Scores.ToScript(m.SongInfo.BpmChanges.Layout())
}

// TempoScript renders the tempo-script, or "" for constant-tempo songs.
func (m *Map) TempoScript() string {
	if !m.SongInfo.HasTempoChanges() {
		return ""
	}
	return m.SongInfo.BpmChanges.ToScript()
}
