// Package song aggregates score data and metadata into patchable maps and
// rates their difficulty.
package song

import (
	"errors"
	"fmt"

	"github.com/tetofu/beatpatch/internal/beat"
)

// Lang is a display-text language code.
type Lang string

// Languages the game ships display text for.
const (
	LangJA  Lang = "ja"
	LangEN  Lang = "en"
	LangKO  Lang = "ko"
	LangCHS Lang = "chs"
	LangCHT Lang = "cht"
)

// SongInfoText is the per-language display text of a song.
type SongInfoText struct {
	Title      string
	TitleKana  string
	SubTitle   string
	Artist     string
	Artist2    string
	ArtistKana string
	Original   string
}

// CombinedTitle joins title and subtitle for display.
func (t SongInfoText) CombinedTitle() string {
	if t.SubTitle == "" {
		return t.Title
	}
	return t.Title + " " + t.SubTitle
}

// CombinedArtist joins both artist credits for display.
func (t SongInfoText) CombinedArtist() string {
	if t.Artist2 == "" {
		return t.Artist
	}
	return t.Artist + " " + t.Artist2
}

// Validate checks the required fields.
func (t SongInfoText) Validate() error {
	var errs []error
	if t.Title == "" {
		errs = append(errs, ErrEmptyTitle)
	}
	if t.Artist == "" {
		errs = append(errs, ErrEmptyArtist)
	}
	return errors.Join(errs...)
}

// SongInfo is the per-song metadata block.
type SongInfo struct {
	// ID is either an existing catalog ID (replace mode) or a free-form new
	// one (insert mode).
	ID string
	// MusicFile is the audio source handed to the external transcoder.
	MusicFile string
	// BPM is the initial tempo.
	BPM float64
	// Offset is the audio lead-in, in seconds.
	Offset float64
	// Length is the song length in beats.
	Length float64
	// Area is the venue tag shown in song select.
	Area string
	// PreviewStart is the preview start offset in milliseconds.
	PreviewStart int
	// DLCIndex associates the song with a DLC; informational, never written.
	DLCIndex int
	// InfoText holds display text per language; at least one entry required.
	InfoText map[Lang]SongInfoText
	// BpmChanges is nil for constant-tempo songs.
	BpmChanges beat.Changes
}

// HasTempoChanges reports whether the song's tempo varies.
func (si *SongInfo) HasTempoChanges() bool {
	return len(si.BpmChanges) > 0
}

// Validate checks the metadata completeness rules.
func (si *SongInfo) Validate() error {
	if len(si.InfoText) == 0 {
		return ErrEmptySongInfoText
	}
	var errs []error
	for lang, text := range si.InfoText {
		if err := text.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("text %q: %w", lang, err))
		}
	}
	return errors.Join(errs...)
}
