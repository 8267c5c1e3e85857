// Package patchgen assembles the script and metadata bundle the external
// native patch engine consumes, and lays out the romfs output tree.
package patchgen

import "fmt"

// Buffer is a payload crossing the engine boundary together with its release
// obligation. The creator owns the bytes until the receiving side calls
// Release; Release must be called exactly once, after which Bytes is invalid.
type Buffer struct {
	data     []byte
	released bool
}

// NewBuffer wraps a payload for transfer to the engine.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

// Bytes returns the payload. It must not be retained past Release.
func (b *Buffer) Bytes() []byte {
	if b.released {
		return nil
	}
	return b.data
}

// Release discharges the ownership obligation.
func (b *Buffer) Release() {
	b.data = nil
	b.released = true
}

// ScriptParam is one difficulty's beat-script handed to the engine.
type ScriptParam struct {
	Difficulty string
	Script     *Buffer
}

// WordEntry is one language's display text as the engine expects it.
type WordEntry struct {
	Lang       string
	Title      string
	SubTitle   string
	TitleKana  string
	Artist     string
	Artist2    string
	ArtistKana string
	Original   string
}

// MusicEntry is the numeric metadata block of a song.
type MusicEntry struct {
	Area            string
	LevelEasy       int
	LevelNormal     int
	LevelHard       int
	HasTempoChanges bool
	BPM             float64
	Length          int
	DurationSec     float64
	Offset          float64
	PreviewStart    int
}

// SongEntry is a song's full metadata record for the shared asset database.
type SongEntry struct {
	ID    string
	Music MusicEntry
	Words []WordEntry
}

// Engine is the boundary to the native patch component. Implementations
// take ownership of every Buffer they receive and release it when done.
type Engine interface {
	// PatchAudio transcodes and repacks one song's audio into the ACB/AWB pair.
	PatchAudio(musicFile, acbIn, acbOut, awbOut string) error
	// PatchScore rewrites a score file with the difficulty scripts and, when
	// the tempo varies, the tempo-script.
	PatchScore(scoreIn, scoreOut, songID string, scripts []ScriptParam, tempoScript *Buffer) error
	// PatchShareData rewrites the shared asset database's music metadata.
	PatchShareData(shareIn, shareOut string, entries []SongEntry) error
}

// ErrEngineUnavailable is returned by engines that cannot run in this build.
var ErrEngineUnavailable = fmt.Errorf("native patch engine unavailable")
