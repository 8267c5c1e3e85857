// Package config loads and saves the multi-map TOML configuration and
// migrates legacy YAML files.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/tetofu/beatpatch/internal/beat"
	"github.com/tetofu/beatpatch/internal/score"
	"github.com/tetofu/beatpatch/internal/song"
)

// MapsFile is the persisted multi-map configuration.
type MapsFile struct {
	Maps []MapRecord `toml:"maps"`
}

// MapRecord is one song entry in the maps file.
type MapRecord struct {
	SongInfo SongInfoRecord         `toml:"song_info"`
	Scores   map[string]ScoreRecord `toml:"scores"`
}

// SongInfoRecord mirrors song.SongInfo with stable field names. BPM, offset
// and length are floating point; older integer-typed files go through the
// legacy loader instead.
type SongInfoRecord struct {
	ID           string                `toml:"id"`
	MusicFile    string                `toml:"music_file,omitempty"`
	BPM          float64               `toml:"bpm"`
	Offset       float64               `toml:"offset"`
	Length       float64               `toml:"length"`
	Area         string                `toml:"area,omitempty"`
	PreviewStart int                   `toml:"preview_start,omitempty"`
	DLCIndex     int                   `toml:"dlc_index,omitempty"`
	InfoText     map[string]TextRecord `toml:"info_text"`
	BpmChanges   []ChangeRecord        `toml:"bpm_changes,omitempty"`
}

// ChangeRecord is one tempo change.
type ChangeRecord struct {
	Index int     `toml:"index"`
	BPM   float64 `toml:"bpm"`
}

// TextRecord is one language's display text.
type TextRecord struct {
	Title      string `toml:"title"`
	TitleKana  string `toml:"title_kana,omitempty"`
	SubTitle   string `toml:"sub_title,omitempty"`
	Artist     string `toml:"artist"`
	Artist2    string `toml:"artist2,omitempty"`
	ArtistKana string `toml:"artist_kana,omitempty"`
	Original   string `toml:"original,omitempty"`
}

// ScoreRecord holds one difficulty's timeline in compact form.
type ScoreRecord struct {
	Scores string `toml:"scores"`
}

// Load reads a maps file. A missing file yields an empty configuration.
func Load(path string) (MapsFile, error) {
	if path == "" {
		return MapsFile{}, fmt.Errorf("maps config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return MapsFile{}, nil
		}
		return MapsFile{}, fmt.Errorf("failed to stat maps config: %w", err)
	}
	var file MapsFile
	if _, err := toml.DecodeFile(path, &file); err != nil {
		return MapsFile{}, fmt.Errorf("failed to decode maps config: %w", err)
	}
	return file, nil
}

// Save writes the maps file.
func Save(path string, file MapsFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create maps config: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close; encoder errors already reported.
			_ = cerr
		}
	}()
	if err := toml.NewEncoder(f).Encode(file); err != nil {
		return fmt.Errorf("failed to encode maps config: %w", err)
	}
	return nil
}

// ToMaps converts every record into the domain model.
func (f MapsFile) ToMaps() ([]song.Map, error) {
	maps := make([]song.Map, 0, len(f.Maps))
	for i, rec := range f.Maps {
		m, err := rec.ToMap()
		if err != nil {
			return nil, fmt.Errorf("map %d: %w", i, err)
		}
		maps = append(maps, m)
	}
	return maps, nil
}

// ToMap converts one record into the domain model.
func (r MapRecord) ToMap() (song.Map, error) {
	info := song.SongInfo{
		ID:           r.SongInfo.ID,
		MusicFile:    r.SongInfo.MusicFile,
		BPM:          r.SongInfo.BPM,
		Offset:       r.SongInfo.Offset,
		Length:       r.SongInfo.Length,
		Area:         r.SongInfo.Area,
		PreviewStart: r.SongInfo.PreviewStart,
		DLCIndex:     r.SongInfo.DLCIndex,
	}
	if len(r.SongInfo.InfoText) > 0 {
		info.InfoText = make(map[song.Lang]song.SongInfoText, len(r.SongInfo.InfoText))
		for lang, text := range r.SongInfo.InfoText {
			info.InfoText[song.Lang(lang)] = song.SongInfoText{
				Title:      text.Title,
				TitleKana:  text.TitleKana,
				SubTitle:   text.SubTitle,
				Artist:     text.Artist,
				Artist2:    text.Artist2,
				ArtistKana: text.ArtistKana,
				Original:   text.Original,
			}
		}
	}
	for _, ch := range r.SongInfo.BpmChanges {
		info.BpmChanges = append(info.BpmChanges, beat.Change{Index: ch.Index, BPM: ch.BPM})
	}

	m := song.Map{SongInfo: info}
	if len(r.Scores) > 0 {
		m.Scores = make(map[song.Difficulty]song.MapScore, len(r.Scores))
		for name, rec := range r.Scores {
			d, err := song.ParseDifficulty(name)
			if err != nil {
				return song.Map{}, err
			}
			data, err := score.ParseCompact(rec.Scores)
			if err != nil {
				return song.Map{}, fmt.Errorf("%s scores: %w", name, err)
			}
			m.Scores[d] = song.MapScore{Scores: data}
		}
	}
	return m, nil
}

// FromMap converts a domain map into its persisted record.
func FromMap(m song.Map) MapRecord {
	rec := MapRecord{
		SongInfo: SongInfoRecord{
			ID:           m.SongInfo.ID,
			MusicFile:    m.SongInfo.MusicFile,
			BPM:          m.SongInfo.BPM,
			Offset:       m.SongInfo.Offset,
			Length:       m.SongInfo.Length,
			Area:         m.SongInfo.Area,
			PreviewStart: m.SongInfo.PreviewStart,
			DLCIndex:     m.SongInfo.DLCIndex,
		},
	}
	if len(m.SongInfo.InfoText) > 0 {
		rec.SongInfo.InfoText = make(map[string]TextRecord, len(m.SongInfo.InfoText))
		for lang, text := range m.SongInfo.InfoText {
			rec.SongInfo.InfoText[string(lang)] = TextRecord{
				Title:      text.Title,
				TitleKana:  text.TitleKana,
				SubTitle:   text.SubTitle,
				Artist:     text.Artist,
				Artist2:    text.Artist2,
				ArtistKana: text.ArtistKana,
				Original:   text.Original,
			}
		}
	}
	for _, ch := range m.SongInfo.BpmChanges {
		rec.SongInfo.BpmChanges = append(rec.SongInfo.BpmChanges, ChangeRecord{Index: ch.Index, BPM: ch.BPM})
	}
	if len(m.Scores) > 0 {
		rec.Scores = make(map[string]ScoreRecord, len(m.Scores))
		for d, ms := range m.Scores {
			rec.Scores[difficultyKey(d)] = ScoreRecord{Scores: ms.Scores.Compact()}
		}
	}
	return rec
}

func difficultyKey(d song.Difficulty) string {
	switch d {
	case song.Easy:
		return "easy"
	case song.Normal:
		return "normal"
	default:
		return "hard"
	}
}
