package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// legacySong is one entry of the pre-TOML YAML config. BPM, offset and
// length were integers back then; the migration widens them to the canonical
// floating-point representation.
type legacySong struct {
	SongID    string `yaml:"song_id"`
	MusicFile string `yaml:"music_file"`
	Title     string `yaml:"title"`
	SubTitle  string `yaml:"sub_title"`
	Artist    string `yaml:"artist"`
	Artist2   string `yaml:"artist2"`
	Original  string `yaml:"original"`
	Area      string `yaml:"area"`
	BPM       int    `yaml:"bpm"`
	Offset    int    `yaml:"offset"`
	Length    int    `yaml:"length"`
}

type legacyFile struct {
	Songs []legacySong `yaml:"songs"`
}

// LoadLegacy migrates an old YAML config into the current model. Score data
// never lived in the YAML files (it was rebuilt from the external map
// sources), so the migrated records carry metadata only.
func LoadLegacy(path string) (MapsFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return MapsFile{}, fmt.Errorf("failed to read legacy config: %w", err)
	}
	var file legacyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return MapsFile{}, fmt.Errorf("failed to decode legacy config: %w", err)
	}

	out := MapsFile{Maps: make([]MapRecord, 0, len(file.Songs))}
	for _, s := range file.Songs {
		out.Maps = append(out.Maps, MapRecord{
			SongInfo: SongInfoRecord{
				ID:        s.SongID,
				MusicFile: s.MusicFile,
				BPM:       float64(s.BPM),
				Offset:    float64(s.Offset),
				Length:    float64(s.Length),
				Area:      s.Area,
				InfoText: map[string]TextRecord{
					"ja": {
						Title:    s.Title,
						SubTitle: s.SubTitle,
						Artist:   s.Artist,
						Artist2:  s.Artist2,
						Original: s.Original,
					},
				},
			},
		})
	}
	return out, nil
}
