package patchgen

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/tetofu/beatpatch/internal/song"
)

// Generate assembles each map's scripts and metadata and pushes them through
// the engine into a mod content tree under outDir. Maps are expected to be
// validated already; Generate fails fast on the first engine error.
func Generate(maps []song.Map, romfsRoot, outDir string, eng Engine) error {
	outRoot := OutRomfsRoot(outDir)
	for _, dir := range []string{
		filepath.Join(outRoot, "StreamingAssets", "Switch", "scores"),
		filepath.Join(outRoot, "StreamingAssets", "Sounds"),
	} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	entries := make([]SongEntry, 0, len(maps))
	for i := range maps {
		m := &maps[i]
		id := m.SongInfo.ID

		if m.SongInfo.MusicFile != "" {
			if err := eng.PatchAudio(
				m.SongInfo.MusicFile,
				ACBPath(romfsRoot, id),
				ACBPath(outRoot, id),
				AWBPath(outRoot, id),
			); err != nil {
				return fmt.Errorf("audio patch for %q: %w", id, err)
			}
		}

		var scripts []ScriptParam
		for _, d := range song.Difficulties {
			if _, ok := m.Scores[d]; !ok {
				continue
			}
			scripts = append(scripts, ScriptParam{
				Difficulty: d.String(),
				Script:     NewBuffer([]byte(m.Script(d))),
			})
		}
		var tempo *Buffer
		if ts := m.TempoScript(); ts != "" {
			tempo = NewBuffer([]byte(ts))
		}
		if err := eng.PatchScore(
			ScorePath(romfsRoot, id),
			ScorePath(outRoot, id),
			id,
			scripts,
			tempo,
		); err != nil {
			return fmt.Errorf("score patch for %q: %w", id, err)
		}

		entries = append(entries, songEntry(m))
	}

	if err := eng.PatchShareData(ShareDataPath(romfsRoot), ShareDataPath(outRoot), entries); err != nil {
		return fmt.Errorf("share data patch: %w", err)
	}
	return nil
}

func songEntry(m *song.Map) SongEntry {
	easy, normal, hard := m.Levels()
	entry := SongEntry{
		ID: m.SongInfo.ID,
		Music: MusicEntry{
			Area:            m.SongInfo.Area,
			LevelEasy:       easy,
			LevelNormal:     normal,
			LevelHard:       hard,
			HasTempoChanges: m.SongInfo.HasTempoChanges(),
			BPM:             m.SongInfo.BPM,
			Length:          m.BeatCount(),
			DurationSec:     m.Duration(),
			Offset:          m.SongInfo.Offset,
			PreviewStart:    m.SongInfo.PreviewStart,
		},
	}
	for lang, text := range m.SongInfo.InfoText {
		entry.Words = append(entry.Words, WordEntry{
			Lang:       string(lang),
			Title:      text.Title,
			SubTitle:   text.SubTitle,
			TitleKana:  text.TitleKana,
			Artist:     text.Artist,
			Artist2:    text.Artist2,
			ArtistKana: text.ArtistKana,
			Original:   text.Original,
		})
	}
	sort.Slice(entry.Words, func(i, j int) bool { return entry.Words[i].Lang < entry.Words[j].Lang })
	return entry
}
