// Package report renders song catalogs as aligned terminal tables and
// spreadsheet-friendly CSV.
package report

import (
	"strconv"

	"github.com/tetofu/beatpatch/internal/song"
)

// baseGameDLC labels songs shipped with the base game (dlc_index 0); the
// game's own listings use the same label.
const baseGameDLC = "本体"

// Headers is the column set shared by the table and CSV renderers.
var Headers = []string{
	"ID",
	"Title",
	"Artist",
	"Original",
	"Effective BPM",
	"Has Tempo Changes",
	"Levels - Easy",
	"Levels - Normal",
	"Levels - Hard",
	"Length",
	"Area",
	"DLC",
}

// Rows flattens maps into display rows. Text columns come from the Japanese
// info text; dlcs maps 1-based dlc_index to the pack name.
func Rows(maps []song.Map, dlcs map[int]string) [][]string {
	rows := make([][]string, 0, len(maps))
	for i := range maps {
		m := &maps[i]
		text := m.SongInfo.InfoText[song.LangJA]
		easy, normal, hard := m.Levels()

		dlc := baseGameDLC
		if name, ok := dlcs[m.SongInfo.DLCIndex]; ok && m.SongInfo.DLCIndex > 0 {
			dlc = name
		}

		rows = append(rows, []string{
			m.SongInfo.ID,
			text.CombinedTitle(),
			text.CombinedArtist(),
			text.Original,
			formatFloat(m.EffectiveBPM()),
			strconv.FormatBool(m.SongInfo.HasTempoChanges()),
			strconv.Itoa(easy),
			strconv.Itoa(normal),
			strconv.Itoa(hard),
			formatFloat(m.SongInfo.Length),
			m.SongInfo.Area,
			dlc,
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
