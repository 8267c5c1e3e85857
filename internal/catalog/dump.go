package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// dump is the JSON handoff produced by the native extractor when it walks
// the game's shared asset database.
type dump struct {
	Songs []dumpSong `json:"songs"`
	DLCs  []string   `json:"dlcs"`
}

type dumpSong struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Area     string `json:"area"`
	DLCIndex int    `json:"dlc_index"`
}

// ParseDump reads a native extractor dump. A leading UTF-8 BOM is tolerated.
func ParseDump(r io.Reader) ([]Entry, []string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read dump: %w", err)
	}
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	var d dump
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, nil, fmt.Errorf("failed to decode dump: %w", err)
	}

	entries := make([]Entry, 0, len(d.Songs))
	for _, s := range d.Songs {
		if s.ID == "" {
			return nil, nil, fmt.Errorf("dump song without id")
		}
		entries = append(entries, Entry{
			ID:       s.ID,
			Title:    s.Title,
			Artist:   s.Artist,
			Area:     s.Area,
			DLCIndex: s.DLCIndex,
		})
	}
	return entries, d.DLCs, nil
}
