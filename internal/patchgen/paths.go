package patchgen

import (
	"path/filepath"
	"strings"
)

// Switch title ID of the game; the patched content tree mirrors the
// console's mod layout.
const titleID = "0100E9D00D6C2000"

// ShareDataPath is the shared asset database, relative to a romfs root.
func ShareDataPath(root string) string {
	return filepath.Join(root, "StreamingAssets", "Switch", "share_data")
}

// ScorePath is a song's score file, relative to a romfs root.
func ScorePath(root, songID string) string {
	return filepath.Join(root, "StreamingAssets", "Switch", "scores", "score_"+strings.ToLower(songID))
}

// ACBPath is a song's audio container, relative to a romfs root.
func ACBPath(root, songID string) string {
	return filepath.Join(root, "StreamingAssets", "Sounds", "BGM_"+strings.ToUpper(songID)+".acb")
}

// AWBPath is a song's audio stream, relative to a romfs root.
func AWBPath(root, songID string) string {
	return filepath.Join(root, "StreamingAssets", "Sounds", "BGM_"+strings.ToUpper(songID)+".awb")
}

// OutRomfsRoot is the generated content tree's romfs data root.
func OutRomfsRoot(outDir string) string {
	return filepath.Join(outDir, "contents", titleID, "romfs", "Data")
}
