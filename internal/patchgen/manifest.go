package patchgen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestEngine stages everything the native patcher needs instead of
// patching in-process: script texts are written next to the output tree and
// a manifest.json describes every pending operation. The native tool then
// runs over the staging directory.
type ManifestEngine struct {
	Dir string

	manifest manifest
}

type manifest struct {
	Audio     []audioOp    `json:"audio"`
	Scores    []scoreOp    `json:"scores"`
	ShareData *shareDataOp `json:"share_data,omitempty"`
}

type audioOp struct {
	MusicFile string `json:"music_file"`
	ACBIn     string `json:"acb_in"`
	ACBOut    string `json:"acb_out"`
	AWBOut    string `json:"awb_out"`
}

type scoreOp struct {
	ScoreIn     string            `json:"score_in"`
	ScoreOut    string            `json:"score_out"`
	SongID      string            `json:"song_id"`
	Scripts     map[string]string `json:"scripts"`
	TempoScript string            `json:"tempo_script,omitempty"`
}

type shareDataOp struct {
	ShareIn  string      `json:"share_in"`
	ShareOut string      `json:"share_out"`
	Entries  []SongEntry `json:"entries"`
}

// NewManifestEngine stages into the given directory.
func NewManifestEngine(dir string) *ManifestEngine {
	return &ManifestEngine{Dir: dir}
}

// PatchAudio records the transcode operation.
func (e *ManifestEngine) PatchAudio(musicFile, acbIn, acbOut, awbOut string) error {
	e.manifest.Audio = append(e.manifest.Audio, audioOp{
		MusicFile: musicFile,
		ACBIn:     acbIn,
		ACBOut:    acbOut,
		AWBOut:    awbOut,
	})
	return nil
}

// PatchScore stages the script texts and records the score operation.
func (e *ManifestEngine) PatchScore(scoreIn, scoreOut, songID string, scripts []ScriptParam, tempoScript *Buffer) error {
	op := scoreOp{
		ScoreIn:  scoreIn,
		ScoreOut: scoreOut,
		SongID:   songID,
		Scripts:  map[string]string{},
	}
	for _, sp := range scripts {
		name := fmt.Sprintf("script_%s_%s.txt", songID, sp.Difficulty)
		if err := e.stage(name, sp.Script); err != nil {
			return err
		}
		op.Scripts[sp.Difficulty] = name
	}
	if tempoScript != nil {
		name := fmt.Sprintf("script_%s_tempo.txt", songID)
		if err := e.stage(name, tempoScript); err != nil {
			return err
		}
		op.TempoScript = name
	}
	e.manifest.Scores = append(e.manifest.Scores, op)
	return nil
}

// PatchShareData records the metadata operation.
func (e *ManifestEngine) PatchShareData(shareIn, shareOut string, entries []SongEntry) error {
	e.manifest.ShareData = &shareDataOp{
		ShareIn:  shareIn,
		ShareOut: shareOut,
		Entries:  entries,
	}
	return nil
}

// Flush writes the manifest. Call it once after Generate.
func (e *ManifestEngine) Flush() error {
	data, err := json.MarshalIndent(e.manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(e.Dir, "manifest.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func (e *ManifestEngine) stage(name string, buf *Buffer) error {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	err := os.WriteFile(filepath.Join(e.Dir, name), buf.Bytes(), 0o644)
	buf.Release()
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", name, err)
	}
	return nil
}
