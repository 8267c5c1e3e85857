// Package main provides the CLI entrypoint for beatpatch.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tetofu/beatpatch/internal/catalog"
	"github.com/tetofu/beatpatch/internal/config"
	"github.com/tetofu/beatpatch/internal/extmap"
	"github.com/tetofu/beatpatch/internal/patchgen"
	"github.com/tetofu/beatpatch/internal/report"
	"github.com/tetofu/beatpatch/internal/song"
)

var (
	patchMaps        string
	patchOut         string
	patchReplaceOnly bool
	patchCatalog     string

	convertMaps       string
	convertDifficulty string
	convertUpdate     int
	convertList       bool

	listMaps    string
	listCatalog string
	listCSV     string

	extractCatalog string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "beatpatch",
		Short:         "Custom song patch generator for a Switch rhythm game",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newPatchCmd())
	rootCmd.AddCommand(newConvertCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newExtractCmd())

	return rootCmd
}

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <romfs-root>",
		Short: "Stage a mod content tree from the maps config",
		Args:  cobra.ExactArgs(1),
		RunE:  runPatchCmd,
	}
	cmd.Flags().StringVar(&patchMaps, "maps", config.DefaultMapsPath(), "maps config file")
	cmd.Flags().StringVar(&patchOut, "out", "out", "output directory")
	cmd.Flags().BoolVar(&patchReplaceOnly, "replace-only", false, "replace existing songs only; every ID must exist in the catalog")
	cmd.Flags().StringVar(&patchCatalog, "catalog", config.DefaultCatalogPath(), "song catalog database")
	return cmd
}

func runPatchCmd(_ *cobra.Command, args []string) error {
	romfsRoot := args[0]

	maps, err := loadMaps(patchMaps)
	if err != nil {
		return err
	}
	if len(maps) == 0 {
		return fmt.Errorf("maps config %s has no songs", patchMaps)
	}

	ids, err := loadCatalogIDs(patchCatalog)
	if err != nil {
		return err
	}
	var idc song.IDCatalog
	if ids != nil {
		idc = ids
	} else {
		logErrln("no song catalog found; skipping ID checks (run: beatpatch extract)")
	}

	for i := range maps {
		if err := maps[i].Validate(idc, patchReplaceOnly); err != nil {
			return fmt.Errorf("map %d (%s): %w", i, maps[i].SongInfo.ID, err)
		}
	}

	eng := patchgen.NewManifestEngine(filepath.Join(patchOut, "staging"))
	if err := patchgen.Generate(maps, romfsRoot, patchOut, eng); err != nil {
		return err
	}
	if err := eng.Flush(); err != nil {
		return err
	}
	logErrf("Staged %d song(s) under %s\n", len(maps), patchOut)
	return nil
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert external maps into the maps config",
	}
	cmd.PersistentFlags().StringVar(&convertMaps, "maps", config.DefaultMapsPath(), "maps config file")
	cmd.PersistentFlags().StringVarP(&convertDifficulty, "difficulty", "d", "", "difficulty to write (easy, normal, hard)")
	cmd.PersistentFlags().IntVarP(&convertUpdate, "update", "u", -1, "update the n-th map entry instead of appending")
	cmd.PersistentFlags().BoolVarP(&convertList, "list", "l", false, "list current maps in the config and exit")

	cmd.AddCommand(&cobra.Command{
		Use:   "osu <map.osu>",
		Short: "Convert an osu! beatmap",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvertCmd(cmd, args, parseOsuFile)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "adofai <map.adofai>",
		Short: "Convert an A Dance of Fire and Ice map",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvertCmd(cmd, args, parseADoFaIFile)
		},
	})
	return cmd
}

func runConvertCmd(cmd *cobra.Command, args []string, parse func(string) (extmap.Extract, error)) error {
	file, err := config.Load(convertMaps)
	if err != nil {
		return err
	}

	if convertList {
		maps, err := file.ToMaps()
		if err != nil {
			return err
		}
		for i := range maps {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), mapSummary(i, &maps[i])); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("map file argument is required")
	}
	if convertDifficulty == "" {
		return fmt.Errorf("--difficulty is required")
	}
	difficulty, err := song.ParseDifficulty(strings.ToLower(convertDifficulty))
	if err != nil {
		return err
	}

	ext, err := parse(args[0])
	if err != nil {
		return err
	}

	var m song.Map
	if convertUpdate >= 0 && convertUpdate < len(file.Maps) {
		m, err = file.Maps[convertUpdate].ToMap()
		if err != nil {
			return fmt.Errorf("map %d: %w", convertUpdate, err)
		}
	}
	ext.ApplyTo(&m, difficulty)

	rec := config.FromMap(m)
	if convertUpdate >= 0 && convertUpdate < len(file.Maps) {
		file.Maps[convertUpdate] = rec
	} else {
		file.Maps = append(file.Maps, rec)
	}

	if err := os.MkdirAll(filepath.Dir(convertMaps), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := config.Save(convertMaps, file); err != nil {
		return err
	}
	logErrf("Wrote %s difficulty of map %s into %s\n", difficulty, m.SongInfo.ID, convertMaps)
	return nil
}

func mapSummary(i int, m *song.Map) string {
	title := ""
	for _, text := range m.SongInfo.InfoText {
		title = text.CombinedTitle()
		break
	}
	easy, normal, hard := m.Levels()
	return fmt.Sprintf("Map %d: %s, effective BPM: %v, levels (E/N/H): %d/%d/%d, id: %s",
		i, title, m.EffectiveBPM(), easy, normal, hard, m.SongInfo.ID)
}

func parseOsuFile(path string) (extmap.Extract, error) {
	f, err := os.Open(path)
	if err != nil {
		return extmap.Extract{}, fmt.Errorf("failed to open osu map: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close; read errors already reported.
			_ = cerr
		}
	}()
	return extmap.ParseOsu(f)
}

func parseADoFaIFile(path string) (extmap.Extract, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return extmap.Extract{}, fmt.Errorf("failed to read adofai map: %w", err)
	}
	return extmap.ParseADoFaI(raw)
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show the maps config as a song table",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
	cmd.Flags().StringVar(&listMaps, "maps", config.DefaultMapsPath(), "maps config file")
	cmd.Flags().StringVar(&listCatalog, "catalog", config.DefaultCatalogPath(), "song catalog database")
	cmd.Flags().StringVar(&listCSV, "csv", "", "write CSV to this file instead of printing a table")
	return cmd
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	maps, err := loadMaps(listMaps)
	if err != nil {
		return err
	}

	dlcs, err := loadDLCNames(listCatalog)
	if err != nil {
		return err
	}

	rows := report.Rows(maps, dlcs)
	if listCSV != "" {
		if err := report.WriteCSVFile(listCSV, rows); err != nil {
			return err
		}
		logErrf("Wrote %s\n", listCSV)
		return nil
	}
	for _, line := range report.SongTable(rows) {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <dump.json>",
		Short: "Import the native extractor's song dump into the catalog",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtractCmd,
	}
	cmd.Flags().StringVar(&extractCatalog, "catalog", config.DefaultCatalogPath(), "song catalog database")
	return cmd
}

func runExtractCmd(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open dump: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close; read errors already reported.
			_ = cerr
		}
	}()

	entries, dlcs, err := catalog.ParseDump(f)
	if err != nil {
		return err
	}

	st, err := catalog.Open(extractCatalog)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close catalog: %v\n", cerr)
		}
	}()

	if err := st.Replace(context.Background(), entries, dlcs); err != nil {
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	logErrf("Imported %d song(s) and %d DLC pack(s)\n", len(entries), len(dlcs))
	return nil
}

// loadMaps reads a maps config in either the current TOML schema or the
// legacy YAML one, selected by extension.
func loadMaps(path string) ([]song.Map, error) {
	var (
		file config.MapsFile
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		file, err = config.LoadLegacy(path)
	default:
		file, err = config.Load(path)
	}
	if err != nil {
		return nil, err
	}
	return file.ToMaps()
}

func loadCatalogIDs(path string) (catalog.IDSet, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat catalog: %w", err)
	}
	st, err := catalog.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close catalog: %v\n", cerr)
		}
	}()
	return st.IDs(context.Background())
}

func loadDLCNames(path string) (map[int]string, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to stat catalog: %w", err)
	}
	st, err := catalog.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close catalog: %v\n", cerr)
		}
	}()
	return st.DLCNames(context.Background())
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
