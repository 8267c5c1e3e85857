package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"runtime"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes the song listing as CSV. On Windows a UTF-8 BOM is
// prepended so spreadsheet programs pick the right encoding.
func WriteCSV(w io.Writer, rows [][]string) error {
	if runtime.GOOS == "windows" {
		if _, err := w.Write(utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the song listing to a file.
func WriteCSVFile(path string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	if err := WriteCSV(f, rows); err != nil {
		f.Close() // Best-effort close.
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close CSV file: %w", err)
	}
	return nil
}
