// Package dataset maintains the weekly generation files and the published
// latest dataset.
package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"powerrank/internal"
)

const generationSuffix = "_powerrankings.csv"

// GenerationPath is <dir>/<yymmdd>_powerrankings.csv for day.
func GenerationPath(dir string, day time.Time) string {
	return filepath.Join(dir, day.Format(internal.DateLayout)+generationSuffix)
}

// LatestGeneration returns the most recently modified generation file in dir.
func LatestGeneration(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*"+generationSuffix))
	if err != nil {
		return "", err
	}

	var newest string
	var newestMod time.Time
	for _, path := range matches {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		if newest == "" || info.ModTime().After(newestMod) {
			newest, newestMod = path, info.ModTime()
		}
	}
	if newest == "" {
		return "", internal.ValidationError("no generation files in %s", dir)
	}
	return newest, nil
}

// ReadRows returns the data rows of a dataset file, header excluded.
func ReadRows(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, internal.Mark(internal.ErrValidation, err, "read %s", path)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil
}

func CountRows(path string) (int, error) {
	rows, err := ReadRows(path)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

func entrynames(rows [][]string) map[string]struct{} {
	out := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if len(row) > 0 {
			out[strings.TrimSpace(row[0])] = struct{}{}
		}
	}
	return out
}

// copyFile writes a byte-for-byte copy of src to a new file dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		_ = os.Remove(dst)
		return err
	}
	return out.Close()
}

func appendRows(path string, records []internal.RankingRecord) error {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := ensureTrailingNewline(f); err != nil {
		return err
	}

	w := csv.NewWriter(f)
	for _, rec := range records {
		if err := w.Write(rec.Row()); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Sync()
}

func ensureTrailingNewline(f *os.File) error {
	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return err
	}
	if last[0] == '\n' {
		return nil
	}
	_, err = f.Write([]byte("\n"))
	return err
}
