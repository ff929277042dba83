package jsonio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/wdm0006/tvetl/pkg/io/ioutils"
	j "github.com/wdm0006/tvetl/pkg/janitor"
)

// FilePrefix and FileExt name the per-day files: data_YYYY-MM-DD.json.
const (
	FilePrefix = "data_"
	FileExt    = ".json"
)

// FileName returns the file name for a day formatted as YYYY-MM-DD.
func FileName(day string) string { return FilePrefix + day + FileExt }

// WriteRecords writes records to path as a JSON array indented with four
// spaces, creating parent directories. A .gz path is gzip compressed.
func WriteRecords(path string, records []Record) error {
	if records == nil {
		records = []Record{}
	}
	w, err := ioutils.CreateMaybeCompressed(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(records); err != nil {
		_ = w.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// ReadRecords decodes one file holding a JSON array of objects.
func ReadRecords(path string) ([]Record, error) {
	r, err := ioutils.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()
	var records []Record
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// ListDataFiles returns the data_*.json and data_*.json.gz files in dir in
// lexical order.
func ListDataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read data dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, FilePrefix) {
			continue
		}
		if strings.HasSuffix(name, FileExt) || strings.HasSuffix(name, FileExt+".gz") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadRecords concatenates the records of every data file in dir.
func LoadRecords(dir string) ([]Record, error) {
	files, err := ListDataFiles(dir)
	if err != nil {
		return nil, err
	}
	var all []Record
	for _, path := range files {
		recs, err := ReadRecords(path)
		if err != nil {
			return nil, err
		}
		all = append(all, recs...)
	}
	return all, nil
}

// LoadDir loads and flattens every data file in dir. An empty directory
// yields an empty Frame.
func LoadDir(dir string) (*j.Frame, error) {
	records, err := LoadRecords(dir)
	if err != nil {
		return nil, err
	}
	return Flatten(records), nil
}
