// Package batch reads vocabulary CSV files and streams raw rows into the
// pipeline. The first column of every row is the word-type discriminator;
// the remaining columns are the type's raw fields.
package batch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Row is one raw source row plus its origin, so failures can be reported
// against the exact file and line.
type Row struct {
	WordType string   // raw discriminator, not yet validated
	Fields   []string // raw field values after the discriminator
	File     string
	Line     int
}

// From formats the row's origin for error messages.
func (r Row) From() string {
	return fmt.Sprintf("%s:%d", filepath.Base(r.File), r.Line)
}

// DiscoverCSVFiles finds all .csv files directly under dir, sorted by name.
func DiscoverCSVFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no CSV files found in %s", dir)
	}

	sort.Strings(files)
	return files, nil
}

// ReadCSVFile reads one vocabulary CSV file. Rows may have differing field
// counts (word types have different schemas), so per-record field count
// checking is left to the record constructors. A header row whose first
// cell is "type" is skipped; '#' starts a comment line.
func ReadCSVFile(path string) ([]Row, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.Comment = '#'
	reader.TrimLeadingSpace = true

	var rows []Row
	first := true
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}

		// Physical file line, not the index into the parsed records:
		// the reader silently swallows comment and blank lines.
		line, _ := reader.FieldPos(0)

		isFirst := first
		first = false

		if len(rec) == 0 {
			continue
		}
		if isFirst && strings.EqualFold(strings.TrimSpace(rec[0]), "type") {
			continue // header
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue // blank line
		}

		rows = append(rows, Row{
			WordType: strings.TrimSpace(rec[0]),
			Fields:   rec[1:],
			File:     path,
			Line:     line,
		})
	}

	return rows, nil
}

// ReadAll reads every given CSV file in order.
func ReadAll(paths []string) ([]Row, error) {
	var rows []Row
	for _, path := range paths {
		fileRows, err := ReadCSVFile(path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, fileRows...)
	}
	return rows, nil
}
