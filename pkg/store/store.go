package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/ullaakut/stargazers/pkg/stargazer"
)

// Store persists stargazer rows as CSV files.
type Store struct {
	fs afero.Fs
}

// MergeResult describes the outcome of a merge.
type MergeResult struct {
	Path string

	// Total is the amount of rows in the file after the merge.
	Total int

	// Inserted and Updated count the merged rows that were new to
	// the file and the ones that replaced an existing row.
	Inserted int
	Updated  int
}

// New creates a store on the given filesystem.
func New(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// Load reads the rows of the file at path. A missing file is an empty table.
func (s *Store) Load(path string) (*Table, error) {
	table := NewTable()

	f, err := s.fs.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return table, nil
		}
		return nil, fmt.Errorf("unable to open %q: %v", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return table, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read header of %q: %v", path, err)
	}

	index := make(map[string]int, len(header))
	for idx, column := range header {
		index[column] = idx
	}

	if _, ok := index[loginColumn]; !ok {
		return nil, fmt.Errorf("unable to load %q: missing %q column", path, loginColumn)
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read %q: %v", path, err)
		}

		row, err := decodeRow(record, index)
		if err != nil {
			return nil, fmt.Errorf("unable to parse line %d of %q: %v", line, path, err)
		}

		table.Upsert(row)
	}

	return table, nil
}

// Save writes every row of the table to path, sorted by login,
// creating the containing directory if needed.
func (s *Store) Save(path string, table *Table) error {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)
	if err := writer.Write(Columns); err != nil {
		return fmt.Errorf("unable to encode header: %v", err)
	}

	for _, row := range table.Rows() {
		if err := writer.Write(encodeRow(row)); err != nil {
			return fmt.Errorf("unable to encode row of %q: %v", row.Login, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("unable to encode rows: %v", err)
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), os.ModeDir|0755); err != nil {
		return fmt.Errorf("unable to create directory for %q: %v", path, err)
	}

	if err := afero.WriteFile(s.fs, path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to write %q: %v", path, err)
	}

	return nil
}

// Merge loads the file at path, inserts or replaces the given rows by
// login and rewrites the whole file. Rows of the file that are not part
// of rows are kept as they are.
func (s *Store) Merge(path string, rows []stargazer.Row) (*MergeResult, error) {
	table, err := s.Load(path)
	if err != nil {
		return nil, err
	}

	result := &MergeResult{Path: path}
	for _, row := range rows {
		if table.Upsert(row) {
			result.Inserted++
		} else {
			result.Updated++
		}
	}

	if err := s.Save(path, table); err != nil {
		return nil, err
	}

	result.Total = table.Len()
	return result, nil
}
