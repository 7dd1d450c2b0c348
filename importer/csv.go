package importer

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// DirSource reads <stem>.csv files from a folder. Files have no header
// row; field order must match the table's declared column order.
type DirSource struct {
	Dir string
}

func (s DirSource) Open(stem string) (RowReader, error) {
	path := filepath.Join(s.Dir, stem+".csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open source file: %w", err)
	}
	r := csv.NewReader(f)
	// Arity is validated against the schema, not the first record.
	r.FieldsPerRecord = -1
	return &fileReader{Reader: r, f: f}, nil
}

type fileReader struct {
	*csv.Reader
	f *os.File
}

func (r *fileReader) Close() error { return r.f.Close() }
