// Package store implements the single-file record store for frontdesk.
// This file provides the JSON read/write helpers with atomic persistence.
package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// readDatabase decodes the database file at path. A missing file yields an
// empty database; any decoding problem is a StorageCorruptionError.
func readDatabase(path string) (*types.Database, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return types.NewDatabase(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	db, err := decodeDatabase(data)
	if err != nil {
		return nil, &types.StorageCorruptionError{Path: path, Err: err}
	}
	return db, nil
}

// decodeDatabase parses the file content. Numbers are kept as json.Number so
// integer columns round-trip exactly; unknown fields are ignored.
func decodeDatabase(data []byte) (*types.Database, error) {
	if err := checkTopLevel(data); err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var db types.Database
	if err := dec.Decode(&db); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after database object")
	}
	if db.Version > types.DatabaseVersion {
		return nil, fmt.Errorf("unsupported format version %d", db.Version)
	}
	if db.Version == 0 {
		db.Version = types.DatabaseVersion
	}

	for _, name := range types.StandardTableNames {
		rows, _ := db.Table(name)
		if *rows == nil {
			*rows = []types.Row{}
		}
		for i, row := range *rows {
			if row == nil {
				return nil, fmt.Errorf("%s row %d is not an object", name, i)
			}
			if v, ok := row[types.DeletedColumn]; ok {
				if _, isBool := v.(bool); !isBool {
					return nil, fmt.Errorf("%s row %d: deleted flag is not a boolean", name, i)
				}
			}
		}
	}
	return &db, nil
}

// checkTopLevel requires the document to be a JSON object whose collections,
// when present, are not null. A missing collection is an empty table.
func checkTopLevel(data []byte) error {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return err
	}
	if top == nil {
		return errors.New("database is not a JSON object")
	}
	for _, name := range types.StandardTableNames {
		raw, ok := top[name]
		if ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return fmt.Errorf("%s is null, expected an array", name)
		}
	}
	return nil
}

// writeDatabase atomically replaces the file at path using the temp-file,
// fsync, rename pattern.
func writeDatabase(path string, db *types.Database) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding database: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".frontdesk-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := bufio.NewWriter(tmp)
	if _, err := w.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing database: %w", err)
	}
	if err := w.WriteByte('\n'); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing newline: %w", err)
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
