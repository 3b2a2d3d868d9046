// Package entity maps store rows to typed entities and back through an
// explicit per-entity Schema, and answers the relationship queries between
// clients, rooms, and reservations.
package entity

import (
	"fmt"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Entity is implemented by the entity structs in pkg/types.
type Entity interface {
	EntityID() int
	IsDeleted() bool
}

// RowStore is the part of the record store the entity layer needs.
type RowStore interface {
	// Rows returns every row of table, deleted rows included.
	Rows(table string) ([]types.Row, error)
	// Update runs fn as one load-mutate-save unit.
	Update(fn func(db *types.Database) error) error
	// Path returns the backing file, used to report corrupt rows.
	Path() string
}

// Schema describes one entity: its table, ordered columns, unique columns,
// and the two conversion functions between rows and structs.
type Schema[T Entity] struct {
	Table   string
	Columns []types.Column
	Unique  []string

	// Decode builds the entity at position id. It fails with ErrInvalidData
	// when a declared column is missing or holds the wrong type.
	Decode func(id int, row types.Row) (T, error)
	// Encode returns the declared columns of e. The deleted flag is not
	// part of the encoded row.
	Encode func(e T) types.Row
}

// Repository provides find/save/update/delete for one entity type.
type Repository[T Entity] struct {
	store  RowStore
	schema Schema[T]
}

// NewRepository binds schema to store.
func NewRepository[T Entity](store RowStore, schema Schema[T]) *Repository[T] {
	return &Repository[T]{store: store, schema: schema}
}

// Schema returns the repository's schema.
func (r *Repository[T]) Schema() Schema[T] { return r.schema }

// Table returns the table name.
func (r *Repository[T]) Table() string { return r.schema.Table }

// Find returns the live entity at position id. Missing and soft-deleted
// slots fail with a RecordNotFoundError.
func (r *Repository[T]) Find(id int) (T, error) {
	var zero T
	rows, err := r.store.Rows(r.schema.Table)
	if err != nil {
		return zero, err
	}
	if id < 0 || id >= len(rows) || rows[id].Deleted() {
		return zero, &types.RecordNotFoundError{Table: r.schema.Table, ID: id}
	}
	return r.decodeStored(r.store.Path(), id, rows[id])
}

// FindAll returns every entity of the table, deleted ones included, in ID
// order. Filtering deleted entities is left to the caller.
func (r *Repository[T]) FindAll() ([]T, error) {
	rows, err := r.store.Rows(r.schema.Table)
	if err != nil {
		return nil, err
	}
	return r.decodeAll(r.store.Path(), rows)
}

// FindAllIn is FindAll over db, a database already loaded from the store.
func (r *Repository[T]) FindAllIn(db *types.Database) ([]T, error) {
	return r.decodeAll(r.store.Path(), db.Rows(r.schema.Table))
}

func (r *Repository[T]) decodeAll(path string, rows []types.Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for id, row := range rows {
		e, err := r.decodeStored(path, id, row)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// Live returns the entities that are not soft-deleted.
func (r *Repository[T]) Live() ([]T, error) {
	all, err := r.FindAll()
	if err != nil {
		return nil, err
	}
	out := all[:0]
	for _, e := range all {
		if !e.IsDeleted() {
			out = append(out, e)
		}
	}
	return out, nil
}

// Save appends a new entity built from validated data and returns it with
// its new ID. Keys that are not declared columns are ignored.
func (r *Repository[T]) Save(data map[string]any) (T, error) {
	var saved T
	path := r.store.Path()
	err := r.store.Update(func(db *types.Database) error {
		candidate, err := r.schema.Decode(-1, r.project(data))
		if err != nil {
			return err
		}
		row := r.schema.Encode(candidate)
		if err := r.checkUnique(db, path, -1, row); err != nil {
			return err
		}
		id, err := db.AppendRow(r.schema.Table, row)
		if err != nil {
			return err
		}
		saved, err = r.schema.Decode(id, withDeleted(row, false))
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return saved, nil
}

// Update merges data onto e's current field values and writes the merged row
// back at e's position. Fields absent from data keep their value.
func (r *Repository[T]) Update(e T, data map[string]any) (T, error) {
	var updated T
	path := r.store.Path()
	err := r.store.Update(func(db *types.Database) error {
		merged := r.schema.Encode(e)
		for k, v := range r.project(data) {
			merged[k] = v
		}
		candidate, err := r.schema.Decode(e.EntityID(), merged)
		if err != nil {
			return err
		}
		row := withDeleted(r.schema.Encode(candidate), e.IsDeleted())
		if err := r.checkUnique(db, path, e.EntityID(), row); err != nil {
			return err
		}
		if err := db.ReplaceRow(r.schema.Table, e.EntityID(), row); err != nil {
			return err
		}
		updated, err = r.schema.Decode(e.EntityID(), row)
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return updated, nil
}

// Delete soft-deletes e. The row stays in the file with deleted=true.
func (r *Repository[T]) Delete(e T) error {
	return r.store.Update(func(db *types.Database) error {
		return db.SoftDeleteRow(r.schema.Table, e.EntityID())
	})
}

// project keeps only the declared columns of data.
func (r *Repository[T]) project(data map[string]any) types.Row {
	row := make(types.Row, len(r.schema.Columns))
	for _, col := range r.schema.Columns {
		if v, ok := data[col.Name]; ok {
			row[col.Name] = v
		}
	}
	return row
}

// checkUnique fails when another live row already holds one of the unique
// column values of row. Position self is skipped. path names the file for
// stored rows that do not decode.
func (r *Repository[T]) checkUnique(db *types.Database, path string, self int, row types.Row) error {
	if len(r.schema.Unique) == 0 {
		return nil
	}
	for id, existing := range db.Rows(r.schema.Table) {
		if id == self || existing.Deleted() {
			continue
		}
		other, err := r.decodeStored(path, id, existing)
		if err != nil {
			return err
		}
		enc := r.schema.Encode(other)
		for _, col := range r.schema.Unique {
			if enc[col] == row[col] {
				return &types.UniqueViolationError{Table: r.schema.Table, Column: col, Value: row[col]}
			}
		}
	}
	return nil
}

// decodeStored decodes a row read from the file. A row that does not match
// the schema means the file is corrupt, not that the caller sent bad data.
func (r *Repository[T]) decodeStored(path string, id int, row types.Row) (T, error) {
	e, err := r.schema.Decode(id, row)
	if err != nil {
		var zero T
		return zero, &types.StorageCorruptionError{Path: path, Err: err}
	}
	return e, nil
}

func withDeleted(row types.Row, deleted bool) types.Row {
	out := row.Clone()
	out[types.DeletedColumn] = deleted
	return out
}

// invalid wraps ErrInvalidData with the offending table and column.
func invalid(table, column, reason string) error {
	return fmt.Errorf("%w: %s.%s %s", types.ErrInvalidData, table, column, reason)
}
