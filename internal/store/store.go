package store

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/frontdesk/internal/metrics"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Store is the file-backed table set. Every operation reads the whole file,
// and every mutation writes the whole file back, under one mutex so that
// in-process callers see single-writer semantics. Nothing coordinates with
// other processes.
type Store struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	logger   *slog.Logger
	metrics  *metrics.Recorder
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and save events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the recorder for store operations.
func WithMetrics(m *metrics.Recorder) Option {
	return func(s *Store) { s.metrics = m }
}

// New creates a detached Store. Call Attach before use.
func New(opts ...Option) *Store {
	s := &Store{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Attach binds the store to the database file named in config, creating its
// directory if needed. The file itself is created on the first save.
// Returns ErrAlreadyAttached if called twice without Detach.
func (s *Store) Attach(config types.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	path, err := filepath.Abs(config.DataFile)
	if err != nil {
		return fmt.Errorf("resolving data file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	config.DataFile = path
	s.config = config
	s.attached = true
	s.logger.Debug("store attached", "path", path)
	return nil
}

// Detach releases the store. Idempotent.
func (s *Store) Detach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attached = false
	return nil
}

// Path returns the absolute path of the backing file, or "" when detached.
func (s *Store) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return ""
	}
	return s.config.DataFile
}

// Load reads the whole database. A missing file yields the three empty
// tables; an undecodable file yields a StorageCorruptionError.
func (s *Store) Load() (*types.Database, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return nil, types.ErrStoreDetached
	}
	return s.loadLocked()
}

// Save overwrites the backing file with db.
func (s *Store) Save(db *types.Database) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	return s.saveLocked(db)
}

// Update runs fn as one load-mutate-save unit. When fn returns an error the
// file is left untouched.
func (s *Store) Update(fn func(db *types.Database) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.attached {
		return types.ErrStoreDetached
	}
	db, err := s.loadLocked()
	if err != nil {
		return err
	}
	if err := fn(db); err != nil {
		return err
	}
	return s.saveLocked(db)
}

// Rows returns a copy of the named table's rows, deleted rows included.
func (s *Store) Rows(table string) ([]types.Row, error) {
	db, err := s.Load()
	if err != nil {
		return nil, err
	}
	rows, err := db.Table(table)
	if err != nil {
		return nil, err
	}
	out := make([]types.Row, len(*rows))
	for i, r := range *rows {
		out[i] = r.Clone()
	}
	return out, nil
}

// Append adds row to table with deleted=false and returns its positional ID,
// which is the number of rows in the table before the append.
func (s *Store) Append(table string, row types.Row) (int, error) {
	id := -1
	err := s.Update(func(db *types.Database) error {
		var err error
		id, err = db.AppendRow(table, row)
		return err
	})
	if err != nil {
		return -1, err
	}
	return id, nil
}

// Replace overwrites the row at position id. When row carries no deleted
// flag the existing flag is kept.
func (s *Store) Replace(table string, id int, row types.Row) error {
	return s.Update(func(db *types.Database) error {
		return db.ReplaceRow(table, id, row)
	})
}

// SoftDelete flags the row at position id as deleted. The row content is kept.
func (s *Store) SoftDelete(table string, id int) error {
	return s.Update(func(db *types.Database) error {
		return db.SoftDeleteRow(table, id)
	})
}

func (s *Store) loadLocked() (*types.Database, error) {
	db, err := readDatabase(s.config.DataFile)
	s.metrics.StoreOp(metrics.OpLoad, err)
	if err != nil {
		s.logger.Error("load failed", "path", s.config.DataFile, "error", err)
		return nil, err
	}
	s.metrics.TableRows(db)
	s.logger.Debug("database loaded",
		"path", s.config.DataFile,
		types.TableClients, len(db.Clients),
		types.TableRooms, len(db.Rooms),
		types.TableReservations, len(db.Reservations))
	return db, nil
}

func (s *Store) saveLocked(db *types.Database) error {
	db.Version = types.DatabaseVersion
	if db.DatabaseID == "" {
		db.DatabaseID = newDatabaseID()
	}
	for _, name := range types.StandardTableNames {
		rows, _ := db.Table(name)
		if *rows == nil {
			*rows = []types.Row{}
		}
	}

	err := writeDatabase(s.config.DataFile, db)
	s.metrics.StoreOp(metrics.OpSave, err)
	if err != nil {
		s.logger.Error("save failed", "path", s.config.DataFile, "error", err)
		return err
	}
	s.metrics.TableRows(db)
	s.logger.Debug("database saved", "path", s.config.DataFile, "database_id", db.DatabaseID)
	return nil
}

// newDatabaseID generates the UUID v7 stamped into a new database file.
func newDatabaseID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// Exists reports whether position id of table holds a live row. Out of range
// and soft-deleted slots report false.
func (s *Store) Exists(table string, id int) (bool, error) {
	db, err := s.Load()
	if err != nil {
		return false, err
	}
	rows, err := db.Table(table)
	if err != nil {
		return false, err
	}
	if id < 0 || id >= len(*rows) {
		return false, nil
	}
	return !(*rows)[id].Deleted(), nil
}
