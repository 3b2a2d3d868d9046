package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/frontdesk/internal/metrics"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// setupStore creates a Store attached to a file inside a fresh temp directory.
func setupStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "hotel.json")
	s := New(opts...)
	require.NoError(t, s.Attach(types.Config{DataFile: path}))
	t.Cleanup(func() { s.Detach() })
	return s, path
}

func TestAttachLifecycle(t *testing.T) {
	s := New()

	_, err := s.Load()
	assert.ErrorIs(t, err, types.ErrStoreDetached)

	err = s.Attach(types.Config{})
	assert.ErrorIs(t, err, types.ErrDataFileEmpty)

	path := filepath.Join(t.TempDir(), "nested", "hotel.json")
	require.NoError(t, s.Attach(types.Config{DataFile: path}))
	assert.ErrorIs(t, s.Attach(types.Config{DataFile: path}), types.ErrAlreadyAttached)
	assert.Equal(t, path, s.Path())

	info, err := os.Stat(filepath.Dir(path))
	require.NoError(t, err)
	assert.True(t, info.IsDir(), "attach creates the data directory")

	require.NoError(t, s.Detach())
	require.NoError(t, s.Detach(), "detach is idempotent")
	assert.Equal(t, "", s.Path())
	assert.ErrorIs(t, s.Save(types.NewDatabase()), types.ErrStoreDetached)
}

func TestLoadMissingFileReturnsEmptyTables(t *testing.T) {
	s, path := setupStore(t)

	db, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, db.Clients)
	assert.Empty(t, db.Rooms)
	assert.Empty(t, db.Reservations)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "load does not create the file")
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not json", content: "\x80\x04\x95binary"},
		{name: "empty file", content: ""},
		{name: "table is not an array", content: `{"clients": {"name": "x"}}`},
		{name: "row is not an object", content: `{"rooms": [1, 2]}`},
		{name: "null row", content: `{"rooms": [null]}`},
		{name: "deleted flag not boolean", content: `{"rooms": [{"number": 1, "deleted": "no"}]}`},
		{name: "future version", content: `{"version": 99, "clients": []}`},
		{name: "trailing garbage", content: `{"clients": []} {"rooms": []}`},
		{name: "null document", content: "null"},
		{name: "array document", content: `[]`},
		{name: "null tables", content: `{"clients": null, "rooms": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, path := setupStore(t)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			db, err := s.Load()
			assert.Nil(t, db, "corruption must not be masked as empty data")
			assert.ErrorIs(t, err, types.ErrCorrupt)

			var corrupt *types.StorageCorruptionError
			require.ErrorAs(t, err, &corrupt)
			assert.Equal(t, path, corrupt.Path)
		})
	}
}

func TestLoadIgnoresUnknownFieldsAndMissingTables(t *testing.T) {
	s, path := setupStore(t)
	content := `{"clients": [{"name": "Ana", "email": "ana@mail.com", "phone": "912345678", "deleted": false, "vip": true}], "extra": 1}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	db, err := s.Load()
	require.NoError(t, err)
	require.Len(t, db.Clients, 1)
	assert.Equal(t, "Ana", db.Clients[0][types.ColumnName])
	assert.NotNil(t, db.Rooms)
	assert.NotNil(t, db.Reservations)
	assert.Equal(t, types.DatabaseVersion, db.Version)
}

func TestAppendAssignsPositionalIDs(t *testing.T) {
	s, _ := setupStore(t)

	for want := 0; want < 3; want++ {
		id, err := s.Append(types.TableRooms, types.Row{types.ColumnNumber: 100 + want})
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}

	rows, err := s.Rows(types.TableRooms)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for _, r := range rows {
		assert.Equal(t, false, r[types.DeletedColumn], "append sets deleted=false")
	}

	_, err = s.Append("guests", types.Row{})
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestAppendDoesNotAliasCallerRow(t *testing.T) {
	s, _ := setupStore(t)
	row := types.Row{types.ColumnName: "Ana"}

	_, err := s.Append(types.TableClients, row)
	require.NoError(t, err)

	_, hasDeleted := row[types.DeletedColumn]
	assert.False(t, hasDeleted)
}

func TestSaveThenLoadRoundTrip(t *testing.T) {
	s, path := setupStore(t)

	_, err := s.Append(types.TableClients, types.Row{
		types.ColumnName:  "Ana",
		types.ColumnEmail: "ana@mail.com",
		types.ColumnPhone: "912345678",
	})
	require.NoError(t, err)
	_, err = s.Append(types.TableRooms, types.Row{
		types.ColumnNumber:          101,
		types.ColumnMaximumCapacity: 2,
		types.ColumnDiaryPrice:      99.5,
	})
	require.NoError(t, err)

	reopened := New()
	require.NoError(t, reopened.Attach(types.Config{DataFile: path}))
	db, err := reopened.Load()
	require.NoError(t, err)

	require.Len(t, db.Clients, 1)
	assert.Equal(t, "ana@mail.com", db.Clients[0][types.ColumnEmail])
	require.Len(t, db.Rooms, 1)
	number, ok := types.AsInt(db.Rooms[0][types.ColumnNumber])
	require.True(t, ok)
	assert.Equal(t, 101, number)
	price, ok := types.AsFloat(db.Rooms[0][types.ColumnDiaryPrice])
	require.True(t, ok)
	assert.Equal(t, 99.5, price)

	_, err = uuid.Parse(db.DatabaseID)
	assert.NoError(t, err, "first save stamps a UUID database id")
}

func TestDatabaseIDIsStable(t *testing.T) {
	s, _ := setupStore(t)

	_, err := s.Append(types.TableClients, types.Row{types.ColumnName: "A"})
	require.NoError(t, err)
	first, err := s.Load()
	require.NoError(t, err)

	_, err = s.Append(types.TableClients, types.Row{types.ColumnName: "B"})
	require.NoError(t, err)
	second, err := s.Load()
	require.NoError(t, err)

	assert.NotEmpty(t, first.DatabaseID)
	assert.Equal(t, first.DatabaseID, second.DatabaseID)
}

func TestFileLayout(t *testing.T) {
	s, path := setupStore(t)

	_, err := s.Append(types.TableRooms, types.Row{types.ColumnNumber: 7})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, name := range types.StandardTableNames {
		assert.Contains(t, raw, name)
	}
	assert.JSONEq(t, `[]`, string(raw[types.TableClients]))
	assert.JSONEq(t, `[{"number": 7, "deleted": false}]`, string(raw[types.TableRooms]))
	assert.JSONEq(t, `1`, string(raw["version"]))
}

func TestReplace(t *testing.T) {
	s, _ := setupStore(t)
	id, err := s.Append(types.TableClients, types.Row{types.ColumnName: "Ana"})
	require.NoError(t, err)

	require.NoError(t, s.Replace(types.TableClients, id, types.Row{types.ColumnName: "Bia"}))

	rows, err := s.Rows(types.TableClients)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Bia", rows[0][types.ColumnName])
	assert.Equal(t, false, rows[0][types.DeletedColumn], "existing flag kept when row has none")

	var notFound *types.RecordNotFoundError
	err = s.Replace(types.TableClients, 1, types.Row{})
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 1, notFound.ID)
	assert.ErrorIs(t, s.Replace(types.TableClients, -1, types.Row{}), types.ErrNotFound)
}

func TestSoftDeleteKeepsRowContent(t *testing.T) {
	s, _ := setupStore(t)
	_, err := s.Append(types.TableClients, types.Row{types.ColumnName: "Ana"})
	require.NoError(t, err)
	id, err := s.Append(types.TableClients, types.Row{types.ColumnName: "Bia"})
	require.NoError(t, err)

	require.NoError(t, s.SoftDelete(types.TableClients, id))

	rows, err := s.Rows(types.TableClients)
	require.NoError(t, err)
	require.Len(t, rows, 2, "rows are never physically removed")
	assert.True(t, rows[id].Deleted())
	assert.Equal(t, "Bia", rows[id][types.ColumnName])
	assert.False(t, rows[0].Deleted())

	next, err := s.Append(types.TableClients, types.Row{types.ColumnName: "Caio"})
	require.NoError(t, err)
	assert.Equal(t, 2, next, "deleted slots are not reused")

	assert.ErrorIs(t, s.SoftDelete(types.TableClients, 9), types.ErrNotFound)
}

func TestUpdateErrorLeavesFileUntouched(t *testing.T) {
	s, path := setupStore(t)
	_, err := s.Append(types.TableClients, types.Row{types.ColumnName: "Ana"})
	require.NoError(t, err)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	err = s.Update(func(db *types.Database) error {
		db.Clients = nil
		return types.ErrInvalidData
	})
	assert.ErrorIs(t, err, types.ErrInvalidData)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	s, path := setupStore(t)
	for i := 0; i < 5; i++ {
		_, err := s.Append(types.TableRooms, types.Row{types.ColumnNumber: i})
		require.NoError(t, err)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

func TestConcurrentAppendsAreSerialized(t *testing.T) {
	s, _ := setupStore(t)

	const n = 20
	var wg sync.WaitGroup
	ids := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := s.Append(types.TableRooms, types.Row{types.ColumnNumber: i})
			assert.NoError(t, err)
			ids <- id
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	rows, err := s.Rows(types.TableRooms)
	require.NoError(t, err)
	assert.Len(t, rows, n)
}

func TestStoreMetrics(t *testing.T) {
	rec := metrics.New()
	s, path := setupStore(t, WithMetrics(rec))

	_, err := s.Append(types.TableRooms, types.Row{types.ColumnNumber: 1})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = s.Load()
	require.Error(t, err)

	count, err := testutil.GatherAndCount(rec.Registry(), "frontdesk_store_operations_total")
	require.NoError(t, err)
	assert.Equal(t, 3, count, "load ok, save ok, load error series")
}

func TestExists(t *testing.T) {
	s, _ := setupStore(t)
	_, err := s.Append(types.TableRooms, types.Row{types.ColumnNumber: 1})
	require.NoError(t, err)
	_, err = s.Append(types.TableRooms, types.Row{types.ColumnNumber: 2})
	require.NoError(t, err)
	require.NoError(t, s.SoftDelete(types.TableRooms, 1))

	tests := []struct {
		name string
		id   int
		want bool
	}{
		{name: "live row", id: 0, want: true},
		{name: "soft-deleted row", id: 1, want: false},
		{name: "equal to row count", id: 2, want: false},
		{name: "negative", id: -1, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Exists(types.TableRooms, tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err = s.Exists("guests", 0)
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}
