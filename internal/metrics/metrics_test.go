package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func TestRecorderCounts(t *testing.T) {
	r := New()

	r.StoreOp(OpLoad, nil)
	r.StoreOp(OpLoad, nil)
	r.StoreOp(OpSave, errors.New("disk full"))
	r.ValidationFailed(types.TableClients, 3)
	r.ValidationFailed(types.TableClients, 0)
	r.Rejected(ReasonRoomReserved)
	r.RecordChanged(types.TableRooms, ChangeCreate)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.storeOps.WithLabelValues(OpLoad, "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.storeOps.WithLabelValues(OpSave, "error")))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.validations.WithLabelValues(types.TableClients)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.rejections.WithLabelValues(ReasonRoomReserved)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.changes.WithLabelValues(types.TableRooms, ChangeCreate)))
}

func TestRecorderTableRows(t *testing.T) {
	r := New()
	db := types.NewDatabase()
	db.Rooms = append(db.Rooms, types.Row{}, types.Row{types.DeletedColumn: true})

	r.TableRows(db)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.rows.WithLabelValues(types.TableRooms)))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.rows.WithLabelValues(types.TableClients)))
}

func TestNilRecorderIsNoop(t *testing.T) {
	var r *Recorder

	assert.NotPanics(t, func() {
		r.StoreOp(OpLoad, nil)
		r.TableRows(types.NewDatabase())
		r.ValidationFailed(types.TableRooms, 1)
		r.Rejected(ReasonDuplicate)
		r.RecordChanged(types.TableRooms, ChangeDelete)
	})
	assert.Nil(t, r.Registry())
	assert.NoError(t, r.WriteTextfile(filepath.Join(t.TempDir(), "m.prom")))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.RecordChanged(types.TableClients, ChangeCreate)

	path := filepath.Join(t.TempDir(), "frontdesk.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `frontdesk_records_changes_total{change="create",table="clients"} 1`)
}
