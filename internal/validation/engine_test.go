package validation

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/frontdesk/internal/metrics"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// fakeLookup holds the deleted flag of each row per table.
type fakeLookup struct {
	deleted map[string][]bool
	err     error
}

func (f *fakeLookup) Exists(table string, id int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	rows := f.deleted[table]
	if id < 0 || id >= len(rows) {
		return false, nil
	}
	return !rows[id], nil
}

func newTestEngine(lookup Lookup) *Engine {
	return NewEngine(lookup, English, nil)
}

func TestClientCreateReportsEachFailingRuleInFieldOrder(t *testing.T) {
	e := newTestEngine(nil)

	got, err := e.Validate(ClientRules, map[string]any{
		types.ColumnName:  "",
		types.ColumnEmail: "bad",
		types.ColumnPhone: "12",
	}, ModeCreate)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"The field Name is required",
		"The field E-mail is not a valid e-mail",
		"The field Phone is not a valid phone number",
	}, got)
}

func TestClientCreateValid(t *testing.T) {
	e := newTestEngine(nil)

	got, err := e.Validate(ClientRules, map[string]any{
		types.ColumnName:  "Ana Souza",
		types.ColumnEmail: "ana.souza@mail.com",
		types.ColumnPhone: "912345678",
	}, ModeCreate)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCreateModeRunsEveryRuleOnAbsentFields(t *testing.T) {
	e := newTestEngine(nil)

	got, err := e.Validate(ClientRules, map[string]any{}, ModeCreate)
	require.NoError(t, err)

	// name: is_required, is_str; email: is_required, is_email, is_str; phone: is_required, is_phone
	assert.Len(t, got, 7)
	assert.Equal(t, "The field Name is required", got[0])
	assert.Equal(t, "The field Name is not text", got[1])
}

func TestFieldWithTwoFailingRulesYieldsTwoMessages(t *testing.T) {
	e := newTestEngine(nil)

	got, err := e.Validate(RoomRules, map[string]any{
		types.ColumnNumber:          "ten",
		types.ColumnMaximumCapacity: 2,
		types.ColumnDiaryPrice:      80.0,
	}, ModeCreate)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"The field Number is not a whole number",
		"The field Number is not a positive number",
	}, got)
}

func TestUpdateModeChecksOnlyPresentFields(t *testing.T) {
	e := newTestEngine(nil)

	got, err := e.Validate(ClientRules, map[string]any{}, ModeUpdate)
	require.NoError(t, err)
	assert.Empty(t, got, "empty update data passes")

	got, err = e.Validate(ClientRules, map[string]any{types.ColumnPhone: "abc"}, ModeUpdate)
	require.NoError(t, err)
	assert.Equal(t, []string{"The field Phone is not a valid phone number"}, got)

	got, err = e.Validate(ClientRules, map[string]any{types.ColumnName: ""}, ModeUpdate)
	require.NoError(t, err)
	assert.Empty(t, got, "is_required is not part of update rules")
}

func TestRoomRules(t *testing.T) {
	e := newTestEngine(nil)

	tests := []struct {
		name string
		data map[string]any
		want []string
	}{
		{
			name: "valid room",
			data: map[string]any{types.ColumnNumber: 101, types.ColumnMaximumCapacity: 2, types.ColumnDiaryPrice: 150.0},
		},
		{
			name: "price given as integer is not a float",
			data: map[string]any{types.ColumnNumber: 101, types.ColumnMaximumCapacity: 2, types.ColumnDiaryPrice: 150},
			want: []string{"The field Daily Price is not a decimal number"},
		},
		{
			name: "zero and negative values",
			data: map[string]any{types.ColumnNumber: 0, types.ColumnMaximumCapacity: -1, types.ColumnDiaryPrice: -5.0},
			want: []string{
				"The field Number is not a positive number",
				"The field Maximum Capacity is not a positive number",
				"The field Daily Price is not a positive number",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Validate(RoomRules, tt.data, ModeCreate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExistsInForeignKeyGuard(t *testing.T) {
	lookup := &fakeLookup{deleted: map[string][]bool{
		types.TableClients: {false},
		types.TableRooms:   {false, true},
	}}
	e := newTestEngine(lookup)

	tests := []struct {
		name   string
		roomID any
		want   []string
	}{
		{name: "live room", roomID: 0},
		{name: "soft-deleted room", roomID: 1, want: []string{"The identifier for Room ID was not found in the database"}},
		{name: "id equal to row count", roomID: 2, want: []string{"The identifier for Room ID was not found in the database"}},
		{name: "id beyond row count", roomID: 40, want: []string{"The identifier for Room ID was not found in the database"}},
		{name: "negative id", roomID: -1, want: []string{"The identifier for Room ID was not found in the database"}},
		{
			name:   "text id",
			roomID: "0",
			want: []string{
				"The identifier for Room ID was not found in the database",
				"The field Room ID is not a whole number",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Validate(ReservationRules, map[string]any{
				types.ColumnClientID:     0,
				types.ColumnRoomID:       tt.roomID,
				types.ColumnCheckInDate:  "01/01/2024",
				types.ColumnCheckOutDate: "03/01/2024",
			}, ModeCreate)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExistsInUpdateAcceptsIDZero(t *testing.T) {
	lookup := &fakeLookup{deleted: map[string][]bool{types.TableRooms: {false}}}
	e := newTestEngine(lookup)

	got, err := e.Validate(ReservationRules, map[string]any{types.ColumnRoomID: 0}, ModeUpdate)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExistsInPropagatesStoreErrors(t *testing.T) {
	boom := errors.New("disk gone")
	e := newTestEngine(&fakeLookup{err: boom})

	_, err := e.Validate(ReservationRules, map[string]any{types.ColumnClientID: 0}, ModeUpdate)
	assert.ErrorIs(t, err, boom)
}

func TestReservationDates(t *testing.T) {
	lookup := &fakeLookup{deleted: map[string][]bool{
		types.TableClients: {false},
		types.TableRooms:   {false},
	}}
	e := newTestEngine(lookup)

	got, err := e.Validate(ReservationRules, map[string]any{
		types.ColumnClientID:     0,
		types.ColumnRoomID:       0,
		types.ColumnCheckInDate:  "2024-01-01",
		types.ColumnCheckOutDate: "32/01/2024",
	}, ModeCreate)

	require.NoError(t, err)
	assert.Equal(t, []string{
		"The field Check-In Date is not a valid date",
		"The field Check-Out Date is not a valid date",
	}, got)
}

func TestCheckReturnsValidationError(t *testing.T) {
	e := newTestEngine(nil)

	err := e.Check(ClientRules, map[string]any{types.ColumnPhone: "1"}, ModeUpdate)
	assert.ErrorIs(t, err, types.ErrValidation)

	var verr *types.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, types.TableClients, verr.Table)
	assert.Len(t, verr.Messages, 1)

	assert.NoError(t, e.Check(ClientRules, map[string]any{}, ModeUpdate))
}

func TestPortugueseMessages(t *testing.T) {
	e := NewEngine(nil, Portuguese, nil)

	got, err := e.Validate(ClientRules, map[string]any{
		types.ColumnName:  "",
		types.ColumnEmail: "x@y.com",
		types.ColumnPhone: "123456789",
	}, ModeCreate)

	require.NoError(t, err)
	assert.Equal(t, []string{"O campo Nome é obrigatório"}, got)
}

func TestValidationMetrics(t *testing.T) {
	rec := metrics.New()
	e := NewEngine(nil, nil, rec)

	_, err := e.Validate(ClientRules, map[string]any{types.ColumnPhone: "1", types.ColumnEmail: "x"}, ModeUpdate)
	require.NoError(t, err)

	count, err := testutil.GatherAndCount(rec.Registry(), "frontdesk_validation_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, English, e.Catalog(), "nil catalog falls back to English")
}
