package entity

import (
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// ClientSchema maps client rows.
var ClientSchema = Schema[types.Client]{
	Table:   types.TableClients,
	Columns: types.ClientColumns,
	Unique:  []string{types.ColumnEmail},
	Decode: func(id int, row types.Row) (types.Client, error) {
		c := types.Client{ID: id, Deleted: row.Deleted()}
		var err error
		if c.Name, err = stringColumn(types.TableClients, row, types.ColumnName); err != nil {
			return types.Client{}, err
		}
		if c.Email, err = stringColumn(types.TableClients, row, types.ColumnEmail); err != nil {
			return types.Client{}, err
		}
		if c.Phone, err = stringColumn(types.TableClients, row, types.ColumnPhone); err != nil {
			return types.Client{}, err
		}
		return c, nil
	},
	Encode: func(c types.Client) types.Row {
		return types.Row{
			types.ColumnName:  c.Name,
			types.ColumnEmail: c.Email,
			types.ColumnPhone: c.Phone,
		}
	},
}

// RoomSchema maps room rows.
var RoomSchema = Schema[types.Room]{
	Table:   types.TableRooms,
	Columns: types.RoomColumns,
	Unique:  []string{types.ColumnNumber},
	Decode: func(id int, row types.Row) (types.Room, error) {
		r := types.Room{ID: id, Deleted: row.Deleted()}
		var err error
		if r.Number, err = intColumn(types.TableRooms, row, types.ColumnNumber); err != nil {
			return types.Room{}, err
		}
		if r.MaximumCapacity, err = intColumn(types.TableRooms, row, types.ColumnMaximumCapacity); err != nil {
			return types.Room{}, err
		}
		if r.DiaryPrice, err = floatColumn(types.TableRooms, row, types.ColumnDiaryPrice); err != nil {
			return types.Room{}, err
		}
		return r, nil
	},
	Encode: func(r types.Room) types.Row {
		return types.Row{
			types.ColumnNumber:          r.Number,
			types.ColumnMaximumCapacity: r.MaximumCapacity,
			types.ColumnDiaryPrice:      r.DiaryPrice,
		}
	},
}

// ReservationSchema maps reservation rows. Dates are stored as dd/mm/yyyy.
var ReservationSchema = Schema[types.Reservation]{
	Table:   types.TableReservations,
	Columns: types.ReservationColumns,
	Decode: func(id int, row types.Row) (types.Reservation, error) {
		r := types.Reservation{ID: id, Deleted: row.Deleted()}
		var err error
		if r.ClientID, err = intColumn(types.TableReservations, row, types.ColumnClientID); err != nil {
			return types.Reservation{}, err
		}
		if r.RoomID, err = intColumn(types.TableReservations, row, types.ColumnRoomID); err != nil {
			return types.Reservation{}, err
		}
		if r.CheckInDate, err = dateColumn(types.TableReservations, row, types.ColumnCheckInDate); err != nil {
			return types.Reservation{}, err
		}
		if r.CheckOutDate, err = dateColumn(types.TableReservations, row, types.ColumnCheckOutDate); err != nil {
			return types.Reservation{}, err
		}
		return r, nil
	},
	Encode: func(r types.Reservation) types.Row {
		return types.Row{
			types.ColumnClientID:     r.ClientID,
			types.ColumnRoomID:       r.RoomID,
			types.ColumnCheckInDate:  r.CheckInDate.String(),
			types.ColumnCheckOutDate: r.CheckOutDate.String(),
		}
	},
}

func stringColumn(table string, row types.Row, col string) (string, error) {
	v, ok := row[col]
	if !ok {
		return "", invalid(table, col, "is missing")
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(table, col, "is not text")
	}
	return s, nil
}

func intColumn(table string, row types.Row, col string) (int, error) {
	v, ok := row[col]
	if !ok {
		return 0, invalid(table, col, "is missing")
	}
	n, ok := types.AsInt(v)
	if !ok {
		return 0, invalid(table, col, "is not an integer")
	}
	return n, nil
}

func floatColumn(table string, row types.Row, col string) (float64, error) {
	v, ok := row[col]
	if !ok {
		return 0, invalid(table, col, "is missing")
	}
	f, ok := types.AsFloat(v)
	if !ok {
		return 0, invalid(table, col, "is not a number")
	}
	return f, nil
}

func dateColumn(table string, row types.Row, col string) (types.Date, error) {
	v, ok := row[col]
	if !ok {
		return types.Date{}, invalid(table, col, "is missing")
	}
	switch d := v.(type) {
	case types.Date:
		return d, nil
	case string:
		parsed, err := types.ParseDate(d)
		if err != nil {
			return types.Date{}, invalid(table, col, "is not a dd/mm/yyyy date")
		}
		return parsed, nil
	default:
		return types.Date{}, invalid(table, col, "is not a date")
	}
}
