// Package report answers the hotel report queries. A snapshot of the three
// tables is loaded into an in-memory SQLite database and queried there; the
// JSON file stays the source of truth and nothing is written back.
package report

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// Snapshot is the input of a report run: every row of every table, deleted
// rows included, with their positional IDs.
type Snapshot struct {
	Clients      []types.Client
	Rooms        []types.Room
	Reservations []types.Reservation
}

// DB is a loaded snapshot. Close it when done.
type DB struct {
	db           *sql.DB
	rooms        map[int]types.Room
	reservations map[int]types.Reservation
}

// Open creates an in-memory database and loads snap into it in one
// transaction.
func Open(snap Snapshot) (*DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening report database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating report schema: %w", err)
	}

	r := &DB{
		db:           db,
		rooms:        make(map[int]types.Room, len(snap.Rooms)),
		reservations: make(map[int]types.Reservation, len(snap.Reservations)),
	}
	if err := r.load(snap); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Close releases the in-memory database.
func (r *DB) Close() error {
	return r.db.Close()
}

func (r *DB) load(snap Snapshot) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for _, c := range snap.Clients {
		if _, err := tx.Exec(
			"INSERT INTO clients (id, name, email, phone, deleted) VALUES (?, ?, ?, ?, ?)",
			c.ID, c.Name, c.Email, c.Phone, c.Deleted,
		); err != nil {
			return fmt.Errorf("loading client %d: %w", c.ID, err)
		}
	}
	for _, room := range snap.Rooms {
		if _, err := tx.Exec(
			"INSERT INTO rooms (id, number, maximum_capacity, diary_price, deleted) VALUES (?, ?, ?, ?, ?)",
			room.ID, room.Number, room.MaximumCapacity, room.DiaryPrice, room.Deleted,
		); err != nil {
			return fmt.Errorf("loading room %d: %w", room.ID, err)
		}
		r.rooms[room.ID] = room
	}
	for _, res := range snap.Reservations {
		if _, err := tx.Exec(
			"INSERT INTO reservations (id, client_id, room_id, check_in_date, check_out_date, deleted) VALUES (?, ?, ?, ?, ?, ?)",
			res.ID, res.ClientID, res.RoomID, res.CheckInDate.ISO(), res.CheckOutDate.ISO(), res.Deleted,
		); err != nil {
			return fmt.Errorf("loading reservation %d: %w", res.ID, err)
		}
		r.reservations[res.ID] = res
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// billable joins live reservations to their live rooms.
const billable = `
FROM reservations r
JOIN rooms m ON m.id = r.room_id
WHERE r.deleted = 0 AND m.deleted = 0`

// TotalBalance returns the sum of every billable reservation's balance and
// the reservations that contributed, in ID order. A reservation's balance is
// its room's daily price times the whole number of nights.
func (r *DB) TotalBalance() (float64, []types.Reservation, error) {
	var total float64
	err := r.db.QueryRow(
		"SELECT COALESCE(SUM(m.diary_price * CAST(julianday(r.check_out_date) - julianday(r.check_in_date) AS INTEGER)), 0)" + billable,
	).Scan(&total)
	if err != nil {
		return 0, nil, fmt.Errorf("summing balance: %w", err)
	}

	ids, err := r.ids("SELECT r.id" + billable + " ORDER BY r.id")
	if err != nil {
		return 0, nil, fmt.Errorf("listing billable reservations: %w", err)
	}
	out := make([]types.Reservation, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.reservations[id])
	}
	return total, out, nil
}

// reservedToday matches live rooms with a live reservation covering the day
// bound to the two placeholders.
const reservedToday = `EXISTS (
    SELECT 1 FROM reservations r
    WHERE r.room_id = m.id AND r.deleted = 0
      AND r.check_in_date <= ? AND ? <= r.check_out_date)`

// RoomsReserved returns the live rooms with a live reservation covering
// today, both ends inclusive, in ID order.
func (r *DB) RoomsReserved(today types.Date) ([]types.Room, error) {
	return r.roomsWhere(reservedToday, today)
}

// RoomsFree returns the live rooms with no live reservation covering today.
func (r *DB) RoomsFree(today types.Date) ([]types.Room, error) {
	return r.roomsWhere("NOT "+reservedToday, today)
}

func (r *DB) roomsWhere(cond string, today types.Date) ([]types.Room, error) {
	day := today.ISO()
	ids, err := r.ids("SELECT m.id FROM rooms m WHERE m.deleted = 0 AND "+cond+" ORDER BY m.id", day, day)
	if err != nil {
		return nil, fmt.Errorf("querying rooms: %w", err)
	}
	out := make([]types.Room, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.rooms[id])
	}
	return out, nil
}

func (r *DB) ids(query string, args ...any) ([]int, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
