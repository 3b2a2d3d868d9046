package hotel

import (
	"fmt"

	"github.com/mesh-intelligence/frontdesk/internal/report"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// TotalBalance returns the amount owed across every live reservation of a
// live room, and those reservations.
func (h *Hotel) TotalBalance() (float64, []types.Reservation, error) {
	var (
		total        float64
		reservations []types.Reservation
	)
	err := h.withReport(func(db *report.DB) error {
		var err error
		total, reservations, err = db.TotalBalance()
		return err
	})
	return total, reservations, err
}

// RoomsCurrentlyReserved returns the live rooms reserved today.
func (h *Hotel) RoomsCurrentlyReserved() ([]types.Room, error) {
	var rooms []types.Room
	err := h.withReport(func(db *report.DB) error {
		var err error
		rooms, err = db.RoomsReserved(h.Today())
		return err
	})
	return rooms, err
}

// RoomsCurrentlyFree returns the live rooms not reserved today.
func (h *Hotel) RoomsCurrentlyFree() ([]types.Room, error) {
	var rooms []types.Room
	err := h.withReport(func(db *report.DB) error {
		var err error
		rooms, err = db.RoomsFree(h.Today())
		return err
	})
	return rooms, err
}

// withReport loads the file once, snapshots the three tables from that load,
// runs fn on the snapshot, and closes it.
func (h *Hotel) withReport(fn func(db *report.DB) error) error {
	loaded, err := h.store.Load()
	if err != nil {
		return err
	}
	var snap report.Snapshot
	if snap.Clients, err = h.dir.Clients.FindAllIn(loaded); err != nil {
		return fmt.Errorf("reading clients: %w", err)
	}
	if snap.Rooms, err = h.dir.Rooms.FindAllIn(loaded); err != nil {
		return fmt.Errorf("reading rooms: %w", err)
	}
	if snap.Reservations, err = h.dir.Reservations.FindAllIn(loaded); err != nil {
		return fmt.Errorf("reading reservations: %w", err)
	}

	db, err := report.Open(snap)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := fn(db); err != nil {
		return fmt.Errorf("running report: %w", err)
	}
	h.logger.Debug("report run",
		types.TableClients, len(snap.Clients),
		types.TableRooms, len(snap.Rooms),
		types.TableReservations, len(snap.Reservations))
	return nil
}
