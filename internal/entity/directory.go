package entity

import (
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Directory groups the three repositories and answers the relationship
// queries between them. Every query is a linear scan filtered by foreign key.
type Directory struct {
	Clients      *Repository[types.Client]
	Rooms        *Repository[types.Room]
	Reservations *Repository[types.Reservation]
}

// NewDirectory creates the repositories over one store.
func NewDirectory(store RowStore) *Directory {
	return &Directory{
		Clients:      NewRepository(store, ClientSchema),
		Rooms:        NewRepository(store, RoomSchema),
		Reservations: NewRepository(store, ReservationSchema),
	}
}

// ClientReservations returns the live reservations made by c.
func (d *Directory) ClientReservations(c types.Client) ([]types.Reservation, error) {
	return d.reservationsWhere(func(r types.Reservation) bool { return r.ClientID == c.ID })
}

// RoomReservations returns the live reservations of room.
func (d *Directory) RoomReservations(room types.Room) ([]types.Reservation, error) {
	return d.reservationsWhere(func(r types.Reservation) bool { return r.RoomID == room.ID })
}

// ReservationClient resolves the client of r.
func (d *Directory) ReservationClient(r types.Reservation) (types.Client, error) {
	return d.Clients.Find(r.ClientID)
}

// ReservationRoom resolves the room of r.
func (d *Directory) ReservationRoom(r types.Reservation) (types.Room, error) {
	return d.Rooms.Find(r.RoomID)
}

// RoomIsReserved reports whether any live reservation of room covers today,
// both ends inclusive.
func (d *Directory) RoomIsReserved(room types.Room, today types.Date) (bool, error) {
	reservations, err := d.RoomReservations(room)
	if err != nil {
		return false, err
	}
	for _, r := range reservations {
		if r.Covers(today) {
			return true, nil
		}
	}
	return false, nil
}

// Balance returns the amount owed for r: the room's daily price times the
// whole number of nights.
func (d *Directory) Balance(r types.Reservation) (float64, error) {
	room, err := d.ReservationRoom(r)
	if err != nil {
		return 0, err
	}
	return Balance(room, r), nil
}

// Balance computes the amount owed for r in room.
func Balance(room types.Room, r types.Reservation) float64 {
	return room.DiaryPrice * float64(r.Nights())
}

func (d *Directory) reservationsWhere(match func(types.Reservation) bool) ([]types.Reservation, error) {
	all, err := d.Reservations.FindAll()
	if err != nil {
		return nil, err
	}
	var out []types.Reservation
	for _, r := range all {
		if !r.Deleted && match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}
