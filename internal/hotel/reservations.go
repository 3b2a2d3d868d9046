package hotel

import (
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// guardReservationCreate refuses a reservation for a room that is reserved
// today. Only today is checked: the new stay's dates are not compared with
// existing stays.
func (h *Hotel) guardReservationCreate(data map[string]any) error {
	roomID, _ := types.AsInt(data[types.ColumnRoomID])
	return h.checkRoomFree(roomID)
}

// guardReservationUpdate applies the same check when the reservation moves
// to a different room.
func (h *Hotel) guardReservationUpdate(current types.Reservation, data map[string]any) error {
	v, ok := data[types.ColumnRoomID]
	if !ok {
		return nil
	}
	roomID, _ := types.AsInt(v)
	if roomID == current.RoomID {
		return nil
	}
	return h.checkRoomFree(roomID)
}

func (h *Hotel) checkRoomFree(roomID int) error {
	room, err := h.dir.Rooms.Find(roomID)
	if err != nil {
		return err
	}
	reserved, err := h.dir.RoomIsReserved(room, h.Today())
	if err != nil {
		return err
	}
	if reserved {
		return &types.RoomAlreadyReservedError{RoomNumber: room.Number}
	}
	return nil
}

// Balance returns the amount owed for r.
func (h *Hotel) Balance(r types.Reservation) (float64, error) {
	return h.dir.Balance(r)
}
