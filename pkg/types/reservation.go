package types

// Reservation books a room for a client between two dates, both inclusive
// when deciding whether the room is occupied on a given day.
type Reservation struct {
	ID           int  `json:"id"`
	ClientID     int  `json:"client_id"`
	RoomID       int  `json:"room_id"`
	CheckInDate  Date `json:"check_in_date"`
	CheckOutDate Date `json:"check_out_date"`
	Deleted      bool `json:"deleted"`
}

// Reservation column names.
const (
	ColumnClientID     = "client_id"
	ColumnRoomID       = "room_id"
	ColumnCheckInDate  = "check_in_date"
	ColumnCheckOutDate = "check_out_date"
)

// ReservationColumns lists the declared reservation columns in order.
var ReservationColumns = []Column{
	{Name: ColumnClientID, Type: FieldInt},
	{Name: ColumnRoomID, Type: FieldInt},
	{Name: ColumnCheckInDate, Type: FieldDate},
	{Name: ColumnCheckOutDate, Type: FieldDate},
}

// EntityID returns the positional identifier.
func (r Reservation) EntityID() int { return r.ID }

// IsDeleted reports the soft-delete flag.
func (r Reservation) IsDeleted() bool { return r.Deleted }

// Nights returns the whole number of days between check-in and check-out.
func (r Reservation) Nights() int {
	return r.CheckInDate.DaysUntil(r.CheckOutDate)
}

// Covers reports whether day falls within [check-in, check-out].
func (r Reservation) Covers(day Date) bool {
	return day.Within(r.CheckInDate, r.CheckOutDate)
}
