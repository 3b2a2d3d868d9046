package types

// Room is a bookable hotel room. DiaryPrice is the price of one night.
type Room struct {
	ID              int     `json:"id"`
	Number          int     `json:"number"`
	MaximumCapacity int     `json:"maximum_capacity"`
	DiaryPrice      float64 `json:"diary_price"`
	Deleted         bool    `json:"deleted"`
}

// Room column names.
const (
	ColumnNumber          = "number"
	ColumnMaximumCapacity = "maximum_capacity"
	ColumnDiaryPrice      = "diary_price"
)

// RoomColumns lists the declared room columns in order.
var RoomColumns = []Column{
	{Name: ColumnNumber, Type: FieldInt},
	{Name: ColumnMaximumCapacity, Type: FieldInt},
	{Name: ColumnDiaryPrice, Type: FieldFloat},
}

// EntityID returns the positional identifier.
func (r Room) EntityID() int { return r.ID }

// IsDeleted reports the soft-delete flag.
func (r Room) IsDeleted() bool { return r.Deleted }
