package types

// Client is a hotel guest.
type Client struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Deleted bool   `json:"deleted"`
}

// Client column names.
const (
	ColumnName  = "name"
	ColumnEmail = "email"
	ColumnPhone = "phone"
)

// ClientColumns lists the declared client columns in order.
var ClientColumns = []Column{
	{Name: ColumnName, Type: FieldString},
	{Name: ColumnEmail, Type: FieldString},
	{Name: ColumnPhone, Type: FieldString},
}

// EntityID returns the positional identifier.
func (c Client) EntityID() int { return c.ID }

// IsDeleted reports the soft-delete flag.
func (c Client) IsDeleted() bool { return c.Deleted }
