package types

// Row is one persisted record: declared columns plus the deleted flag.
type Row map[string]any

// Deleted reports the soft-delete flag. A row without the flag is live.
func (r Row) Deleted() bool {
	d, _ := r[DeletedColumn].(bool)
	return d
}

// Clone returns a shallow copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// DatabaseVersion is the file format version written by this package.
const DatabaseVersion = 1

// Database is the whole content of the backing file: three named tables of
// rows in positional order.
type Database struct {
	Version      int    `json:"version"`
	DatabaseID   string `json:"database_id,omitempty"`
	Clients      []Row  `json:"clients"`
	Rooms        []Row  `json:"rooms"`
	Reservations []Row  `json:"reservations"`
}

// NewDatabase returns an empty database with the three tables present.
func NewDatabase() *Database {
	return &Database{
		Version:      DatabaseVersion,
		Clients:      []Row{},
		Rooms:        []Row{},
		Reservations: []Row{},
	}
}

// Table returns a pointer to the named table's rows so callers can append in
// place. Returns ErrTableNotFound for unknown names.
func (d *Database) Table(name string) (*[]Row, error) {
	switch name {
	case TableClients:
		return &d.Clients, nil
	case TableRooms:
		return &d.Rooms, nil
	case TableReservations:
		return &d.Reservations, nil
	default:
		return nil, ErrTableNotFound
	}
}

// Rows returns the named table's rows. Unknown tables yield nil.
func (d *Database) Rows(name string) []Row {
	t, err := d.Table(name)
	if err != nil {
		return nil
	}
	return *t
}

// AppendRow adds row to table with deleted=false and returns its positional
// ID. The caller's map is not modified.
func (d *Database) AppendRow(table string, row Row) (int, error) {
	rows, err := d.Table(table)
	if err != nil {
		return -1, err
	}
	r := row.Clone()
	r[DeletedColumn] = false
	*rows = append(*rows, r)
	return len(*rows) - 1, nil
}

// ReplaceRow overwrites position id. When row carries no deleted flag the
// existing flag is kept.
func (d *Database) ReplaceRow(table string, id int, row Row) error {
	rows, err := d.slot(table, id)
	if err != nil {
		return err
	}
	r := row.Clone()
	if _, ok := r[DeletedColumn]; !ok {
		r[DeletedColumn] = (*rows)[id].Deleted()
	}
	(*rows)[id] = r
	return nil
}

// SoftDeleteRow flags position id as deleted and keeps its content.
func (d *Database) SoftDeleteRow(table string, id int) error {
	rows, err := d.slot(table, id)
	if err != nil {
		return err
	}
	r := (*rows)[id].Clone()
	r[DeletedColumn] = true
	(*rows)[id] = r
	return nil
}

// slot returns the table holding position id after a bounds check.
func (d *Database) slot(table string, id int) (*[]Row, error) {
	rows, err := d.Table(table)
	if err != nil {
		return nil, err
	}
	if id < 0 || id >= len(*rows) {
		return nil, &RecordNotFoundError{Table: table, ID: id}
	}
	return rows, nil
}
