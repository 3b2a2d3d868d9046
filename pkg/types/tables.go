package types

// Standard table names inside the database file.
const (
	TableClients      = "clients"
	TableRooms        = "rooms"
	TableReservations = "reservations"
)

// StandardTableNames lists all table names in file order.
var StandardTableNames = []string{
	TableClients,
	TableRooms,
	TableReservations,
}

// IsStandardTable reports whether name is one of the standard tables.
func IsStandardTable(name string) bool {
	for _, n := range StandardTableNames {
		if n == name {
			return true
		}
	}
	return false
}
