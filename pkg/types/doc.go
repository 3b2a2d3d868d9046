// Package types defines the entity types, the row and database shapes, the
// column schema, and the standard error types for the frontdesk record store.
//
// Entities (Client, Room, Reservation) are plain structs. Their identifier is
// the zero-based position of their row inside its table; rows are never
// removed, only flagged deleted, so an ID stays valid for the life of the file.
package types
