package types

import (
	"errors"
	"fmt"
	"strings"
)

// Table operation errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidID     = errors.New("invalid record ID")
	ErrInvalidData   = errors.New("invalid record data")
	ErrTableNotFound = errors.New("table not found")
	ErrDuplicate     = errors.New("duplicate value")
)

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrCorrupt         = errors.New("storage is corrupt")
)

// Domain errors.
var (
	ErrValidation   = errors.New("validation failed")
	ErrRoomReserved = errors.New("room is currently reserved")
)

// RecordNotFoundError reports a missing or soft-deleted row.
type RecordNotFoundError struct {
	Table string
	ID    int
}

func (e *RecordNotFoundError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("no record with ID %d was found", e.ID)
	}
	return fmt.Sprintf("no record with ID %d was found in %s", e.ID, e.Table)
}

// Is matches ErrNotFound.
func (e *RecordNotFoundError) Is(target error) bool { return target == ErrNotFound }

// RoomAlreadyReservedError is returned when a reservation targets a room that
// is reserved today. It carries the room number, not its ID.
type RoomAlreadyReservedError struct {
	RoomNumber int
}

func (e *RoomAlreadyReservedError) Error() string {
	return fmt.Sprintf("room number %d is currently reserved", e.RoomNumber)
}

// Is matches ErrRoomReserved.
func (e *RoomAlreadyReservedError) Is(target error) bool { return target == ErrRoomReserved }

// StorageCorruptionError reports a database file that exists but cannot be
// decoded.
type StorageCorruptionError struct {
	Path string
	Err  error
}

func (e *StorageCorruptionError) Error() string {
	return fmt.Sprintf("database file %s is corrupt: %v", e.Path, e.Err)
}

func (e *StorageCorruptionError) Unwrap() error { return e.Err }

// Is matches ErrCorrupt.
func (e *StorageCorruptionError) Is(target error) bool { return target == ErrCorrupt }

// ValidationError carries one message per failing rule, in evaluation order.
type ValidationError struct {
	Table    string
	Messages []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(e.Messages, "; "))
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// UniqueViolationError reports a value already held by another live row in a
// column declared unique.
type UniqueViolationError struct {
	Table  string
	Column string
	Value  any
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("%s.%s value %v is already in use", e.Table, e.Column, e.Value)
}

// Is matches ErrDuplicate.
func (e *UniqueViolationError) Is(target error) bool { return target == ErrDuplicate }
