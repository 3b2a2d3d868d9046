package types

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// FieldType is the declared type of a column.
type FieldType string

// Column types.
const (
	FieldString FieldType = "str"
	FieldInt    FieldType = "int"
	FieldFloat  FieldType = "float"
	FieldDate   FieldType = "date"
)

// Column describes one declared column of an entity.
type Column struct {
	Name string
	Type FieldType
}

// DeletedColumn is the reserved soft-delete flag present on every row.
const DeletedColumn = "deleted"

// CastValue converts text input into the Go value for the declared type.
// Text that does not parse is returned unchanged so that the type rule of the
// validation engine reports it instead of the caller.
func CastValue(t FieldType, raw string) any {
	switch t {
	case FieldInt:
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			return n
		}
	case FieldFloat:
		if f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			return f
		}
	}
	return raw
}

// AsInt reports the integer held by v. Row values decoded from JSON arrive as
// json.Number or float64; only integral values are accepted.
func AsInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}

// AsFloat reports the float held by v, accepting integral inputs as well.
func AsFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
