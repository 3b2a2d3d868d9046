package validation

import (
	"errors"
	"fmt"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Rule set compilation errors.
var (
	ErrUnknownRule      = errors.New("unknown rule")
	ErrUnknownField     = errors.New("rule declared for an undeclared column")
	ErrRequiredInUpdate = errors.New("is_required has no meaning in update mode")
)

// Mode selects which rule map applies.
type Mode int

// Validation modes.
const (
	ModeCreate Mode = iota
	ModeUpdate
)

func (m Mode) String() string {
	if m == ModeUpdate {
		return "update"
	}
	return "create"
}

// FieldSpec is a field name with its rule names in evaluation order.
type FieldSpec struct {
	Field string
	Rules []string
}

// FieldRules is a compiled FieldSpec.
type FieldRules struct {
	Field  string
	Checks []Check
}

// RuleSet holds the compiled create and update rule maps of one table.
type RuleSet struct {
	Table  string
	Create []FieldRules
	Update []FieldRules
}

// For returns the rule map for mode.
func (rs *RuleSet) For(mode Mode) []FieldRules {
	if mode == ModeUpdate {
		return rs.Update
	}
	return rs.Create
}

// Compile parses the create and update specs of a table against its declared
// columns. Fields keep the order given by the columns, so messages come out in
// declaration order regardless of how the specs are listed.
func Compile(table string, columns []types.Column, create, update []FieldSpec) (*RuleSet, error) {
	c, err := compileMode(columns, create, ModeCreate)
	if err != nil {
		return nil, fmt.Errorf("compiling %s create rules: %w", table, err)
	}
	u, err := compileMode(columns, update, ModeUpdate)
	if err != nil {
		return nil, fmt.Errorf("compiling %s update rules: %w", table, err)
	}
	return &RuleSet{Table: table, Create: c, Update: u}, nil
}

// MustCompile is like Compile but panics on error. Used for the package-level
// rule sets so a bad rule name stops the program at startup.
func MustCompile(table string, columns []types.Column, create, update []FieldSpec) *RuleSet {
	rs, err := Compile(table, columns, create, update)
	if err != nil {
		panic(err)
	}
	return rs
}

func compileMode(columns []types.Column, specs []FieldSpec, mode Mode) ([]FieldRules, error) {
	byField := make(map[string][]string, len(specs))
	for _, spec := range specs {
		if !declared(columns, spec.Field) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownField, spec.Field)
		}
		byField[spec.Field] = append(byField[spec.Field], spec.Rules...)
	}

	var out []FieldRules
	for _, col := range columns {
		names, ok := byField[col.Name]
		if !ok {
			continue
		}
		fr := FieldRules{Field: col.Name}
		for _, name := range names {
			check, err := ParseCheck(name)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", col.Name, err)
			}
			if mode == ModeUpdate && check.Rule == RuleRequired {
				return nil, fmt.Errorf("field %s: %w", col.Name, ErrRequiredInUpdate)
			}
			fr.Checks = append(fr.Checks, check)
		}
		out = append(out, fr)
	}
	return out, nil
}

func declared(columns []types.Column, field string) bool {
	for _, c := range columns {
		if c.Name == field {
			return true
		}
	}
	return false
}

// Rule sets for the three entities.
var (
	ClientRules = MustCompile(types.TableClients, types.ClientColumns,
		[]FieldSpec{
			{Field: types.ColumnName, Rules: []string{"is_required", "is_str"}},
			{Field: types.ColumnEmail, Rules: []string{"is_required", "is_email", "is_str"}},
			{Field: types.ColumnPhone, Rules: []string{"is_required", "is_phone"}},
		},
		[]FieldSpec{
			{Field: types.ColumnName, Rules: []string{"is_str"}},
			{Field: types.ColumnEmail, Rules: []string{"is_email", "is_str"}},
			{Field: types.ColumnPhone, Rules: []string{"is_phone"}},
		})

	RoomRules = MustCompile(types.TableRooms, types.RoomColumns,
		[]FieldSpec{
			{Field: types.ColumnNumber, Rules: []string{"is_required", "is_integer", "is_positive"}},
			{Field: types.ColumnMaximumCapacity, Rules: []string{"is_required", "is_integer", "is_positive"}},
			{Field: types.ColumnDiaryPrice, Rules: []string{"is_required", "is_float", "is_positive"}},
		},
		[]FieldSpec{
			{Field: types.ColumnNumber, Rules: []string{"is_integer", "is_positive"}},
			{Field: types.ColumnMaximumCapacity, Rules: []string{"is_integer", "is_positive"}},
			{Field: types.ColumnDiaryPrice, Rules: []string{"is_float", "is_positive"}},
		})

	ReservationRules = MustCompile(types.TableReservations, types.ReservationColumns,
		[]FieldSpec{
			{Field: types.ColumnClientID, Rules: []string{"is_required", "exists_in:clients", "is_integer"}},
			{Field: types.ColumnRoomID, Rules: []string{"is_required", "exists_in:rooms", "is_integer"}},
			{Field: types.ColumnCheckInDate, Rules: []string{"is_required", "is_date"}},
			{Field: types.ColumnCheckOutDate, Rules: []string{"is_required", "is_date"}},
		},
		[]FieldSpec{
			{Field: types.ColumnClientID, Rules: []string{"exists_in:clients", "is_integer"}},
			{Field: types.ColumnRoomID, Rules: []string{"exists_in:rooms", "is_integer"}},
			{Field: types.ColumnCheckInDate, Rules: []string{"is_date"}},
			{Field: types.ColumnCheckOutDate, Rules: []string{"is_date"}},
		})
)
