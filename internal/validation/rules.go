// Package validation checks submitted field data against declarative rule
// sets before anything is written to the store.
//
// Rules form a closed set. Rule names are parsed once, when a RuleSet is
// compiled, so an unknown name fails at startup rather than at call time.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Rule is one built-in predicate kind.
type Rule int

// Built-in rules.
const (
	RuleRequired Rule = iota + 1
	RuleStr
	RuleInteger
	RuleFloat
	RulePositive
	RulePhone
	RuleEmail
	RuleDate
	RuleExistsIn
)

// existsInPrefix introduces the table argument of the exists_in rule.
const existsInPrefix = "exists_in:"

var ruleNames = map[Rule]string{
	RuleRequired: "is_required",
	RuleStr:      "is_str",
	RuleInteger:  "is_integer",
	RuleFloat:    "is_float",
	RulePositive: "is_positive",
	RulePhone:    "is_phone",
	RuleEmail:    "is_email",
	RuleDate:     "is_date",
	RuleExistsIn: "exists_in",
}

// AllRules lists every rule in declaration order.
var AllRules = []Rule{
	RuleRequired, RuleStr, RuleInteger, RuleFloat, RulePositive,
	RulePhone, RuleEmail, RuleDate, RuleExistsIn,
}

// String returns the rule key used in rule maps and message catalogs.
func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Rule(%d)", int(r))
}

// Check is a rule bound to its argument. Only exists_in takes one: the table
// whose live rows the value must point at.
type Check struct {
	Rule  Rule
	Table string
}

func (c Check) String() string {
	if c.Rule == RuleExistsIn {
		return existsInPrefix + c.Table
	}
	return c.Rule.String()
}

// ParseCheck turns a rule name such as "is_email" or "exists_in:rooms" into a
// Check. Unknown names and unknown exists_in tables are errors.
func ParseCheck(name string) (Check, error) {
	if table, ok := strings.CutPrefix(name, existsInPrefix); ok {
		if !types.IsStandardTable(table) {
			return Check{}, fmt.Errorf("rule %q: %w", name, types.ErrTableNotFound)
		}
		return Check{Rule: RuleExistsIn, Table: table}, nil
	}
	for r, n := range ruleNames {
		if n == name && r != RuleExistsIn {
			return Check{Rule: r}, nil
		}
	}
	return Check{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
}

// predicate evaluates one value. Absent values arrive as nil.
type predicate func(v any) bool

// predicates holds every rule except exists_in, which needs the store.
var predicates = map[Rule]predicate{
	RuleRequired: isRequired,
	RuleStr:      isStr,
	RuleInteger:  isInteger,
	RuleFloat:    isFloat,
	RulePositive: isPositive,
	RulePhone:    isPhone,
	RuleEmail:    isEmail,
	RuleDate:     isDate,
}

func isRequired(v any) bool {
	if v == nil {
		return false
	}
	s, ok := v.(string)
	return !ok || s != ""
}

func isStr(v any) bool {
	_, ok := v.(string)
	return ok
}

// isInteger accepts Go integer kinds only; a float holding an integral value
// is not an integer.
func isInteger(v any) bool {
	if v == nil {
		return false
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

func isFloat(v any) bool {
	switch v.(type) {
	case float32, float64:
		return true
	}
	return false
}

func isPositive(v any) bool {
	if isInteger(v) {
		return reflect.ValueOf(v).Convert(reflect.TypeOf(float64(0))).Float() > 0
	}
	if isFloat(v) {
		f, _ := types.AsFloat(v)
		return f > 0
	}
	return false
}

func isPhone(v any) bool {
	s, ok := v.(string)
	if !ok || len(s) != 9 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.[a-zA-Z]{2,}$`)

func isEmail(v any) bool {
	s, ok := v.(string)
	return ok && emailPattern.MatchString(s)
}

func isDate(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	_, err := types.ParseDate(s)
	return err == nil
}
