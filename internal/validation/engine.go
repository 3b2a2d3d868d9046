package validation

import (
	"fmt"

	"github.com/mesh-intelligence/frontdesk/internal/metrics"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Lookup answers the foreign-key question of the exists_in rule.
type Lookup interface {
	// Exists reports whether id is a live row of table.
	Exists(table string, id int) (bool, error)
}

// Engine evaluates rule sets against submitted data.
type Engine struct {
	lookup  Lookup
	catalog *Catalog
	metrics *metrics.Recorder
}

// NewEngine creates an Engine. A nil catalog means English.
func NewEngine(lookup Lookup, catalog *Catalog, rec *metrics.Recorder) *Engine {
	if catalog == nil {
		catalog = English
	}
	return &Engine{lookup: lookup, catalog: catalog, metrics: rec}
}

// Catalog returns the message catalog in use.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Validate runs every rule of rs for mode over data and returns one message
// per failing rule, in field declaration order then rule order. An empty
// result means the data passed.
//
// In create mode every rule runs, and an absent field is evaluated as nil. In
// update mode only fields present in data are checked. The returned error is
// reserved for store failures during exists_in lookups.
func (e *Engine) Validate(rs *RuleSet, data map[string]any, mode Mode) ([]string, error) {
	var messages []string
	for _, fr := range rs.For(mode) {
		value, present := data[fr.Field]
		if mode == ModeUpdate && !present {
			continue
		}
		for _, check := range fr.Checks {
			ok, err := e.evaluate(check, value)
			if err != nil {
				return nil, fmt.Errorf("validating %s.%s: %w", rs.Table, fr.Field, err)
			}
			if !ok {
				messages = append(messages, e.catalog.Message(check.Rule, fr.Field))
			}
		}
	}
	e.metrics.ValidationFailed(rs.Table, len(messages))
	return messages, nil
}

// Check validates and folds failures into a *types.ValidationError.
func (e *Engine) Check(rs *RuleSet, data map[string]any, mode Mode) error {
	messages, err := e.Validate(rs, data, mode)
	if err != nil {
		return err
	}
	if len(messages) > 0 {
		return &types.ValidationError{Table: rs.Table, Messages: messages}
	}
	return nil
}

func (e *Engine) evaluate(check Check, value any) (bool, error) {
	if check.Rule != RuleExistsIn {
		return predicates[check.Rule](value), nil
	}
	if !isInteger(value) {
		return false, nil
	}
	id, ok := types.AsInt(value)
	if !ok || id < 0 {
		return false, nil
	}
	if e.lookup == nil {
		return false, nil
	}
	return e.lookup.Exists(check.Table, id)
}
