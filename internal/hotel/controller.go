package hotel

import (
	"errors"

	"github.com/mesh-intelligence/frontdesk/internal/entity"
	"github.com/mesh-intelligence/frontdesk/internal/metrics"
	"github.com/mesh-intelligence/frontdesk/internal/validation"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// guards are the domain checks run after validation and before the write.
type guards[T entity.Entity] struct {
	beforeCreate func(data map[string]any) error
	beforeUpdate func(current T, data map[string]any) error
}

// Controller validates input and applies domain rules for one entity type.
type Controller[T entity.Entity] struct {
	hotel  *Hotel
	repo   *entity.Repository[T]
	rules  *validation.RuleSet
	guards guards[T]
}

func newController[T entity.Entity](h *Hotel, repo *entity.Repository[T], rules *validation.RuleSet, g guards[T]) *Controller[T] {
	return &Controller[T]{hotel: h, repo: repo, rules: rules, guards: g}
}

// Table returns the entity's table name.
func (c *Controller[T]) Table() string { return c.repo.Table() }

// Columns returns the entity's declared columns in order.
func (c *Controller[T]) Columns() []types.Column { return c.repo.Schema().Columns }

// Row returns the declared column values of e.
func (c *Controller[T]) Row(e T) types.Row { return c.repo.Schema().Encode(e) }

// Validate returns the failure messages for data in mode without writing.
func (c *Controller[T]) Validate(data map[string]any, mode validation.Mode) ([]string, error) {
	return c.hotel.engine.Validate(c.rules, data, mode)
}

// Create validates data in create mode, runs the domain guards, and saves a
// new entity. Nothing is written when any step fails.
func (c *Controller[T]) Create(data map[string]any) (T, error) {
	var zero T
	if err := c.hotel.engine.Check(c.rules, data, validation.ModeCreate); err != nil {
		return zero, c.reject("create", err)
	}
	if c.guards.beforeCreate != nil {
		if err := c.guards.beforeCreate(data); err != nil {
			return zero, c.reject("create", err)
		}
	}
	e, err := c.repo.Save(data)
	if err != nil {
		return zero, c.reject("create", err)
	}
	c.changed(metrics.ChangeCreate, e.EntityID())
	return e, nil
}

// FindAll returns every entity, soft-deleted ones included.
func (c *Controller[T]) FindAll() ([]T, error) {
	return c.repo.FindAll()
}

// Live returns the entities that are not soft-deleted.
func (c *Controller[T]) Live() ([]T, error) {
	return c.repo.Live()
}

// Find returns the live entity with id.
func (c *Controller[T]) Find(id int) (T, error) {
	e, err := c.repo.Find(id)
	if err != nil && errors.Is(err, types.ErrNotFound) {
		c.hotel.metrics.Rejected(metrics.ReasonNotFound)
	}
	return e, err
}

// Update validates data in update mode, runs the domain guards, and merges
// data onto current. Fields absent from data keep their value.
func (c *Controller[T]) Update(data map[string]any, current T) (T, error) {
	var zero T
	if err := c.hotel.engine.Check(c.rules, data, validation.ModeUpdate); err != nil {
		return zero, c.reject("update", err)
	}
	if c.guards.beforeUpdate != nil {
		if err := c.guards.beforeUpdate(current, data); err != nil {
			return zero, c.reject("update", err)
		}
	}
	e, err := c.repo.Update(current, data)
	if err != nil {
		return zero, c.reject("update", err)
	}
	c.changed(metrics.ChangeUpdate, e.EntityID())
	return e, nil
}

// Delete soft-deletes e. It reports false when e was already deleted.
func (c *Controller[T]) Delete(e T) (bool, error) {
	if _, err := c.repo.Find(e.EntityID()); err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := c.repo.Delete(e); err != nil {
		return false, err
	}
	c.changed(metrics.ChangeDelete, e.EntityID())
	return true, nil
}

func (c *Controller[T]) changed(change string, id int) {
	c.hotel.metrics.RecordChanged(c.Table(), change)
	c.hotel.logger.Info("record "+change+"d", "table", c.Table(), "id", id)
}

// reject logs a refused operation and counts the domain reasons.
func (c *Controller[T]) reject(op string, err error) error {
	switch {
	case errors.Is(err, types.ErrRoomReserved):
		c.hotel.metrics.Rejected(metrics.ReasonRoomReserved)
	case errors.Is(err, types.ErrDuplicate):
		c.hotel.metrics.Rejected(metrics.ReasonDuplicate)
	case errors.Is(err, types.ErrNotFound):
		c.hotel.metrics.Rejected(metrics.ReasonNotFound)
	case !errors.Is(err, types.ErrValidation):
		c.hotel.logger.Error(op+" failed", "table", c.Table(), "error", err)
		return err
	}
	c.hotel.logger.Warn(op+" rejected", "table", c.Table(), "error", err)
	return err
}
