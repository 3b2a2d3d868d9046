// Package hotel is the API the presentation layer calls: one Controller per
// entity with create, find, update, and delete, the reservation overlap
// guard, and the report queries.
package hotel

import (
	"io"
	"log/slog"
	"time"

	"github.com/mesh-intelligence/frontdesk/internal/entity"
	"github.com/mesh-intelligence/frontdesk/internal/metrics"
	"github.com/mesh-intelligence/frontdesk/internal/validation"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Store is what the hotel needs from the record store: row access for the
// entity layer, the liveness lookup for exists_in rules, and whole-database
// loads for reports.
type Store interface {
	entity.RowStore
	validation.Lookup
	Load() (*types.Database, error)
}

// Hotel wires the controllers of the three entities over one store.
type Hotel struct {
	Clients      *Controller[types.Client]
	Rooms        *Controller[types.Room]
	Reservations *Controller[types.Reservation]

	store   Store
	dir     *entity.Directory
	engine  *validation.Engine
	logger  *slog.Logger
	metrics *metrics.Recorder
	catalog *validation.Catalog
	now     func() time.Time
}

// Option configures a Hotel.
type Option func(*Hotel)

// WithLogger sets the logger for record changes and rejections.
func WithLogger(l *slog.Logger) Option {
	return func(h *Hotel) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithMetrics sets the recorder for changes, rejections, and validation
// failures.
func WithMetrics(m *metrics.Recorder) Option {
	return func(h *Hotel) { h.metrics = m }
}

// WithClock replaces time.Now when deciding which rooms are reserved today.
func WithClock(now func() time.Time) Option {
	return func(h *Hotel) {
		if now != nil {
			h.now = now
		}
	}
}

// WithCatalog sets the language of validation messages.
func WithCatalog(c *validation.Catalog) Option {
	return func(h *Hotel) {
		if c != nil {
			h.catalog = c
		}
	}
}

// New creates a Hotel over s.
func New(s Store, opts ...Option) *Hotel {
	h := &Hotel{
		store:   s,
		dir:     entity.NewDirectory(s),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		catalog: validation.English,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.engine = validation.NewEngine(s, h.catalog, h.metrics)

	h.Clients = newController(h, h.dir.Clients, validation.ClientRules, guards[types.Client]{})
	h.Rooms = newController(h, h.dir.Rooms, validation.RoomRules, guards[types.Room]{})
	h.Reservations = newController(h, h.dir.Reservations, validation.ReservationRules, guards[types.Reservation]{
		beforeCreate: h.guardReservationCreate,
		beforeUpdate: h.guardReservationUpdate,
	})
	return h
}

// Directory exposes the relationship queries.
func (h *Hotel) Directory() *entity.Directory { return h.dir }

// Catalog returns the message catalog, whose labels the presentation layer
// uses for column headers and prompts.
func (h *Hotel) Catalog() *validation.Catalog { return h.catalog }

// Today returns the current calendar day from the hotel's clock.
func (h *Hotel) Today() types.Date { return types.DateOf(h.now()) }
