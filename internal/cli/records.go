package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/frontdesk/internal/entity"
	"github.com/mesh-intelligence/frontdesk/internal/hotel"
	"github.com/mesh-intelligence/frontdesk/internal/validation"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// recordSpec names one entity's command group and picks its controller.
type recordSpec[T entity.Entity] struct {
	name       string
	columns    []types.Column
	controller func(h *hotel.Hotel) *hotel.Controller[T]
}

// newRecordCmd creates the create/list/get/update/delete group for one
// entity.
func newRecordCmd[T entity.Entity](a *app, spec recordSpec[T], short string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   spec.name,
		Short: short,
	}
	cmd.AddCommand(
		newCreateCmd(a, spec),
		newListCmd(a, spec),
		newGetCmd(a, spec),
		newUpdateCmd(a, spec),
		newDeleteCmd(a, spec),
	)
	return cmd
}

func newCreateCmd[T entity.Entity](a *app, spec recordSpec[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "create [field=value...]",
		Short: "Create a " + spec.name,
		Long: fmt.Sprintf(`Create a %s from field=value arguments.

Fields: %s

With no arguments on a terminal, each field is prompted for and the prompts
repeat until the answers are valid.`, spec.name, columnNames(spec.columns)),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.openHotel()
			if err != nil {
				return err
			}
			ctl := spec.controller(h)

			data, err := recordInput(cmd, a, h, ctl, args, validation.ModeCreate)
			if err != nil {
				return err
			}
			created, err := ctl.Create(data)
			if err != nil {
				return err
			}
			return emitOne(a, cmd.OutOrStdout(), ctl, created)
		},
	}
}

func newListCmd[T entity.Entity](a *app, spec recordSpec[T]) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + spec.name + " records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.openHotel()
			if err != nil {
				return err
			}
			ctl := spec.controller(h)

			var items []T
			if all {
				items, err = ctl.FindAll()
			} else {
				items, err = ctl.Live()
			}
			if err != nil {
				return err
			}
			return emit(a, cmd.OutOrStdout(), ctl, items, all)
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include deleted records")
	return cmd
}

func newGetCmd[T entity.Entity](a *app, spec recordSpec[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one " + spec.name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctl, current, err := findRecord(a, spec, args[0])
			if err != nil {
				return err
			}
			return emitOne(a, cmd.OutOrStdout(), ctl, current)
		},
	}
}

func newUpdateCmd[T entity.Entity](a *app, spec recordSpec[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "update <id> [field=value...]",
		Short: "Change fields of a " + spec.name,
		Long: fmt.Sprintf(`Update a %s. Only the fields given change.

Fields: %s

With no field arguments on a terminal, each field is prompted for; an empty
answer keeps the current value.`, spec.name, columnNames(spec.columns)),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, ctl, current, err := findRecord(a, spec, args[0])
			if err != nil {
				return err
			}
			data, err := recordInput(cmd, a, h, ctl, args[1:], validation.ModeUpdate)
			if err != nil {
				return err
			}
			updated, err := ctl.Update(data, current)
			if err != nil {
				return err
			}
			return emitOne(a, cmd.OutOrStdout(), ctl, updated)
		},
	}
}

func newDeleteCmd[T entity.Entity](a *app, spec recordSpec[T]) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a " + spec.name,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ctl, current, err := findRecord(a, spec, args[0])
			if err != nil {
				return err
			}
			if _, err := ctl.Delete(current); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", spec.name, current.EntityID())
			return nil
		},
	}
}

// findRecord opens the hotel and resolves the live record named by arg.
func findRecord[T entity.Entity](a *app, spec recordSpec[T], arg string) (*hotel.Hotel, *hotel.Controller[T], T, error) {
	var zero T
	id, err := parseID(arg)
	if err != nil {
		return nil, nil, zero, err
	}
	h, err := a.openHotel()
	if err != nil {
		return nil, nil, zero, err
	}
	ctl := spec.controller(h)
	current, err := ctl.Find(id)
	if err != nil {
		return nil, nil, zero, err
	}
	return h, ctl, current, nil
}

// recordInput reads field values from args, or prompts for them when there
// are none and the input is a terminal.
func recordInput[T entity.Entity](cmd *cobra.Command, a *app, h *hotel.Hotel, ctl *hotel.Controller[T], args []string, mode validation.Mode) (map[string]any, error) {
	if len(args) == 0 && a.interactive(cmd) {
		return promptFields(newPrompter(cmd, h.Catalog()), ctl, mode)
	}
	data, err := parseAssignments(ctl.Columns(), args)
	if err != nil {
		return nil, usageError{err}
	}
	return data, nil
}

var (
	clientSpec = recordSpec[types.Client]{
		name:       "client",
		columns:    types.ClientColumns,
		controller: func(h *hotel.Hotel) *hotel.Controller[types.Client] { return h.Clients },
	}
	roomSpec = recordSpec[types.Room]{
		name:       "room",
		columns:    types.RoomColumns,
		controller: func(h *hotel.Hotel) *hotel.Controller[types.Room] { return h.Rooms },
	}
	reservationSpec = recordSpec[types.Reservation]{
		name:       "reservation",
		columns:    types.ReservationColumns,
		controller: func(h *hotel.Hotel) *hotel.Controller[types.Reservation] { return h.Reservations },
	}
)

func newClientCmd(a *app) *cobra.Command {
	cmd := newRecordCmd(a, clientSpec, "Manage clients")
	cmd.AddCommand(&cobra.Command{
		Use:   "reservations <id>",
		Short: "List the reservations of a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, _, client, err := findRecord(a, clientSpec, args[0])
			if err != nil {
				return err
			}
			items, err := h.Directory().ClientReservations(client)
			if err != nil {
				return err
			}
			return emit(a, cmd.OutOrStdout(), h.Reservations, items, false)
		},
	})
	return cmd
}

func newRoomCmd(a *app) *cobra.Command {
	cmd := newRecordCmd(a, roomSpec, "Manage rooms")
	cmd.AddCommand(&cobra.Command{
		Use:   "reservations <id>",
		Short: "List the reservations of a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, _, room, err := findRecord(a, roomSpec, args[0])
			if err != nil {
				return err
			}
			items, err := h.Directory().RoomReservations(room)
			if err != nil {
				return err
			}
			return emit(a, cmd.OutOrStdout(), h.Reservations, items, false)
		},
	})
	return cmd
}

func newReservationCmd(a *app) *cobra.Command {
	cmd := newRecordCmd(a, reservationSpec, "Manage reservations")
	cmd.AddCommand(&cobra.Command{
		Use:   "balance <id>",
		Short: "Show the amount owed for a reservation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, _, r, err := findRecord(a, reservationSpec, args[0])
			if err != nil {
				return err
			}
			amount, err := h.Balance(r)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"reservation_id": r.ID,
					"nights":         r.Nights(),
					"balance":        amount,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reservation %d: %d nights, balance %s\n", r.ID, r.Nights(), formatMoney(amount))
			return nil
		},
	})
	return cmd
}
