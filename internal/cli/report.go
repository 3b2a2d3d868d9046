package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Hotel reports",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "balance",
			Short: "Total amount owed across live reservations",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				h, err := a.openHotel()
				if err != nil {
					return err
				}
				total, reservations, err := h.TotalBalance()
				if err != nil {
					return systemError{err}
				}
				out := cmd.OutOrStdout()
				if a.flags.jsonMode {
					if reservations == nil {
						reservations = []types.Reservation{}
					}
					return writeJSON(out, map[string]any{
						"total":        total,
						"reservations": reservations,
					})
				}
				if err := writeEntities(out, h, h.Reservations, reservations, false); err != nil {
					return err
				}
				fmt.Fprintf(out, "\nTotal: %s\n", formatMoney(total))
				return nil
			},
		},
		&cobra.Command{
			Use:   "reserved",
			Short: "Rooms occupied today",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				h, err := a.openHotel()
				if err != nil {
					return err
				}
				rooms, err := h.RoomsCurrentlyReserved()
				if err != nil {
					return systemError{err}
				}
				return emit(a, cmd.OutOrStdout(), h.Rooms, rooms, false)
			},
		},
		&cobra.Command{
			Use:   "free",
			Short: "Rooms not occupied today",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				h, err := a.openHotel()
				if err != nil {
					return err
				}
				rooms, err := h.RoomsCurrentlyFree()
				if err != nil {
					return systemError{err}
				}
				return emit(a, cmd.OutOrStdout(), h.Rooms, rooms, false)
			},
		},
	)
	return cmd
}
