package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mesh-intelligence/frontdesk/internal/entity"
	"github.com/mesh-intelligence/frontdesk/internal/hotel"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// writeEntities prints items as a table with an ID column followed by the
// declared columns under their localized labels. With showDeleted a DELETED
// column is added.
func writeEntities[T entity.Entity](w io.Writer, h *hotel.Hotel, ctl *hotel.Controller[T], items []T, showDeleted bool) error {
	columns := ctl.Columns()
	catalog := h.Catalog()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := []string{"ID"}
	for _, c := range columns {
		header = append(header, strings.ToUpper(catalog.Label(c.Name)))
	}
	if showDeleted {
		header = append(header, "DELETED")
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(underline(header), "\t"))

	for _, e := range items {
		row := ctl.Row(e)
		cells := []string{strconv.Itoa(e.EntityID())}
		for _, c := range columns {
			cells = append(cells, formatValue(c.Type, row[c.Name]))
		}
		if showDeleted {
			cells = append(cells, strconv.FormatBool(e.IsDeleted()))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func underline(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.Repeat("-", len([]rune(h)))
	}
	return out
}

// formatValue renders a column value. Prices keep two decimals.
func formatValue(t types.FieldType, v any) string {
	if t == types.FieldFloat {
		if f, ok := types.AsFloat(v); ok {
			return formatMoney(f)
		}
	}
	return fmt.Sprint(v)
}

func formatMoney(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// emit prints items as JSON or as a table depending on --json.
func emit[T entity.Entity](a *app, w io.Writer, ctl *hotel.Controller[T], items []T, showDeleted bool) error {
	if a.flags.jsonMode {
		if items == nil {
			items = []T{}
		}
		return writeJSON(w, items)
	}
	return writeEntities(w, a.hotel, ctl, items, showDeleted)
}

// emitOne prints a single entity.
func emitOne[T entity.Entity](a *app, w io.Writer, ctl *hotel.Controller[T], item T) error {
	if a.flags.jsonMode {
		return writeJSON(w, item)
	}
	return writeEntities(w, a.hotel, ctl, []T{item}, false)
}
