package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mesh-intelligence/frontdesk/internal/entity"
	"github.com/mesh-intelligence/frontdesk/internal/hotel"
	"github.com/mesh-intelligence/frontdesk/internal/validation"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

var errUnknownField = errors.New("unknown field")

// stdinIsTerminal reports whether the command reads from an interactive
// terminal.
func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// parseID parses a positional record ID argument.
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q", types.ErrInvalidID, arg)
	}
	return id, nil
}

// parseAssignments turns field=value arguments into data, casting each value
// to its column type. Values that do not parse stay as text for the
// validation rules to report.
func parseAssignments(columns []types.Column, args []string) (map[string]any, error) {
	data := make(map[string]any, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid argument %q (expected field=value)", arg)
		}
		col, found := findColumn(columns, strings.TrimSpace(key))
		if !found {
			return nil, fmt.Errorf("%w %q (valid: %s)", errUnknownField, key, columnNames(columns))
		}
		data[col.Name] = types.CastValue(col.Type, value)
	}
	return data, nil
}

func findColumn(columns []types.Column, name string) (types.Column, bool) {
	for _, c := range columns {
		if c.Name == name {
			return c, true
		}
	}
	return types.Column{}, false
}

func columnNames(columns []types.Column) string {
	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// prompter asks for field values one line at a time.
type prompter struct {
	in      *bufio.Scanner
	out     io.Writer
	catalog *validation.Catalog
}

func newPrompter(cmd *cobra.Command, catalog *validation.Catalog) *prompter {
	return &prompter{
		in:      bufio.NewScanner(cmd.InOrStdin()),
		out:     cmd.OutOrStdout(),
		catalog: catalog,
	}
}

func (p *prompter) ask(field string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", p.catalog.Label(field))
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", fmt.Errorf("reading input: %w", io.ErrUnexpectedEOF)
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// promptFields asks for every column of ctl until the answers pass
// validation for mode. In update mode an empty answer leaves the field out.
func promptFields[T entity.Entity](p *prompter, ctl *hotel.Controller[T], mode validation.Mode) (map[string]any, error) {
	for {
		data := make(map[string]any)
		for _, col := range ctl.Columns() {
			answer, err := p.ask(col.Name)
			if err != nil {
				return nil, err
			}
			if mode == validation.ModeUpdate && answer == "" {
				continue
			}
			data[col.Name] = types.CastValue(col.Type, answer)
		}

		messages, err := ctl.Validate(data, mode)
		if err != nil {
			return nil, err
		}
		if len(messages) == 0 {
			return data, nil
		}
		for _, m := range messages {
			fmt.Fprintln(p.out, m)
		}
	}
}
