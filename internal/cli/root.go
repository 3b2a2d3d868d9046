// Package cli implements the frontdesk command-line interface, the
// presentation layer over the hotel package: record commands for clients,
// rooms, and reservations, the reports, and init/version.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/frontdesk/internal/hotel"
	"github.com/mesh-intelligence/frontdesk/internal/metrics"
	"github.com/mesh-intelligence/frontdesk/internal/paths"
	"github.com/mesh-intelligence/frontdesk/internal/store"
	"github.com/mesh-intelligence/frontdesk/internal/validation"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// app is the state of one CLI invocation.
type app struct {
	flags   rootFlags
	cfg     *viper.Viper
	logger  *slog.Logger
	metrics *metrics.Recorder
	store   *store.Store
	hotel   *hotel.Hotel

	// started is set once a command's hooks run; errors before that are
	// usage errors from cobra.
	started bool

	now         func() time.Time
	interactive func(cmd *cobra.Command) bool
}

// Option configures an invocation. Used by tests.
type Option func(*app)

// WithClock replaces time.Now for "today" in reservation checks and reports.
func WithClock(now func() time.Time) Option {
	return func(a *app) { a.now = now }
}

// WithInteractive forces prompting on or off regardless of the terminal.
func WithInteractive(on bool) Option {
	return func(a *app) {
		a.interactive = func(*cobra.Command) bool { return on }
	}
}

func newApp(opts ...Option) *app {
	a := &app{
		now:         time.Now,
		interactive: stdinIsTerminal,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// rootCmd creates the top-level "frontdesk" command with global flags and
// all subcommands registered.
func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "frontdesk",
		Short: "Hotel front desk records",
		Long:  "Frontdesk keeps a hotel's clients, rooms, and reservations in a single\nJSON file and refuses to book a room that is occupied today.",
		// Errors are printed by Run so that exit codes stay in one place.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/"+paths.DefaultConfigDirName+")")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/"+paths.DefaultDataDirName+")")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newClientCmd(a))
	root.AddCommand(newRoomCmd(a))
	root.AddCommand(newReservationCmd(a))
	root.AddCommand(newReportCmd(a))

	return root
}

// Run executes one invocation with args and returns the exit code.
func Run(args []string, in io.Reader, out, errOut io.Writer, opts ...Option) int {
	a := newApp(opts...)
	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	if err == nil {
		return exitSuccess
	}
	if !a.started {
		err = usageError{err}
	}
	printError(errOut, err)
	return exitCode(err)
}

// Execute runs the CLI against the process arguments and exits.
func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// setup loads config.yaml and the logger before any command runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.started = true
	if cmd.Name() == "version" {
		return nil
	}

	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return systemError{fmt.Errorf("resolve config dir: %w", err)}
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return systemError{err}
	}
	a.cfg = cfg

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.GetString(cfgKeyLogLevel))); err != nil {
		return systemError{fmt.Errorf("config %s: %w", cfgKeyLogLevel, err)}
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	a.metrics = metrics.New()
	a.logger.Debug("config loaded", "dir", configDir, "file", cfg.ConfigFileUsed())
	return nil
}

// storeConfig resolves the database file and locale from flags and config.
func (a *app) storeConfig() (types.Config, string, error) {
	dataDir, err := paths.ResolveDataDir(a.flags.dataDir, a.cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, "", fmt.Errorf("resolve data dir: %w", err)
	}
	cfg := types.Config{
		DataFile: paths.ResolveDataFile(dataDir, a.cfg.GetString(cfgKeyDataFile)),
		Locale:   a.cfg.GetString(cfgKeyLocale),
	}
	return cfg, dataDir, nil
}

// attachStore attaches the record store to the resolved data file.
func (a *app) attachStore() (*store.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	cfg, _, err := a.storeConfig()
	if err != nil {
		return nil, systemError{err}
	}
	s := store.New(store.WithLogger(a.logger), store.WithMetrics(a.metrics))
	if err := s.Attach(cfg); err != nil {
		return nil, systemError{fmt.Errorf("attach store: %w", err)}
	}
	a.store = s
	return s, nil
}

// openHotel attaches the store and wires the hotel over it.
func (a *app) openHotel() (*hotel.Hotel, error) {
	if a.hotel != nil {
		return a.hotel, nil
	}
	s, err := a.attachStore()
	if err != nil {
		return nil, err
	}
	a.hotel = hotel.New(s,
		hotel.WithLogger(a.logger),
		hotel.WithMetrics(a.metrics),
		hotel.WithClock(a.now),
		hotel.WithCatalog(validation.CatalogFor(a.cfg.GetString(cfgKeyLocale))),
	)
	return a.hotel, nil
}

// close detaches the store and writes the metrics textfile when configured.
func (a *app) close() error {
	if a.store != nil {
		a.store.Detach()
	}
	if a.cfg == nil {
		return nil
	}
	if path := a.cfg.GetString(cfgKeyMetricsFile); path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			return systemError{err}
		}
	}
	return nil
}

// usageError marks errors raised by argument parsing.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// systemError marks failures of the environment rather than the request.
type systemError struct{ err error }

func (e systemError) Error() string { return e.err.Error() }
func (e systemError) Unwrap() error { return e.err }

// userErrors are the error kinds caused by the request itself.
var userErrors = []error{
	types.ErrValidation,
	types.ErrNotFound,
	types.ErrRoomReserved,
	types.ErrDuplicate,
	types.ErrInvalidID,
	types.ErrInvalidData,
	errUnknownField,
}

// exitCode maps an error to the process exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var sys systemError
	if errors.As(err, &sys) || errors.Is(err, types.ErrCorrupt) {
		return exitSysError
	}
	var usage usageError
	if errors.As(err, &usage) {
		return exitUserError
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// printError writes err to w. Validation failures print one message per line.
func printError(w io.Writer, err error) {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		for _, m := range verr.Messages {
			fmt.Fprintln(w, m)
		}
		return
	}
	fmt.Fprintln(w, "frontdesk:", err)
}
