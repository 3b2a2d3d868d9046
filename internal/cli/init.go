package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/frontdesk/internal/paths"
	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize frontdesk storage",
		Long:  "Create the configuration directory with a default config.yaml and an empty\ndatabase file. Existing files are kept.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := paths.ResolveConfigDir(a.flags.configDir)
			if err != nil {
				return systemError{fmt.Errorf("resolve config dir: %w", err)}
			}
			storeCfg, dataDir, err := a.storeConfig()
			if err != nil {
				return systemError{err}
			}

			created, err := writeConfigIfMissing(configDir, configFile{
				DataDir:  dataDir,
				Locale:   a.cfg.GetString(cfgKeyLocale),
				LogLevel: a.cfg.GetString(cfgKeyLogLevel),
			})
			if err != nil {
				return systemError{err}
			}
			if created {
				a.logger.Info("config written", "dir", configDir)
			}

			s, err := a.attachStore()
			if err != nil {
				return err
			}
			// Load and save back: creates the file when missing and keeps
			// an existing one as it is.
			if err := s.Update(func(*types.Database) error { return nil }); err != nil {
				return systemError{fmt.Errorf("initialize storage: %w", err)}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Frontdesk initialized successfully")
			fmt.Fprintln(out, "  config:", configDir)
			fmt.Fprintln(out, "  data:  ", storeCfg.DataFile)
			return nil
		},
	}
}
