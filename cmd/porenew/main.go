// Package main implements porenew, a bulk renewal-metadata updater for
// Alma PO lines.
package main

import (
	"fmt"
	"os"

	"porenew/internal/alma"
	"porenew/internal/config"
	"porenew/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	apiDomain  string
	apiKey     string
	configPath string
	workspace  string

	// Logger
	logger *zap.Logger

	// Resolved configuration (file + env + flags)
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "porenew",
	Short: "Bulk-update renewal metadata on Alma PO lines",
	Long: `porenew bulk-updates the renewal date and renewal reminder period on
Purchase Order Line records in the Ex Libris Alma platform.

Targets are given as explicit PO line IDs, as an Alma set (by name or ID),
or both. Each record is fetched in full, the two renewal fields are
rewritten, and the record is submitted back. Records are processed one at
a time; a failure on one record does not stop the rest.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zapCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		ws := workspace
		if ws == "" {
			ws, _ = os.Getwd()
		}

		path := configPath
		if path == "" {
			path = config.DefaultPath(ws)
		}
		cfg, err = config.Load(path)
		if err != nil {
			return err
		}

		// Flags win over file and environment values.
		if apiDomain != "" {
			cfg.Alma.Domain = apiDomain
		}
		if apiKey != "" {
			cfg.Alma.APIKey = apiKey
		}

		if err := logging.Initialize(ws, verbose || cfg.Logging.DebugMode); err != nil {
			return err
		}
		logging.Boot("domain=%s config=%s", cfg.Alma.Domain, path)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
}

// newClient builds an Alma client from the resolved configuration.
// Validation happens here so read-only helper commands and the bulk
// update path reject a missing key the same way.
func newClient() (*alma.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	clientCfg := alma.DefaultConfig(cfg.Alma.Domain, cfg.Alma.APIKey)
	clientCfg.Timeout = cfg.RequestTimeout()
	return alma.NewClient(clientCfg), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiDomain, "api-domain", "", "Alma API domain (default: "+config.DefaultDomain+")")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Alma API key (or set ALMA_API_KEY env)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: <workspace>/.porenew/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "Workspace directory for config and logs (default: current)")

	setsCmd.AddCommand(setsListCmd)
	setsCmd.AddCommand(setsMembersCmd)
	polineCmd.AddCommand(polineGetCmd)

	rootCmd.AddCommand(renewCmd)
	rootCmd.AddCommand(setsCmd)
	rootCmd.AddCommand(polineCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
