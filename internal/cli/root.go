package cli

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/wmww/wifi-sync/internal/logging"
	"github.com/wmww/wifi-sync/internal/sync"
	"github.com/wmww/wifi-sync/pkg/config"
	"github.com/wmww/wifi-sync/pkg/history"
	"github.com/wmww/wifi-sync/pkg/nmcli"
	"github.com/wmww/wifi-sync/pkg/store"
)

// BuildInfo contains build-time information
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

var buildInfo BuildInfo

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wifi-sync",
	Short: "Sync saved Wi-Fi networks between NetworkManager and a portable file",
	Long: `wifi-sync - A tool for carrying saved Wi-Fi networks across machines.

This tool reads the Wi-Fi profiles NetworkManager knows about (via nmcli)
and reconciles them with a portable JSON or YAML file, so a freshly
installed machine can pick up every network you already trust.`,
	Version: buildInfo.Version,
	RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("a command is required: import, save, or show")
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(info BuildInfo) error {
	buildInfo = info
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", info.Version, info.Commit, info.Date)
	return rootCmd.Execute()
}

// setupRun wires configuration, logging, and the sync engine for a command.
func setupRun(cmd *cobra.Command) (*config.Config, sync.Orchestrator, error) {
	fmt.Println("📄 Loading configuration...")
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	logSetFlags(cmd, log)

	// --git-history layers on top of WIFI_SYNC_GIT_HISTORY. Only the save
	// command registers the flag; everywhere else the lookup is a no-op.
	if gitHistory, _ := cmd.Flags().GetBool("git-history"); gitHistory {
		cfg.GitHistory = true
	}

	orchestrator, err := newOrchestrator(cfg, cfg.GitHistory, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize sync engine: %w", err)
	}

	return cfg, orchestrator, nil
}

// newOrchestrator builds the production sync engine from configuration.
// Tests replace this variable to run commands against a mock orchestrator.
var newOrchestrator = func(cfg *config.Config, gitHistory bool, log logr.Logger) (sync.Orchestrator, error) {
	system, err := nmcli.NewClient(cfg.NmcliPath, cfg.NmcliTimeout, log)
	if err != nil {
		return nil, err
	}

	format := store.DetectFormat(cfg.StorePath, store.Format(cfg.StoreFormat))
	fileStore := store.NewFileStore(format)

	var tracker history.Tracker
	if gitHistory {
		tracker = history.NewGitTracker("", "")
	}

	return sync.NewEngine(system, fileStore, tracker, log), nil
}

// loadRunConfig loads configuration from .env files and the environment,
// then applies command-line overrides, which take precedence over both.
func loadRunConfig(cmd *cobra.Command) (*config.Config, error) {
	loader := config.NewDotEnvLoader()
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	if file, _ := cmd.Flags().GetString("file"); file != "" {
		expanded, err := homedir.Expand(file)
		if err != nil {
			return nil, fmt.Errorf("invalid store file path '%s': %w", file, err)
		}
		cfg.StorePath = expanded
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.LogFormat = format
	}

	return cfg, nil
}

// logSetFlags records every explicitly set flag at debug verbosity.
func logSetFlags(cmd *cobra.Command, log logr.Logger) {
	cmd.Flags().Visit(func(flag *pflag.Flag) {
		log.V(1).Info("flag set", "name", flag.Name, "value", flag.Value.String())
	})
}

func init() {
	rootCmd.PersistentFlags().StringP("file", "f", "", "Store file path (overrides WIFI_SYNC_FILE and the default location)")
	rootCmd.PersistentFlags().StringP("log-level", "l", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "", "Log format (text, json)")
}
