// BoardCut plans how to cut lengths of lumber from available stock boards.
//
// Build:
//
//	go build -o boardcut ./cmd/boardcut
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/piwi3910/BoardCut/internal/config"
	"github.com/piwi3910/BoardCut/internal/logging"
)

var (
	logger  zerolog.Logger
	cfg     *config.Config
	cfgFile string
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "boardcut",
		Short: "BoardCut - 1D board cutting optimizer",
		Long:  "BoardCut assigns desired cuts to stock boards with a best-fit strategy and reports waste, leftovers and shortfall.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ./config.yaml or ~/.boardcut/config.yaml)")

	rootCmd.AddCommand(
		newPlanCmd(),
		newConvertCmd(),
		newCompareCmd(),
		newEstimateCmd(),
		newServeCmd(),
		newInventoryCmd(),
		newTemplateCmd(),
		newBackupCmd(),
	)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called before every command)
func loadConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.Setup(cfg.Environment, cfg.LogLevel)
	return nil
}
