// meshstat reports mesh statistics and a suggested camera placement for
// scene documents.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/meshstat/internal/config"
	"github.com/Faultbox/meshstat/internal/logger"
)

var (
	flags *config.Flags
	cfg   *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "meshstat",
	Short: "Measure triangle meshes and frame them for viewing",
	Long: "meshstat aggregates vertex and triangle counts, bounds, surface area and volume over a " +
		"scene graph, and suggests a camera placement that frames the whole scene.",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { logger.Sync() },
}

func init() {
	flags = config.BindFlags(rootCmd.PersistentFlags())
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(flags)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger.Debug("meshstat starting", zap.String("command", cmd.CommandPath()))
	logger.Sugar.Debugf("Config: %+v", cfg)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logger.Sync()
		os.Exit(1)
	}
}
