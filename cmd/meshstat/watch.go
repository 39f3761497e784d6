package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/meshstat/internal/analysis"
	"github.com/Faultbox/meshstat/internal/logger"
	"github.com/Faultbox/meshstat/internal/report"
	"github.com/Faultbox/meshstat/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [scene.yaml]",
	Short: "Re-print the model details every time a scene changes",
	Long: "Watch a scene document and re-run the analysis on every write. A change that " +
		"arrives while an analysis is running cancels it; only the newest contents are reported.",
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	a, err := analysis.FromConfig(cfg, logger.Named("analysis"))
	if err != nil {
		return err
	}
	rw, err := report.NewWriter(cfg.Report)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	w := watch.New(path, a, logger.Named("watch"))
	w.OnResult = func(res *analysis.Result) {
		var info os.FileInfo
		if fi, err := os.Stat(path); err == nil {
			info = fi
		}
		fmt.Fprintf(out, "--- generation %d\n", res.Generation)
		if err := rw.Write(out, report.New(res, info, cfg.Report.Precision)); err != nil {
			logger.Error("failed to write report", zap.Error(err))
		}
	}
	w.OnError = func(err error) {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	logger.Info("watching for changes, interrupt to stop", zap.String("scene", path))
	return w.Run(ctx)
}
