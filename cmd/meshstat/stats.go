package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/meshstat/internal/analysis"
	"github.com/Faultbox/meshstat/internal/logger"
	"github.com/Faultbox/meshstat/internal/report"
	"github.com/Faultbox/meshstat/internal/scenefile"
)

var statsCmd = &cobra.Command{
	Use:   "stats [scene.yaml]",
	Short: "Print the model details of a scene",
	Long: "Aggregate every mesh in the scene and print vertex and triangle counts, size, " +
		"surface area, volume, file information and the suggested camera placement.",
	Args: cobra.ExactArgs(1),
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	res, d, err := analyzeFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	w, err := report.NewWriter(cfg.Report)
	if err != nil {
		return err
	}
	if err := w.Write(cmd.OutOrStdout(), d); err != nil {
		return err
	}
	return checkStrict(res)
}

// checkStrict fails with every skipped node when strict mode is on, and
// only warns otherwise.
func checkStrict(res *analysis.Result) error {
	err := res.Diagnostics.Err()
	if err == nil {
		return nil
	}
	if !cfg.Analysis.Strict {
		logger.Warn("scene has skipped nodes", zap.Int("count", len(res.Diagnostics)), zap.Error(err))
		return nil
	}
	return fmt.Errorf("%d node(s) skipped: %w", len(res.Diagnostics), err)
}

// analyzeFile runs one analysis of the scene at path and builds its details.
func analyzeFile(ctx context.Context, path string) (*analysis.Result, report.Details, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, report.Details{}, err
	}
	root, err := scenefile.Load(path)
	if err != nil {
		return nil, report.Details{}, err
	}

	a, err := analysis.FromConfig(cfg, logger.Named("analysis"))
	if err != nil {
		return nil, report.Details{}, err
	}
	res, err := a.Analyze(ctx, path, root)
	if err != nil {
		return nil, report.Details{}, err
	}
	return res, report.New(res, info, cfg.Report.Precision), nil
}
