package main

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/meshstat/internal/report"
)

var frameCmd = &cobra.Command{
	Use:   "frame [scene.yaml]",
	Short: "Print the camera placement that frames a scene",
	Args:  cobra.ExactArgs(1),
	RunE:  runFrame,
}

func init() {
	rootCmd.AddCommand(frameCmd)
}

func runFrame(cmd *cobra.Command, args []string) error {
	res, d, err := analyzeFile(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	w, err := report.NewWriter(cfg.Report)
	if err != nil {
		return err
	}
	if err := w.WriteCamera(cmd.OutOrStdout(), d); err != nil {
		return err
	}
	return checkStrict(res)
}
