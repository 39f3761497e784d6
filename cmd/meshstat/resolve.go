package main

import (
	"github.com/spf13/cobra"

	"github.com/Faultbox/meshstat/internal/scenefile"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [scene.yaml]",
	Short: "Print a scene with generators expanded and transforms as matrices",
	Long: "Load a scene document and write it back with every box generator expanded into " +
		"explicit buffers and every translation/rotation/scale folded into a matrix.",
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	root, err := scenefile.Load(args[0])
	if err != nil {
		return err
	}
	return scenefile.Encode(cmd.OutOrStdout(), root)
}
