package cmd

import "github.com/spf13/cobra"

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve the plan for every configured scenario",
	RunE:  run,
}

func init() {
	rootCmd.AddCommand(solveCmd)
}
