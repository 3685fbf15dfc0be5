package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <machine> <inputs-file>",
	Short: "Simulate every line of a file concurrently",
	Long: `Simulates each line of the inputs file ("-" reads stdin) and prints the
outcomes in input order followed by a summary. Exits 1 if any input failed
and 2 if any was rejected.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		workers, _ := cmd.Flags().GetInt("workers")
		maxSteps, _ := cmd.Flags().GetInt("max-steps")
		jsonMode, _ := cmd.Flags().GetBool("json")
		record, _ := cmd.Flags().GetBool("record")

		return app.Batch(cmd.Context(), cli.BatchOptions{
			Machine:    args[0],
			InputsFile: args[1],
			Workers:    workers,
			MaxSteps:   maxSteps,
			JSON:       jsonMode,
			Record:     record,
		})
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().Int("workers", 0, "Concurrent simulations (0 uses the config)")
	batchCmd.Flags().Int("max-steps", 0, "Stop a simulation after this many steps (0 uses the config)")
	batchCmd.Flags().Bool("json", false, "Print a JSON report")
	batchCmd.Flags().Bool("record", false, "Record every run in the configured store (file store if none)")
}
