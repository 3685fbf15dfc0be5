package main

import (
	"github.com/aretw0/turing/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <machine> [input...]",
	Short: "Simulate a machine on the given strings, or interactively",
	Long: `Loads a machine from a file path, or by name from the machines directory,
and simulates it.

With inputs, each one is simulated in order and the command exits 2 if any
is rejected. Without inputs, strings are read one per line from stdin until
"exit" or end of input. With --json, stdin and stdout carry NDJSON messages.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxSteps, _ := cmd.Flags().GetInt("max-steps")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		trace, _ := cmd.Flags().GetBool("trace")
		jsonMode, _ := cmd.Flags().GetBool("json")
		record, _ := cmd.Flags().GetBool("record")

		return app.Run(cmd.Context(), cli.RunOptions{
			Machine:  args[0],
			Inputs:   args[1:],
			MaxSteps: maxSteps,
			Timeout:  timeout,
			Trace:    trace,
			JSON:     jsonMode,
			Record:   record,
			Debug:    debugFlag(cmd),
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("max-steps", 0, "Stop a simulation after this many steps (0 uses the config)")
	runCmd.Flags().Duration("timeout", 0, "Stop a simulation after this long (0 uses the config)")
	runCmd.Flags().Bool("trace", false, "Print every step with the tape and the rule applied")
	runCmd.Flags().Bool("json", false, "Run in JSON mode (NDJSON input/output)")
	runCmd.Flags().Bool("record", false, "Record every run in the configured store (file store if none)")
}
