package main

import (
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <machine>",
	Short: "Check a machine definition for problems",
	Long: `Parses the machine and reports missing halting states, shadowed rules,
invalid directions and states unreachable from the start state.
Errors fail the command; with --strict, warnings do too.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		return app.Validate(cmd.Context(), args[0], strict || app.Config.Strict)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Bool("strict", false, "Treat warnings as errors")
}
