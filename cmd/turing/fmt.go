package main

import (
	"github.com/spf13/cobra"
)

var fmtCmd = &cobra.Command{
	Use:   "fmt <machine>",
	Short: "Print a machine in canonical text form",
	Long: `Prints the machine in the canonical text format: trimmed header lines,
a comma separated alphabet and one rule per line. YAML and JSON machines are
converted. With --write, a text-format file is rewritten in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		write, _ := cmd.Flags().GetBool("write")
		return app.Format(cmd.Context(), args[0], write)
	},
}

func init() {
	rootCmd.AddCommand(fmtCmd)
	fmtCmd.Flags().BoolP("write", "w", false, "Rewrite the file instead of printing it")
}
