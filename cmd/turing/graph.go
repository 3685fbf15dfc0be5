package main

import (
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph <machine>",
	Short: "Print the state diagram as Mermaid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Graph(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
