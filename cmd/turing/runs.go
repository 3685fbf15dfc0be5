package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage recorded runs",
}

var runsListCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List recorded runs",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")
		return app.ListRuns(cmd.Context(), jsonMode)
	},
}

var runsInspectCmd = &cobra.Command{
	Use:   "inspect <id>",
	Short: "Print a recorded run as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.InspectRun(cmd.Context(), args[0])
	},
}

var runsRemoveCmd = &cobra.Command{
	Use:   "rm [id...]",
	Short: "Delete recorded runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		all, _ := cmd.Flags().GetBool("all")
		if !all && len(args) == 0 {
			return errors.New("give run IDs or --all")
		}
		return app.RemoveRuns(cmd.Context(), args, all)
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsListCmd, runsInspectCmd, runsRemoveCmd)

	runsListCmd.Flags().Bool("json", false, "Print the run IDs as JSON")
	runsRemoveCmd.Flags().Bool("all", false, "Delete every recorded run")
}
