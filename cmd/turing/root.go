package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/turing/internal/cli"
	"github.com/aretw0/turing/internal/config"
	"github.com/spf13/cobra"
)

// app is built by the root command before any subcommand runs.
var (
	app      *cli.App
	closeLog = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "turing",
	Short: "Turing is a deterministic single-tape Turing machine simulator",
	Long: `Turing loads a machine definition (start, accept and reject states, an input
alphabet and from(read,write,direction)to rules) and decides whether it
accepts the strings you give it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel, _ = cmd.Flags().GetString("log-level")
		}
		if cmd.Flags().Changed("machines") {
			cfg.MachinesDir, _ = cmd.Flags().GetString("machines")
		}

		debug, _ := cmd.Flags().GetBool("debug")
		logger, closer, err := cli.NewLogger(cfg, debug)
		if err != nil {
			return err
		}
		closeLog = closer

		app = cli.NewApp(cfg, logger)
		app.NoColor, _ = cmd.Flags().GetBool("no-color")
		if os.Getenv("NO_COLOR") != "" {
			app.NoColor = true
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if cerr := closeLog(); cerr != nil && err == nil {
		err = cerr
	}
	if err == nil {
		return
	}

	var exitErr *cli.ExitCodeError
	if !errors.As(err, &exitErr) || exitErr.Err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cli.ExitCode(err))
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./turing.yaml if present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("machines", "", "Directory searched for machines given by name")
	rootCmd.PersistentFlags().Bool("debug", false, "Log every simulation step to stderr")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

// debugFlag reads the persistent --debug flag.
func debugFlag(cmd *cobra.Command) bool {
	debug, _ := cmd.Flags().GetBool("debug")
	return debug
}
