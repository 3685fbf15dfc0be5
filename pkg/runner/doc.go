/*
Package runner drives a machine against many inputs.

It is the bridge between the engine and the outside world: an interactive
session that prompts for input strings one at a time, and a batch mode
that simulates a list of inputs concurrently. Both validate inputs
against the machine's alphabet, optionally persist every run to a
ports.RunStore, and talk to the user through a pluggable IOHandler.

# Key Components

  - Runner: the orchestrator for sessions and batches.
  - IOHandler: decouples how inputs arrive and outcomes are shown.
  - TextHandler: interactive CLI usage.
  - JSONHandler: JSON-Lines for headless hosts.

# Usage

	r := runner.NewRunner(
		runner.WithEngine(runtime.NewEngine()),
		runner.WithDefinition("contains-one", def),
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
