/*
Package domain contains the core domain models of the Turing machine simulator.

It defines the fundamental entities of a deterministic single-tape machine:
symbols, transition rules, the immutable machine definition and the result of
a simulation. This package is kept pure and free of external dependencies like
I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Symbol: A single tape character. Blank marks cells never written.
  - Rule: Maps (state, symbol under head) to (symbol to write, move, next state).
  - Definition: Start/accept/reject labels, input alphabet and ordered rules.
  - Result: The verdict of a simulation plus the final machine configuration.
  - RunRecord: A persisted summary of one simulation.
*/
package domain
