/*
Package ports defines the driven ports (interfaces) around the Turing engine.

These interfaces decouple the simulator from where machine definitions come
from and where finished runs are kept, so the CLI, HTTP and MCP surfaces can
share one engine with different storage backends.

# Key Interfaces

  - DefinitionLoader: resolves machine definitions by name (directory, memory).
  - RunStore: persists RunRecords (memory, file, redis, sqlite).
  - Simulator: the engine surface adapters drive.
*/
package ports
