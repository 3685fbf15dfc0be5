/*
Package observability provides metrics and tracing for the Turing engine.

Both are expressed as domain.LifecycleHooks so they compose with Merge and
plug into runtime.WithLifecycleHooks without the engine knowing about them.
*/
package observability
