// Package runner executes the MKVToolNix binaries and models their output
// as classified, replayable line sequences.
//
// An [Executor] spawns a process and returns a [Streaming] result attached
// to the live output stream. Callers either iterate the output as it is
// produced, or call [Streaming.Wait] to block until completion and obtain
// an immutable [Materialized] snapshot. Both views share one [LineCache],
// so the OS stream is read exactly once no matter how many cursors exist.
package runner
