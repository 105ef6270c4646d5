// Package editor implements the host side of the command-chain sequencer:
// an editbuf-backed buffer with a cursor, repeat detection for dispatched
// commands, the numeric prefix argument, a named command registry, and
// slog-based diagnostics. Editor satisfies chain.Host.
package editor
