// Package script lets users define command chains in Lua. A script calls
// chain.define{keys=..., elements={...}} to compile and bind a chain; Lua
// functions inside elements become host commands, with a small editor API
// (insert, delete_range, cursor, set_cursor, text, warn) plus
// chain.terminate and chain.disable_point_recovery for aborting sequences.
//
// The Lua state is confined to the interactive key loop's goroutine, the
// same execution model the sequencer itself assumes.
package script
