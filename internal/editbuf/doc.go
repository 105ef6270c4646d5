// Package editbuf provides the byte-offset addressed text buffer backing
// the editor host. It is sized for interactive scratch buffers: a flat byte
// slice with offset-based insert/delete, revision tracking, and line ending
// normalization.
package editbuf
