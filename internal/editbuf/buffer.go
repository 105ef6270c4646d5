package editbuf

import (
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("editbuf: offset out of range")
	ErrRangeInvalid     = errors.New("editbuf: invalid range")
)

// ByteOffset is a byte position in the buffer.
type ByteOffset = int64

// RevisionID identifies one buffer revision. Every mutation produces a new
// one.
type RevisionID = uuid.UUID

// LineEnding specifies the line ending style.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
)

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	if le == LineEndingCRLF {
		return "\r\n"
	}
	return "\n"
}

// Buffer is an offset-addressed text buffer. All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	data       []byte
	revisionID RevisionID
	lineEnding LineEnding
}

// New creates a new empty buffer.
func New() *Buffer {
	return &Buffer{revisionID: uuid.New()}
}

// NewFromString creates a buffer with initial content.
func NewFromString(s string) *Buffer {
	b := New()
	b.data = []byte(b.normalizeLineEndings(s))
	return b
}

// normalizeLineEndings converts line endings to the buffer's style.
func (b *Buffer) normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if b.lineEnding == LineEndingCRLF {
		s = strings.ReplaceAll(s, "\n", "\r\n")
	}
	return s
}

// Text returns the full buffer content as a string.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return string(b.data)
}

// TextRange returns text in the half-open byte range [start, end).
func (b *Buffer) TextRange(start, end ByteOffset) (string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if start < 0 || start > end || end > ByteOffset(len(b.data)) {
		return "", ErrRangeInvalid
	}
	return string(b.data[start:end]), nil
}

// Len returns the total byte length of the buffer.
func (b *Buffer) Len() ByteOffset {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ByteOffset(len(b.data))
}

// IsEmpty returns true if the buffer is empty.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// Insert inserts text at the given offset.
// Returns the end position of the inserted text.
func (b *Buffer) Insert(offset ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offset < 0 || offset > ByteOffset(len(b.data)) {
		return 0, ErrOffsetOutOfRange
	}

	text = b.normalizeLineEndings(text)
	b.data = slices.Insert(b.data, int(offset), []byte(text)...)
	b.revisionID = uuid.New()

	return offset + ByteOffset(len(text)), nil
}

// Delete removes text in the half-open range [start, end).
func (b *Buffer) Delete(start, end ByteOffset) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(len(b.data)) {
		return ErrRangeInvalid
	}

	b.data = slices.Delete(b.data, int(start), int(end))
	b.revisionID = uuid.New()

	return nil
}

// Replace replaces text in the given range with new text.
// Returns the end position of the replacement text.
func (b *Buffer) Replace(start, end ByteOffset, text string) (ByteOffset, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > end || end > ByteOffset(len(b.data)) {
		return 0, ErrRangeInvalid
	}

	text = b.normalizeLineEndings(text)
	b.data = slices.Replace(b.data, int(start), int(end), []byte(text)...)
	b.revisionID = uuid.New()

	return start + ByteOffset(len(text)), nil
}

// RevisionID returns the current revision ID.
func (b *Buffer) RevisionID() RevisionID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revisionID
}

// LineEnding returns the buffer's line ending style.
func (b *Buffer) LineEnding() LineEnding {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnding
}

// Lines splits the buffer content into display lines.
func (b *Buffer) Lines() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return strings.Split(string(b.data), b.lineEnding.Sequence())
}
