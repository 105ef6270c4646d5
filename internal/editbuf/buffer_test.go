package editbuf

import (
	"errors"
	"testing"
)

func TestInsert(t *testing.T) {
	b := New()

	end, err := b.Insert(0, "hello")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if end != 5 {
		t.Errorf("end = %d, want 5", end)
	}

	end, err = b.Insert(5, " world")
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if end != 11 {
		t.Errorf("end = %d, want 11", end)
	}
	if b.Text() != "hello world" {
		t.Errorf("text = %q", b.Text())
	}
}

func TestInsertMiddle(t *testing.T) {
	b := NewFromString("held")
	if _, err := b.Insert(3, "lo wor"); err != nil {
		t.Fatal(err)
	}
	if b.Text() != "hello world" {
		t.Errorf("text = %q", b.Text())
	}
}

func TestInsertOutOfRange(t *testing.T) {
	b := NewFromString("ab")

	tests := []struct {
		name   string
		offset ByteOffset
	}{
		{"negative", -1},
		{"past end", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := b.Insert(tt.offset, "x"); !errors.Is(err, ErrOffsetOutOfRange) {
				t.Errorf("err = %v, want ErrOffsetOutOfRange", err)
			}
		})
	}
}

func TestDelete(t *testing.T) {
	b := NewFromString("hello world")
	if err := b.Delete(5, 11); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if b.Text() != "hello" {
		t.Errorf("text = %q", b.Text())
	}
}

func TestDeleteInvalidRange(t *testing.T) {
	b := NewFromString("abc")

	tests := []struct {
		name       string
		start, end ByteOffset
	}{
		{"negative start", -1, 2},
		{"inverted", 2, 1},
		{"past end", 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := b.Delete(tt.start, tt.end); !errors.Is(err, ErrRangeInvalid) {
				t.Errorf("err = %v, want ErrRangeInvalid", err)
			}
		})
	}
}

func TestReplace(t *testing.T) {
	b := NewFromString("hello world")
	end, err := b.Replace(6, 11, "there")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if end != 11 {
		t.Errorf("end = %d, want 11", end)
	}
	if b.Text() != "hello there" {
		t.Errorf("text = %q", b.Text())
	}
}

func TestTextRange(t *testing.T) {
	b := NewFromString("hello world")
	s, err := b.TextRange(6, 11)
	if err != nil {
		t.Fatal(err)
	}
	if s != "world" {
		t.Errorf("range = %q", s)
	}

	if _, err := b.TextRange(4, 2); !errors.Is(err, ErrRangeInvalid) {
		t.Errorf("err = %v, want ErrRangeInvalid", err)
	}
}

func TestRevisionChangesOnMutation(t *testing.T) {
	b := NewFromString("x")
	r1 := b.RevisionID()

	if _, err := b.Insert(1, "y"); err != nil {
		t.Fatal(err)
	}
	r2 := b.RevisionID()
	if r1 == r2 {
		t.Error("insert must produce a new revision")
	}

	if err := b.Delete(0, 1); err != nil {
		t.Fatal(err)
	}
	if b.RevisionID() == r2 {
		t.Error("delete must produce a new revision")
	}
}

func TestNormalizeLineEndings(t *testing.T) {
	b := NewFromString("a\r\nb\rc\n")
	if b.Text() != "a\nb\nc\n" {
		t.Errorf("text = %q", b.Text())
	}

	lines := b.Lines()
	if len(lines) != 4 {
		t.Fatalf("lines = %q", lines)
	}
}
