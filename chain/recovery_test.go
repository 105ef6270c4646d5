package chain

import "testing"

func TestRecoveryCaptureRestore(t *testing.T) {
	var r Recovery
	h := newFakeHost()
	if err := h.InsertText("hello"); err != nil {
		t.Fatal(err)
	}

	h.SetCursorPosition(2)
	r.Capture(h)

	h.SetCursorPosition(5)
	r.RestoreIfSet(h)
	if h.cursor != 2 {
		t.Errorf("cursor = %d, want 2", h.cursor)
	}
}

func TestRecoveryRestoreWithoutCapture(t *testing.T) {
	var r Recovery
	h := newFakeHost()
	if err := h.InsertText("hello"); err != nil {
		t.Fatal(err)
	}
	h.SetCursorPosition(4)

	r.RestoreIfSet(h)
	if h.cursor != 4 {
		t.Errorf("cursor moved to %d without an anchor", h.cursor)
	}
}

func TestRecoveryDisable(t *testing.T) {
	var r Recovery
	h := newFakeHost()
	if err := h.InsertText("hello"); err != nil {
		t.Fatal(err)
	}

	h.SetCursorPosition(1)
	r.Capture(h)
	r.Disable()

	h.SetCursorPosition(3)
	r.RestoreIfSet(h)
	if h.cursor != 3 {
		t.Error("disable must clear the recorded anchor")
	}

	// Captures after Disable are ignored for good.
	r.Capture(h)
	h.SetCursorPosition(0)
	r.RestoreIfSet(h)
	if h.cursor != 0 {
		t.Error("capture after disable must not take")
	}
}

func TestDisablePointRecoveryFreeRunningChain(t *testing.T) {
	rt := NewRuntime()
	rt.DisablePointRecovery()

	d, err := Build([]Element{Loop, Text("ab")}, Options{Runtime: rt})
	if err != nil {
		t.Fatal(err)
	}

	h := newFakeHost()
	// Without point recovery each step re-inserts at wherever the previous
	// cleanup left the cursor, so a looped single step keeps replacing its
	// own text in place.
	want := []string{"ab", "ab", "ab"}
	for i, w := range want {
		if err := d.Invoke(h); err != nil {
			t.Fatalf("invocation %d: %v", i+1, err)
		}
		if h.Text() != w {
			t.Errorf("invocation %d: buffer = %q, want %q", i+1, h.Text(), w)
		}
		h.repeated = true
	}
}
