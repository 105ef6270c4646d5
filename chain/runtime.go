package chain

// Recovery records the cursor position at the start of a sequence and
// restores it before every step, so each step applies from the same anchor
// regardless of where the previous insert left the cursor.
type Recovery struct {
	anchor   Position
	set      bool
	disabled bool
}

// Capture records the current cursor position as the anchor. It does
// nothing once recovery has been disabled.
func (r *Recovery) Capture(h Host) {
	if r.disabled {
		return
	}
	r.anchor = h.CursorPosition()
	r.set = true
}

// RestoreIfSet moves the cursor back to the anchor, if one is recorded.
func (r *Recovery) RestoreIfSet(h Host) {
	if r.set {
		h.SetCursorPosition(r.anchor)
	}
}

// Disable clears the anchor and prevents future captures. Chains that want
// full manual control of cursor placement call this once.
func (r *Recovery) Disable() {
	r.disabled = true
	r.set = false
}

// Runtime is the shared control state for a set of dispatchers: the active
// session and the cursor recovery service. All dispatchers built against
// one Runtime share one anchor, which assumes a single foreground sequence
// at a time. The zero value is ready to use.
type Runtime struct {
	recovery Recovery
	active   *session
}

// NewRuntime returns a fresh Runtime, independent of the package-level one.
// Useful for tests and for embedding multiple isolated hosts.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// Terminate flags the active session so that the next invocation of any of
// this runtime's dispatchers starts a fresh sequence. Intended to be called
// from inside a custom insert or cleanup to abort a chain early.
func (r *Runtime) Terminate() {
	if r.active != nil {
		r.active.terminated = true
	}
}

// DisablePointRecovery permanently turns off anchor-based cursor recovery
// for this runtime.
func (r *Runtime) DisablePointRecovery() {
	r.recovery.Disable()
}

var defaultRuntime = NewRuntime()

// DefaultRuntime returns the package-level runtime used by Build when
// Options.Runtime is nil.
func DefaultRuntime() *Runtime {
	return defaultRuntime
}

// Terminate aborts the active sequence on the package-level runtime.
func Terminate() {
	defaultRuntime.Terminate()
}

// DisablePointRecovery disables cursor recovery on the package-level
// runtime.
func DisablePointRecovery() {
	defaultRuntime.DisablePointRecovery()
}
