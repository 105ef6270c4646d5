package chain

// session is the mutable per-dispatcher progress state across repeated
// invocations. pos always indexes the action whose cleanup runs before the
// next step's insert.
type session struct {
	pos        int
	last       Value
	started    bool
	terminated bool
}

// Dispatcher drives one built chain. It is created by Build and holds the
// immutable action sequence plus its own session state.
type Dispatcher struct {
	actions   []Action // leading sentinel; trailing sentinel iff finite
	loopStart int      // index the sequence cycles back to, -1 when finite
	rt        *Runtime

	fallback    Action
	hasFallback bool

	sess session
}

// Invoke performs exactly one step transition. Call it each time the bound
// key fires. Errors from user-supplied actions and from the host propagate
// untranslated; the session is cleared on the next restart.
func (d *Dispatcher) Invoke(h Host) error {
	d.rt.active = &d.sess

	if h.PrefixArg() != 1 && d.hasFallback {
		d.sess.terminated = true
		_, err := d.fallback.runInsert(h)
		return err
	}

	if d.restart(h) {
		d.sess.started = true
		d.sess.terminated = false
		d.sess.pos = 0
		d.sess.last = Value{}
		d.rt.recovery.Capture(h)
	}

	if err := d.actions[d.sess.pos].runCleanup(h, d.sess.last); err != nil {
		return err
	}
	d.rt.recovery.RestoreIfSet(h)

	d.sess.pos = d.next(d.sess.pos)
	v, err := d.actions[d.sess.pos].runInsert(h)
	d.sess.last = v
	return err
}

// restart reports whether this invocation begins a fresh sequence: broken
// repetition, explicit termination, an uninitialized session, or a finite
// chain with no steps left.
func (d *Dispatcher) restart(h Host) bool {
	s := &d.sess
	if !s.started || s.terminated || !h.WasRepeated() {
		return true
	}
	return d.loopStart < 0 && s.pos >= len(d.actions)-1
}

// next returns the chain index after pos. For a finite chain restart
// guarantees pos has a successor; a looping chain cycles back to loopStart.
func (d *Dispatcher) next(pos int) int {
	if pos+1 < len(d.actions) {
		return pos + 1
	}
	return d.loopStart
}
