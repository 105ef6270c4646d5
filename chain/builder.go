package chain

// DefaultMarker is the cursor marker token recognized inside Text elements
// unless Options.Marker overrides it.
const DefaultMarker = "_|_"

// Options configures Build.
type Options struct {
	// Marker is the cursor marker token for Text elements.
	// Empty means DefaultMarker.
	Marker string

	// PrefixFallback, when non-nil, is normalized to an Action whose
	// insert runs instead of the chain whenever the invocation carries a
	// numeric prefix argument other than 1. Its cleanup is discarded.
	PrefixFallback Element

	// Runtime supplies shared session control (termination, point
	// recovery). Nil means the package-level runtime.
	Runtime *Runtime

	// Warn receives build-time diagnostics before Build returns the
	// matching hard error. Nil means no diagnostics.
	Warn func(category, message string)
}

// Build compiles a chain specification into a Dispatcher. The returned
// dispatcher closes over the built action sequence and a fresh session;
// bind its Invoke method to a key. A malformed specification fails here
// with a *ConfigError and no dispatcher is returned.
func Build(spec []Element, opts Options) (*Dispatcher, error) {
	marker := opts.Marker
	if marker == "" {
		marker = DefaultMarker
	}
	rt := opts.Runtime
	if rt == nil {
		rt = defaultRuntime
	}
	warn := opts.Warn
	if warn == nil {
		warn = func(string, string) {}
	}
	fail := func(err error) (*Dispatcher, error) {
		warn("command-chain", err.Error())
		return nil, err
	}

	loopAt := -1
	for i, el := range spec {
		if _, ok := el.(loopMarker); !ok {
			continue
		}
		if loopAt >= 0 {
			return fail(&ConfigError{Index: i, Element: el, Err: ErrDuplicateLoop})
		}
		loopAt = i
	}

	// Leading sentinel, then every normalized element with the marker
	// removed. A finite chain also gets a trailing sentinel.
	actions := make([]Action, 1, len(spec)+2)
	for i, el := range spec {
		if i == loopAt {
			continue
		}
		a, err := normalize(el, marker)
		if err != nil {
			if ce, ok := err.(*ConfigError); ok && ce.Index < 0 {
				ce.Index = i
			}
			return fail(err)
		}
		actions = append(actions, a)
	}

	// An empty looped section degenerates to a finite chain.
	loopStart := -1
	if loopAt >= 0 && loopAt < len(spec)-1 {
		loopStart = loopAt + 1
	}
	if loopStart < 0 {
		actions = append(actions, Action{})
	}

	d := &Dispatcher{
		actions:   actions,
		loopStart: loopStart,
		rt:        rt,
	}

	if opts.PrefixFallback != nil {
		fa, err := normalize(opts.PrefixFallback, marker)
		if err != nil {
			return fail(err)
		}
		d.fallback = fa
		d.hasFallback = true
	}

	return d, nil
}
