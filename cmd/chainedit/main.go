// Package main is the entry point for chainedit, a scratch-buffer terminal
// editor demonstrating key-bound command chains.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/kenoss/command-chain/chain"
	"github.com/kenoss/command-chain/internal/config"
	"github.com/kenoss/command-chain/internal/editbuf"
	"github.com/kenoss/command-chain/internal/editor"
	"github.com/kenoss/command-chain/internal/keymap"
	"github.com/kenoss/command-chain/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	chainsPath string
	scriptPath string
	logPath    string
	version    bool
}

func parseFlags() options {
	var opts options
	flag.StringVar(&opts.configPath, "config", "chainedit.toml", "settings file (TOML)")
	flag.StringVar(&opts.chainsPath, "chains", "", "chain definitions file (JSON), overrides settings")
	flag.StringVar(&opts.scriptPath, "script", "", "chain definition script (Lua)")
	flag.StringVar(&opts.logPath, "log", "", "diagnostics log file")
	flag.BoolVar(&opts.version, "version", false, "print version and exit")
	flag.Parse()
	return opts
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	if opts.version {
		fmt.Printf("chainedit %s (%s)\n", version, commit)
		return 0
	}

	logger, closeLog, err := newLogger(opts.logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer closeLog()

	settings, err := config.LoadSettings(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if opts.chainsPath != "" {
		settings.ChainsFile = opts.chainsPath
	}

	rt := chain.DefaultRuntime()
	if !settings.PointRecovery {
		rt.DisablePointRecovery()
	}

	ed := editor.New(editbuf.New(), logger)
	registerBuiltins(ed)

	base := chain.Options{
		Marker:  settings.Marker,
		Runtime: rt,
		Warn:    ed.Warn,
	}

	km, err := loadKeymap(ed, settings, base)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var eng *script.Engine
	if opts.scriptPath != "" {
		eng = script.NewEngine(ed, km, base)
		defer eng.Close()
		if err := eng.LoadFile(opts.scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	app, err := newApp(ed, km, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer app.shutdown()

	// Live reload: rebuild config-defined bindings when the chains file
	// changes. The handler only posts an event; the reload itself runs on
	// the event loop goroutine, where the Lua state and editor live.
	if _, statErr := os.Stat(settings.ChainsFile); statErr == nil {
		w, werr := config.WatchFile(settings.ChainsFile, 0, func(string) {
			app.postReload(func() {
				nkm, rerr := loadKeymap(ed, settings, base)
				if rerr != nil {
					ed.Warn("command-chain", rerr.Error())
					return
				}
				if eng != nil {
					if rerr := rebindScript(ed, nkm, base, eng, opts.scriptPath); rerr != nil {
						ed.Warn("command-chain", rerr.Error())
						return
					}
				}
				app.setKeymap(nkm)
			})
		})
		if werr != nil {
			logger.Warn("chains file watch failed", "error", werr)
		} else {
			defer w.Close()
		}
	}

	if err := app.loop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, nil)), func() { f.Close() }, nil
}

// loadKeymap builds a fresh keymap from the chains file. A missing file is
// fine: the editor starts with no chain bindings.
func loadKeymap(ed *editor.Editor, settings config.Settings, base chain.Options) (*keymap.Keymap, error) {
	km := keymap.New()

	data, err := os.ReadFile(settings.ChainsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return km, nil
		}
		return nil, fmt.Errorf("reading %s: %w", settings.ChainsFile, err)
	}

	defs, err := config.ParseChains(data, ed.Command)
	if err != nil {
		return nil, err
	}
	if err := config.Install(defs, km, base); err != nil {
		return nil, err
	}
	return km, nil
}

// rebindScript re-runs the Lua definitions against a rebuilt keymap.
func rebindScript(ed *editor.Editor, km *keymap.Keymap, base chain.Options, old *script.Engine, path string) error {
	old.Close()
	*old = *script.NewEngine(ed, km, base)
	return old.LoadFile(path)
}

// registerBuiltins installs the host commands chain definitions may
// reference by name.
func registerBuiltins(ed *editor.Editor) {
	ed.RegisterCommand("insert-date", func(h chain.Host) error {
		return h.InsertText(time.Now().Format("2006-01-02"))
	})
	ed.RegisterCommand("insert-time", func(h chain.Host) error {
		return h.InsertText(time.Now().Format("15:04"))
	})
	ed.RegisterCommand("abort-chain", func(chain.Host) error {
		chain.Terminate()
		return nil
	})
}
