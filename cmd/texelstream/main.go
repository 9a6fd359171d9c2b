// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: cmd/texelstream/main.go
// Summary: Command-line player for texelstream command streams.
// Usage: `texelstream [flags] [file]` decodes a stream from a file, stdin or the built-in demo and prints the final screen.

package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/framegrace/texelstream/config"
	"github.com/framegrace/texelstream/dispatch"
	"github.com/framegrace/texelstream/internal/viewer"
	"github.com/framegrace/texelstream/render"
	"github.com/framegrace/texelstream/screen"
)

const (
	formatAuto = "auto"
	formatView = "view"
)

// usageError marks failures caused by the command line itself.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...interface{}) error {
	return usageError{err: fmt.Errorf(format, args...)}
}

type options struct {
	input      string
	hex        bool
	demo       bool
	format     string
	charset    string
	configPath string
	verbose    bool
	noDump     bool
	saveConfig bool
	set        map[string]bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	err := execute(args, stdin, stdout, stderr)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	var uerr usageError
	if errors.As(err, &uerr) {
		return 2
	}
	return 1
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("texelstream", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: texelstream [flags] [file|-]\n\n")
		fs.PrintDefaults()
	}

	var opts options
	fs.BoolVar(&opts.hex, "hex", false, "Treat the input as hex text (whitespace ignored)")
	fs.BoolVar(&opts.demo, "demo", false, "Play the built-in demo stream instead of reading input")
	fs.StringVar(&opts.format, "format", config.DefaultFormat, "Output format: text, ansi, frame, view or auto")
	fs.StringVar(&opts.charset, "charset", config.DefaultCharset, "Glyph charset for ansi, frame and view: ascii, cp437 or latin1")
	fs.StringVar(&opts.configPath, "config", "", "Config file (default: user config dir/texelstream/texelstream.json)")
	fs.BoolVar(&opts.verbose, "verbose", false, "Log every decoded command")
	fs.BoolVar(&opts.noDump, "no-dump", false, "Validate the stream without printing the screen")
	fs.BoolVar(&opts.saveConfig, "save-config", false, "Write the effective format, charset and verbose settings to the config file")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return opts, err
		}
		return opts, usageError{err: err}
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	switch rest := fs.Args(); {
	case len(rest) > 1:
		return opts, usagef("expected at most one input file, got %d", len(rest))
	case len(rest) == 1 && opts.demo:
		return opts, usagef("-demo does not take an input file")
	case len(rest) == 1:
		opts.input = rest[0]
	}
	return opts, nil
}

func execute(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.verbose {
		log.SetOutput(stderr)
	} else {
		log.SetOutput(io.Discard)
	}
	logger := log.New(stderr, "[texelstream] ", log.LstdFlags)

	if err := config.Use(opts.configPath); err != nil {
		if opts.configPath != "" {
			return fmt.Errorf("load config: %w", err)
		}
		logger.Printf("Config: using defaults: %v", err)
	}
	settings := resolveSettings(config.System().Settings(), opts)

	charset, err := render.LookupCharset(settings.Charset)
	if err != nil {
		return usageError{err: err}
	}
	format, err := resolveFormat(settings.Format, stdout)
	if err != nil {
		return err
	}
	if opts.saveConfig {
		if err := saveSettings(settings, logger); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}

	d := dispatch.New(dispatch.WithLogger(logger), dispatch.WithTrace(settings.Verbose))
	s, err := play(d, opts, stdin)
	if err != nil {
		return err
	}
	if settings.Verbose {
		stats := d.Stats()
		logger.Printf("Stream: %d applied, %d skipped, %d screen replacements", stats.Applied, stats.Skipped, stats.Replaced)
	}

	if s == nil {
		if settings.Verbose {
			logger.Printf("Stream: no screen was set up, nothing to display")
		}
		return nil
	}
	if opts.noDump {
		return nil
	}

	if format == formatView {
		return viewer.Run(s, charset)
	}
	sink, err := render.NewSink(format, stdout, charset)
	if err != nil {
		return usageError{err: err}
	}
	return sink.Render(s)
}

// resolveSettings layers explicitly set flags over the config file.
func resolveSettings(settings config.Settings, opts options) config.Settings {
	if opts.set["format"] {
		settings.Format = opts.format
	}
	if opts.set["charset"] {
		settings.Charset = opts.charset
	}
	if opts.set["verbose"] {
		settings.Verbose = opts.verbose
	}
	return settings
}

// saveSettings persists settings to the active config file, keeping any
// other keys the file already holds.
func saveSettings(settings config.Settings, logger *log.Logger) error {
	cfg := config.Clone(config.System())
	cfg.ApplySettings(settings)
	config.SetSystem(cfg)
	if err := config.SaveSystem(); err != nil {
		return err
	}
	if path, err := config.Path(); err == nil {
		logger.Printf("Config: saved settings to %s", path)
	}
	return nil
}

// resolveFormat validates name and turns "auto" into ansi on a terminal and
// text everywhere else.
func resolveFormat(name string, stdout io.Writer) (string, error) {
	name = strings.ToLower(name)
	switch name {
	case render.FormatText, render.FormatANSI, render.FormatFrame, formatView:
		return name, nil
	case formatAuto:
		if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			return render.FormatANSI, nil
		}
		return render.FormatText, nil
	default:
		return "", usagef("unknown format %q", name)
	}
}

// play feeds the selected input through d. Raw streams are consumed only up
// to the terminate command.
func play(d *dispatch.Dispatcher, opts options, stdin io.Reader) (*screen.Screen, error) {
	if opts.demo {
		data, err := demoStream()
		if err != nil {
			return nil, err
		}
		return d.Run(data)
	}

	r := stdin
	if opts.input != "" && opts.input != "-" {
		f, err := os.Open(opts.input)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	if !opts.hex {
		return d.RunReader(bufio.NewReader(r))
	}
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	data, err := decodeHex(text)
	if err != nil {
		return nil, err
	}
	return d.Run(data)
}

// decodeHex accepts hex digits separated by arbitrary whitespace.
func decodeHex(text []byte) ([]byte, error) {
	var compact bytes.Buffer
	for _, field := range strings.Fields(string(text)) {
		compact.WriteString(field)
	}
	data, err := hex.DecodeString(compact.String())
	if err != nil {
		return nil, fmt.Errorf("decode hex input: %w", err)
	}
	return data, nil
}
