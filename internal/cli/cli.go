// Package cli has the flags and plumbing shared by the fb* commands.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BeatGlow/fbtools/framebuffer"
	"github.com/BeatGlow/fbtools/internal/backlight"
)

// DebugEnv enables debug logging when set to any non-empty value.
const DebugEnv = "FBTOOLS_DEBUG"

// Options are the flags common to all commands.
type Options struct {
	Verbose   bool
	Backlight string
}

// Register adds the common flags to fs.
func (o *Options) Register(fs *flag.FlagSet) {
	fs.BoolVar(&o.Verbose, "v", false, "Log device discovery to stderr")
	fs.StringVar(&o.Backlight, "backlight", "", "Backlight GPIO pin to switch on (e.g. GPIO19)")
}

// Debug reports whether debug logging is requested.
func (o *Options) Debug() bool {
	return o.Verbose || os.Getenv(DebugEnv) != ""
}

// SetupLogging sends debug logs to w if requested, and keeps logging silent
// otherwise.
func (o *Options) SetupLogging(w io.Writer) {
	if !o.Debug() {
		framebuffer.SetLogger(nil)
		return
	}
	framebuffer.SetLogger(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

// Open opens the framebuffer device and switches on the backlight, if one
// is configured.
func (o *Options) Open(name string) (*framebuffer.Device, error) {
	dev, err := framebuffer.Open(name)
	if err != nil {
		return nil, err
	}
	if o.Backlight == "" {
		return dev, nil
	}

	bl, err := backlight.Open(o.Backlight)
	if err == nil {
		err = bl.On()
	}
	if err != nil {
		_ = dev.Close()
		return nil, err
	}
	framebuffer.Logger().Debug("cli: backlight on", slog.String("pin", o.Backlight))
	return dev, nil
}

// Device returns the positional argument at index i of fs, or the default
// framebuffer device if there are not enough arguments.
func Device(fs *flag.FlagSet, i int) string {
	if fs.NArg() > i {
		return fs.Arg(i)
	}
	return framebuffer.DefaultDevice
}

// Usage sets a usage line for fs, followed by the flag defaults.
func Usage(fs *flag.FlagSet, args string) {
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] %s\n", fs.Name(), args)
		fs.PrintDefaults()
	}
}

// Fatal prints err to stderr and exits with status 1.
func Fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}
