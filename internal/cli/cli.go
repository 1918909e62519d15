// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// Scale limits of the window frontend.
const (
	minScale = 1
	maxScale = 40
)

var validFrontends = []string{options.FrontendWindow, options.FrontendTerminal, options.FrontendHeadless}

// ParseFlags parses command line flags and returns program and emulator options
func ParseFlags() (options.Program, options.Emulator, error) {
	flags := newFlagSet(os.Args[0])
	opts := options.New()
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, options.Emulator{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Emulator{}, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, options.Emulator{}, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	return opts, options.NewEmulator(opts), nil
}

// newFlagSet returns a flag set that leaves printing the usage to UsageError.
func newFlagSet(name string) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.Usage = func() {}
	return flags
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Frontend = options.NormalizeFrontend(opts.Frontend)
	if !isValidFrontend(opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(validFrontends, ", "))
	}

	if opts.Cycles <= 0 {
		return fmt.Errorf("invalid cycles per frame %d: must be positive", opts.Cycles)
	}
	if opts.Frames < 0 {
		return fmt.Errorf("invalid frame limit %d: must not be negative", opts.Frames)
	}
	if opts.Scale < minScale || opts.Scale > maxScale {
		return fmt.Errorf("invalid scale %d: must be between %d and %d", opts.Scale, minScale, maxScale)
	}
	return nil
}

func isValidFrontend(name string) bool {
	for _, valid := range validFrontends {
		if name == valid {
			return true
		}
	}
	return false
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Frontend, "f", options.DefaultFrontend, "frontend to use (window/terminal/headless)")
	flags.IntVar(&opts.Cycles, "cycles", options.DefaultCycles, "instructions executed per 60 Hz frame")
	flags.IntVar(&opts.Frames, "frames", 0, "stop after the given number of frames, 0 runs until quit")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses a time based seed")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, implies -debug")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window pixel scale factor")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the sound timer tone")
	flags.BoolVar(&opts.Dump, "dump", false, "print the final display as text when the emulator stops")
	flags.StringVar(&opts.Foreground, "fg", options.DefaultForeground, "color of lit pixels as #RRGGBB")
	flags.StringVar(&opts.Background, "bg", options.DefaultBackground, "color of unlit pixels as #RRGGBB")
}
