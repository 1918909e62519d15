// Package options contains the program options.
package options

import "strings"

// Frontend names.
const (
	FrontendWindow   = "window"
	FrontendTerminal = "terminal"
	FrontendHeadless = "headless"
)

// Default values of the emulation options.
const (
	DefaultCycles   = 10
	DefaultScale    = 15
	DefaultFrontend = FrontendWindow

	DefaultForeground = "#FFFFFF"
	DefaultBackground = "#000000"
)

// Parameters contains file path options.
type Parameters struct {
	Input string `flag:"i" usage:"input ROM file"`
}

// Flags contains behavior options.
type Flags struct {
	Frontend string `flag:"f" usage:"frontend: window, terminal, headless" default:"window"`
	Cycles   int    `flag:"cycles" usage:"instructions executed per 60 Hz frame" default:"10"`
	Frames   int    `flag:"frames" usage:"stop after the given number of frames (default: unlimited)"`
	Seed     uint64 `flag:"seed" usage:"seed of the random number generator (default: time based)"`
	Debug    bool   `flag:"debug" usage:"enable debug logging"`
	Quiet    bool   `flag:"q" usage:"quiet mode"`
	Trace    bool   `flag:"trace" usage:"log every executed instruction, implies -debug"`
}

// OutputFlags contains presentation options.
type OutputFlags struct {
	Scale int  `flag:"scale" usage:"window pixel scale factor" default:"15"`
	Mute  bool `flag:"mute" usage:"disable the sound timer tone"`
	Dump  bool `flag:"dump" usage:"print the final display as text when the emulator stops"`

	Foreground string `flag:"fg" usage:"color of lit pixels as #RRGGBB" default:"#FFFFFF"`
	Background string `flag:"bg" usage:"color of unlit pixels as #RRGGBB" default:"#000000"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	OutputFlags
}

// New returns program options with default values.
func New() Program {
	return Program{
		Flags: Flags{
			Frontend: DefaultFrontend,
			Cycles:   DefaultCycles,
		},
		OutputFlags: OutputFlags{
			Scale:      DefaultScale,
			Foreground: DefaultForeground,
			Background: DefaultBackground,
		},
	}
}

// Emulator defines options to control the emulation loop.
type Emulator struct {
	Cycles int    // instructions per frame
	Frames int    // frame limit, 0 for unlimited
	Trace  bool   // log every executed instruction
	Seed   uint64 // random seed, 0 for time based
}

// NewEmulator returns the emulator options for the given program options.
func NewEmulator(opts Program) Emulator {
	cycles := opts.Cycles
	if cycles <= 0 {
		cycles = DefaultCycles
	}
	return Emulator{
		Cycles: cycles,
		Frames: opts.Frames,
		Trace:  opts.Trace,
		Seed:   opts.Seed,
	}
}

// NormalizeFrontend returns the lower case frontend name.
func NormalizeFrontend(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
