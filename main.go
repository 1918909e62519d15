// Package main implements the main entry point for a CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/app"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, emuOptions, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts)
	app.PrintBanner(logger, opts, version, commit, date)

	if err := run(ctx, logger, opts, emuOptions); err != nil {
		switch {
		case errors.Is(err, emulator.ErrQuit):
		case errors.Is(err, context.Canceled):
			logger.Info("Emulation cancelled")
		default:
			logger.Error("Emulation failed", log.Err(err))
			os.Exit(1)
		}
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program, emuOptions options.Emulator) error {
	program, err := loader.New().Load(opts)
	if err != nil {
		return err
	}
	app.PrintInfo(logger, opts, program)

	palette, err := config.CreatePalette(opts.OutputFlags)
	if err != nil {
		return err
	}

	emu, err := emulator.New(logger, program, emuOptions)
	if err != nil {
		return err
	}

	audio, closeAudio := app.NewAudio(logger, opts)
	defer closeAudio()
	emu.SetAudio(audio)

	frontend, err := app.NewFrontend(logger, opts, palette)
	if err != nil {
		return err
	}
	return frontend.Run(ctx, emu)
}
