// Command gbcore runs a ROM image through the core, either interactively
// in a terminal window or headless for a fixed number of frames.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/kallisti-dev/gbcore"
	"github.com/kallisti-dev/gbcore/render"
)

func main() {
	app := cli.NewApp()
	app.Name = "gbcore"
	app.Usage = "run a Game Boy ROM through the gbcore emulator core"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "rom", Usage: "path to a .gb ROM image"},
		cli.BoolFlag{Name: "headless", Usage: "run without presentation"},
		cli.IntFlag{Name: "frames", Usage: "number of frames to run in headless mode"},
		cli.BoolFlag{Name: "debug", Usage: "enable debug logging"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	romPath := c.String("rom")
	if romPath == "" {
		return cli.NewExitError("gbcore: --rom is required", 1)
	}

	emu, err := gbcore.NewWithFile(romPath)
	if err != nil {
		return err
	}

	if c.Bool("headless") {
		return runHeadless(emu, c.Int("frames"))
	}
	return runInteractive(emu)
}

func runHeadless(emu *gbcore.Emulator, frames int) error {
	if frames <= 0 {
		return cli.NewExitError("gbcore: --frames must be > 0 in --headless mode", 1)
	}
	for i := 0; i < frames; i++ {
		emu.StepFrame()
	}
	slog.Info("headless run complete", "frames", emu.FrameCount(), "instructions", emu.InstructionCount())
	return nil
}

func runInteractive(emu *gbcore.Emulator) error {
	term, err := render.NewTerminal(emu)
	if err != nil {
		return fmt.Errorf("gbcore: starting terminal renderer: %w", err)
	}
	return term.Run()
}
