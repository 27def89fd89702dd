package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"github.com/valerio/go-squarebox/squarebox"
	"github.com/valerio/go-squarebox/squarebox/backend"
	"github.com/valerio/go-squarebox/squarebox/backend/headless"
	"github.com/valerio/go-squarebox/squarebox/backend/terminal"
	"github.com/valerio/go-squarebox/squarebox/config"
	"github.com/valerio/go-squarebox/squarebox/report"
	"github.com/valerio/go-squarebox/squarebox/table"
)

var runFlags = []cli.Flag{
	cli.Uint64Flag{
		Name:  "ticks",
		Usage: "Number of ticks to run (required for headless, 0 = until quit)",
	},
	cli.BoolFlag{
		Name:  "headless",
		Usage: "Run without the terminal monitor",
	},
	cli.BoolFlag{
		Name:  "verbose",
		Usage: "Debug logging to stderr in headless mode",
	},
	cli.StringFlag{
		Name:  "wav",
		Usage: "Render the audio output to a WAV file",
	},
	cli.BoolFlag{
		Name:  "play",
		Usage: "Play the audio output live",
	},
	cli.StringSliceFlag{
		Name:  "pot",
		Usage: "Set a knob as channel=level (0..7, 0..1023); repeatable",
	},
	cli.BoolFlag{
		Name:  "ungated-adc",
		Usage: "Restart the ADC every tick even while a conversion is running",
	},
	cli.IntFlag{
		Name:  "adc-noise",
		Usage: "Uniform noise added to every conversion, in LSB",
	},
	cli.BoolFlag{
		Name:  "realtime",
		Usage: "Pace the simulation at the real tick rate (implied by --play and the monitor)",
	},
	cli.StringFlag{
		Name:  "pacing",
		Usage: "Realtime pacing: adaptive or ticker",
		Value: config.PacingAdaptive,
	},
	cli.IntFlag{
		Name:  "fps",
		Usage: "Backend updates per simulated second",
		Value: 60,
	},
}

func main() {
	app := cli.NewApp()
	app.Name = "squarebox"
	app.Description = "A three voice square wave synthesizer on a simulated 8-bit microcontroller"
	app.Usage = "squarebox [run|table] [options]"
	app.Version = "1.0.0"
	app.Flags = runFlags
	app.Action = runSynth
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "Power up the synth",
			Flags:  runFlags,
			Action: runSynth,
		},
		{
			Name:  "table",
			Usage: "Print the period table",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "all",
					Usage: "List every entry, not only the exact notes",
				},
			},
			Action: printTable,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running synth", "error", err)
		os.Exit(1)
	}
}

func configFromFlags(c *cli.Context) (config.Config, error) {
	cfg := config.Default()
	cfg.Ticks = c.Uint64("ticks")
	cfg.Headless = c.Bool("headless")
	cfg.Verbose = c.Bool("verbose")
	cfg.WavPath = c.String("wav")
	cfg.Play = c.Bool("play")
	cfg.UngatedADC = c.Bool("ungated-adc")
	cfg.ADCNoise = c.Int("adc-noise")
	cfg.Pacing = c.String("pacing")
	cfg.FPS = c.Int("fps")
	// live audio and the monitor only make sense at the real rate
	cfg.Realtime = c.Bool("realtime") || cfg.Play || !cfg.Headless

	if err := cfg.ApplyPots(c.StringSlice("pot")); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// setupLogging switches headless verbose runs to debug level on w. It runs
// before the board comes up so the bring-up lines are kept.
func setupLogging(cfg config.Config, w io.Writer) {
	if !cfg.Headless || !cfg.Verbose {
		return
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	slog.SetDefault(slog.New(handler))
}

func runSynth(c *cli.Context) (err error) {
	cfg, err := configFromFlags(c)
	if err != nil {
		return err
	}

	setupLogging(cfg, os.Stderr)

	dev, err := squarebox.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var b backend.Backend
	if cfg.Headless {
		b = headless.New()
	} else {
		b = terminal.New()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dev.Run(ctx, b); err != nil {
		return err
	}

	snap := dev.Snapshot()
	return report.Summary(os.Stdout, &snap)
}

func printTable(c *cli.Context) error {
	return report.PeriodTable(os.Stdout, table.Default(), !c.Bool("all"))
}
