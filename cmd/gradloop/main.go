package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/gradloop/internal/anim"
	"github.com/san-kum/gradloop/internal/config"
	"github.com/san-kum/gradloop/internal/encoder"
	"github.com/san-kum/gradloop/internal/rgb"
	"github.com/san-kum/gradloop/internal/viz"
	"github.com/spf13/cobra"
)

var version = "dev"

// main runs the root command and exits with status 1 if it returns an error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, viz.ErrorLine(err))
		os.Exit(1)
	}
}

func newLogger(w io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gradloop <start_color> <end_color> <width> <height> <duration>",
		Short: "render a scrolling ping-pong gradient as a looping GIF",
		Long: `Render a horizontal two-colour gradient that scrolls forward and back
as an infinitely looping animated GIF at 30 frames per second.

Colours are "#RRGGBB", "RRGGBB" or a decimal "R,G,B" triple. Width and
height are in pixels, duration in seconds. The output is written to
gradient<width>x<height>_<duration>.gif in the current directory.`,
		Example:       `  gradloop "#ff5e62" "255,195,113" 480 120 3`,
		Version:       version,
		Args:          cobra.ExactArgs(5),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromArgs(args)
			if err != nil {
				return err
			}
			return render(cmd, cfg)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	presetCmd := &cobra.Command{
		Use:   "preset <name>",
		Short: "render a built-in preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.GetPreset(args[0])
			if err != nil {
				return err
			}
			return render(cmd, cfg)
		},
	}

	previewCmd := &cobra.Command{
		Use:   "preview <start_color> <end_color> <width> <height> <duration>",
		Short: "play the animation in the terminal without writing a file",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromArgs(args)
			if err != nil {
				return err
			}
			params, err := anim.NewParams(cfg)
			if err != nil {
				return err
			}
			return viz.RunPreview(params)
		},
	}

	scheduleCmd := &cobra.Command{
		Use:   "schedule <duration>",
		Short: "plot the ping-pong progress curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotSchedule,
	}

	rootCmd.AddCommand(presetsCmd, presetCmd, previewCmd, scheduleCmd)
	return rootCmd
}

func render(cmd *cobra.Command, cfg *config.Config) error {
	params, err := anim.NewParams(cfg)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr())

	path := cfg.FileName()
	sink, err := encoder.Create(path, params.Width, params.Height,
		encoder.WithFallbackPalette(rgb.Ramp(params.Start, params.End, 256)))
	if err != nil {
		return err
	}

	r := anim.New()
	r.AddObserver(anim.LogObserver{Logger: logger})

	start := time.Now()
	res, err := r.Run(cmd.Context(), params, sink)
	if cerr := sink.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	logger.Info().
		Str("file", path).
		Int("frames", res.Frames).
		Int("delay_cs", res.Delay).
		Dur("elapsed", time.Since(start)).
		Msg("animation written")

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n",
		viz.SuccessStyle.Render("wrote"), path,
		viz.Swatch(params.Start, 2)+viz.Swatch(params.End, 2),
		viz.Subtle.Render(fmt.Sprintf("%d frames, %dx%d", res.Frames, params.Width, params.Height)))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		params, err := anim.NewParams(cfg)
		if err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
		fmt.Fprintf(out, "  %-8s %s %s\n", name,
			viz.GradientText("██████████", params.Start, params.End),
			viz.Subtle.Render(fmt.Sprintf("%s → %s  %dx%d %ds", cfg.Start, cfg.End, cfg.Width, cfg.Height, cfg.Duration)))
	}
	return nil
}

func plotSchedule(cmd *cobra.Command, args []string) error {
	duration, err := strconv.Atoi(args[0])
	if err != nil || duration <= 0 {
		return fmt.Errorf("duration %w, got %q", config.ErrInvalidDimension, args[0])
	}
	cfg := config.DefaultConfig()
	cfg.Duration = duration
	fmt.Fprintln(cmd.OutOrStdout(), viz.PlotSchedule(cfg.Timing(), duration, 72))
	return nil
}
