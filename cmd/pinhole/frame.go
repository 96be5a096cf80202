package main

import (
	"fmt"

	"github.com/Veraticus/pinhole/internal/cli"
	"github.com/Veraticus/pinhole/internal/viewfinder"
	"github.com/spf13/cobra"
)

func frameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Compute the framing rectangle for a display",
		Long: `Compute where the film frame falls on a display of the given size, using the
saved film format and orientation.

Sizes are in pixels unless --cells is given, in which case they are terminal
cells and the configured cell aspect is applied.`,
		Example: `  pinhole frame --width 1920 --height 1080
  pinhole frame --width 120 --height 40 --cells --format 6x17`,
		RunE: runFrame,
	}

	cmd.Flags().Float64("width", 0, "display width")
	cmd.Flags().Float64("height", 0, "display height")
	cmd.Flags().Bool("cells", false, "treat width and height as terminal cells")
	cmd.Flags().String("format", "", "film format override")
	cmd.Flags().String("orientation", "", "film orientation override")
	_ = cmd.MarkFlagRequired("width")
	_ = cmd.MarkFlagRequired("height")

	return cmd
}

func runFrame(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	patch, err := patchFromFlags(cmd)
	if err != nil {
		return err
	}

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	s := patch.ApplyTo(sess.settings.Snapshot())

	layout := sess.cfg.Layout()
	if cells, _ := cmd.Flags().GetBool("cells"); !cells {
		layout.CellAspect = 1
	}

	width, _ := cmd.Flags().GetFloat64("width")
	height, _ := cmd.Flags().GetFloat64("height")
	frame := layout.Frame(width, height, s.FilmFormat, s.Orientation)

	effective := viewfinder.EffectiveDimensions(s.FilmFormat, s.Orientation)
	pairs := [][2]string{
		{"Film", fmt.Sprintf("%s %s (%gx%gmm)", s.FilmFormat.Name, s.Orientation, effective.Width, effective.Height)},
		{"Aspect", fmt.Sprintf("%.3f", effective.Aspect())},
		{"Display", string(frame.DeviceOrientation)},
		{"Pane", formatRect(frame.Pane)},
	}
	if frame.Empty() {
		pairs = append(pairs, [2]string{"Frame", cli.SubtleStyle.Render("nothing to draw")})
	} else {
		pairs = append(pairs, [2]string{"Frame", formatRect(frame.Rect)})
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.KeyValues(pairs))
	return nil
}

func formatRect(r viewfinder.Rect) string {
	return fmt.Sprintf("%.1fx%.1f at (%.1f, %.1f)", r.Width, r.Height, r.X, r.Y)
}
