package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/pinhole/internal/cli"
	"github.com/Veraticus/pinhole/internal/exposure"
	"github.com/Veraticus/pinhole/internal/model"
	"github.com/Veraticus/pinhole/internal/settings"
	"github.com/spf13/cobra"
)

func exposeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expose",
		Short: "Calculate the exposure time",
		Long: `Calculate the exposure time for the saved camera settings.

Any setting flag overrides the saved value for this calculation only; pass
--save to keep the overrides.`,
		Example: `  pinhole expose --condition "Clear/Sunny" --iso 400
  pinhole expose --filter red --reciprocity --ladder`,
		RunE: runExpose,
	}

	addSettingsFlags(cmd)
	cmd.Flags().Bool("ladder", false, "print the full -3..+3 bracketing ladder")
	cmd.Flags().Bool("save", false, "save the overrides as the current settings")

	return cmd
}

func runExpose(cmd *cobra.Command, _ []string) error {
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

	save, _ := cmd.Flags().GetBool("save")
	var current model.CameraSettings
	if save {
		current, err = sess.settings.Update(ctx, patch)
		if err != nil {
			return err
		}
	} else {
		current = patch.ApplyTo(sess.settings.Snapshot())
		if err := settings.Validate(current); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	printExposure(out, current)

	if ladder, _ := cmd.Flags().GetBool("ladder"); ladder {
		if results := exposure.Bracket(current); len(results) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, cli.FormatTitle("Bracket ladder"))
			cli.LadderTable(out, results, current.BracketStops)
		}
	}
	return nil
}

func printExposure(w io.Writer, s model.CameraSettings) {
	res, ok := exposure.Compute(s)
	if !ok {
		fmt.Fprintln(w, cli.FormatExposure(""))
		return
	}

	pairs := [][2]string{
		{"Exposure", cli.FormatExposure(res.Formatted)},
		{"Seconds", strconv.FormatFloat(res.Seconds, 'f', 3, 64)},
		{"Condition", fmt.Sprintf("%s (f/%g)", res.Condition, res.ReferenceFStop)},
		{"Aperture", fmt.Sprintf("f/%g", res.ActualFStop)},
		{"ISO", strconv.Itoa(s.ISO)},
	}
	if res.FilterStops > 0 {
		pairs = append(pairs, [2]string{"Filter", fmt.Sprintf("%s (+%d stops)", s.Filter, res.FilterStops)})
	}
	if res.BracketStops != 0 {
		pairs = append(pairs, [2]string{"Bracket", fmt.Sprintf("%+d stops", res.BracketStops)})
	}
	if res.ReciprocityApplied {
		pairs = append(pairs, [2]string{"Reciprocity", "corrected"})
	}
	if optimal := exposure.OptimalPinhole(s.FocalLength); optimal > 0 {
		pairs = append(pairs, [2]string{"Optimal pinhole", fmt.Sprintf("%.2fmm (yours %gmm)", optimal, s.PinholeSize)})
	}

	fmt.Fprintln(w, cli.KeyValues(pairs))
}
