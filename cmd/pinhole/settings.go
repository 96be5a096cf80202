package main

import (
	"fmt"

	"github.com/Veraticus/pinhole/internal/cli"
	"github.com/Veraticus/pinhole/internal/model"
	"github.com/spf13/cobra"
)

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change the saved camera settings",
	}

	cmd.AddCommand(showSettingsCmd())
	cmd.AddCommand(setSettingsCmd())
	cmd.AddCommand(resetSettingsCmd())

	return cmd
}

func showSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current camera settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			printSettings(cmd, sess.settings.Snapshot())
			return nil
		},
	}
}

func setSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change camera settings",
		Long:  `Change one or more camera settings. Settings not named keep their value.`,
		Example: `  pinhole settings set --focal 75 --pinhole 0.35
  pinhole settings set --format 6x9 --orientation portrait
  pinhole settings set --condition none`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			patch, err := patchFromFlags(cmd)
			if err != nil {
				return err
			}
			if patch == (model.SettingsRecord{}) {
				return fmt.Errorf("nothing to change: pass at least one setting flag")
			}

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			next, err := sess.settings.Update(ctx, patch)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Settings saved"))
			printSettings(cmd, next)
			return nil
		},
	}

	addSettingsFlags(cmd)
	return cmd
}

func resetSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default camera settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			next, err := sess.settings.Reset(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Settings reset to defaults"))
			printSettings(cmd, next)
			return nil
		},
	}
}

func printSettings(cmd *cobra.Command, s model.CameraSettings) {
	out := cmd.OutOrStdout()
	pairs := [][2]string{
		{"Film format", fmt.Sprintf("%s (%gx%gmm)", s.FilmFormat.Name, s.FilmFormat.Width, s.FilmFormat.Height)},
		{"Orientation", string(s.Orientation)},
		{"Focal length", fmt.Sprintf("%gmm", s.FocalLength)},
		{"Pinhole", fmt.Sprintf("%gmm (f/%.1f)", s.PinholeSize, s.FStop())},
		{"ISO", fmt.Sprint(s.ISO)},
		{"Condition", orNone(s.Condition)},
		{"Filter", string(s.Filter)},
		{"Bracket", fmt.Sprintf("%+d", s.BracketStops)},
		{"Reciprocity", fmt.Sprint(s.ReciprocityFailure)},
	}
	fmt.Fprintln(out, cli.RenderBox("Camera settings", cli.KeyValues(pairs)))
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
