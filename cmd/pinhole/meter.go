package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/pinhole/internal/cli"
	"github.com/Veraticus/pinhole/internal/common"
	"github.com/Veraticus/pinhole/internal/meter"
	"github.com/Veraticus/pinhole/internal/model"
	"github.com/Veraticus/pinhole/internal/settings"
	"github.com/Veraticus/pinhole/internal/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func meterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meter <image>...",
		Short: "Estimate the light from photos of the scene",
		Long: `Measure the average brightness of one or more images, convert it to an
exposure value and suggest the closest lighting condition.

JPEG, PNG, GIF, BMP, TIFF and WebP images are supported. Readings are saved
and can be listed with 'pinhole readings'.`,
		Example: `  pinhole meter scene.jpg
  pinhole meter --apply ~/Pictures/test-shots/*.jpg`,
		Args: cobra.MinimumNArgs(1),
		RunE: runMeter,
	}

	cmd.Flags().Bool("no-save", false, "do not store the readings")
	cmd.Flags().Bool("apply", false, "select the suggested condition of the last image")

	return cmd
}

func runMeter(cmd *cobra.Command, args []string) error {
	interruptHandler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Metering")
	ctx := interruptHandler.HandleInterrupts(cmd.Context(), "Readings taken so far have been saved.")

	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	noSave, _ := cmd.Flags().GetBool("no-save")
	apply, _ := cmd.Flags().GetBool("apply")

	var db *storage.SQLiteStorage
	if !noSave {
		db = sess.db
	}

	readings, failed := meterImages(ctx, cmd.ErrOrStderr(), meter.NewAnalyzer(sess.cfg.Meter.ThumbnailSize), db, args)
	if len(readings) == 0 {
		return fmt.Errorf("no image could be measured")
	}

	out := cmd.OutOrStdout()
	cli.ReadingsTable(out, readings)
	if failed > 0 {
		fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("%d of %d images could not be measured", failed, len(args))))
	}

	if apply {
		return applySuggestion(ctx, cmd, sess.settings, readings[len(readings)-1])
	}
	return nil
}

// meterImages measures each path in turn and, when db is set, stores every
// reading. Failures are logged and counted; the batch carries on.
func meterImages(ctx context.Context, progressOut io.Writer, analyzer *meter.Analyzer, db *storage.SQLiteStorage, paths []string) ([]model.MeterReading, int) {
	var bar *progressbar.ProgressBar
	if len(paths) > 1 {
		bar = progressbar.NewOptions(len(paths),
			progressbar.OptionSetWriter(progressOut),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
			progressbar.OptionSetDescription("[cyan][bold]Metering images...[reset]"),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionOnCompletion(func() {
				_, _ = fmt.Fprintln(progressOut)
			}),
		)
	}

	readings := make([]model.MeterReading, 0, len(paths))
	failed := 0
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}

		reading, err := meterFile(analyzer, path)
		if err != nil {
			slog.Warn("Failed to meter image", "path", path, "error", err)
			failed++
		} else {
			stored := reading.MeterReading(filepath.Base(path))
			if db != nil {
				if err := db.SaveReading(ctx, &stored); err != nil {
					common.LogError(err, "Failed to save reading", common.Fields{"path": path, "source": stored.Source})
				}
			}
			readings = append(readings, stored)
		}

		if bar != nil {
			if err := bar.Add(1); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	return readings, failed
}

func meterFile(analyzer *meter.Analyzer, path string) (meter.Reading, error) {
	f, err := os.Open(path)
	if err != nil {
		return meter.Reading{}, fmt.Errorf("failed to open image: %w", err)
	}
	defer func() { _ = f.Close() }()

	return analyzer.Analyze(f)
}

func applySuggestion(ctx context.Context, cmd *cobra.Command, store *settings.Store, reading model.MeterReading) error {
	condition := reading.SuggestedCondition
	next, err := store.Update(ctx, settings.Patch{SelectedCondition: &condition})
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Selected %q", condition)))
	printExposure(cmd.OutOrStdout(), next)
	return nil
}

func readingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "readings",
		Short: "List saved meter readings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			limit, _ := cmd.Flags().GetInt("limit")
			if !cmd.Flags().Changed("limit") {
				limit = sess.cfg.Meter.HistoryLimit
			}

			readings, err := sess.db.ListReadings(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to list readings: %w", err)
			}

			if len(readings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No readings yet. Use 'pinhole meter <image>' to take one."))
				return nil
			}

			cli.ReadingsTable(cmd.OutOrStdout(), readings)
			return nil
		},
	}

	cmd.Flags().Int("limit", 0, "maximum number of readings (default from meter.history_limit)")
	return cmd
}
