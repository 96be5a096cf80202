package main

import (
	"github.com/Veraticus/pinhole/internal/cli"
	"github.com/Veraticus/pinhole/internal/model"
	"github.com/spf13/cobra"
)

func conditionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "conditions",
		Short: "List lighting conditions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSnapshot(cmd, func(s model.CameraSettings) {
				cli.ConditionsTable(cmd.OutOrStdout(), s.Condition)
			})
		},
	}
}

func filtersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "filters",
		Short: "List filters and their exposure factors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSnapshot(cmd, func(s model.CameraSettings) {
				cli.FiltersTable(cmd.OutOrStdout(), s.Filter)
			})
		},
	}
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List film formats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSnapshot(cmd, func(s model.CameraSettings) {
				cli.FormatsTable(cmd.OutOrStdout(), s.FilmFormat.Name)
			})
		},
	}
}

// withSnapshot runs fn with the saved settings so listings can mark the
// current selection.
func withSnapshot(cmd *cobra.Command, fn func(model.CameraSettings)) error {
	sess, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close() }()

	fn(sess.settings.Snapshot())
	return nil
}
