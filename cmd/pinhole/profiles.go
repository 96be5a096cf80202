package main

import (
	"fmt"

	"github.com/Veraticus/pinhole/internal/cli"
	"github.com/Veraticus/pinhole/internal/model"
	"github.com/spf13/cobra"
)

func profilesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "profiles",
		Aliases: []string{"profile"},
		Short:   "Manage saved camera profiles",
		Long: `Save the current camera settings under a name and switch between them later,
for example one profile per camera body.`,
	}

	cmd.AddCommand(listProfilesCmd())
	cmd.AddCommand(saveProfileCmd())
	cmd.AddCommand(loadProfileCmd())
	cmd.AddCommand(deleteProfileCmd())

	return cmd
}

func listProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved profiles",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			profiles, err := sess.db.ListProfiles(ctx)
			if err != nil {
				return fmt.Errorf("failed to list profiles: %w", err)
			}

			if len(profiles) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No profiles saved. Use 'pinhole profiles save <name>' to create one."))
				return nil
			}

			cli.ProfilesTable(cmd.OutOrStdout(), profiles)
			return nil
		},
	}
}

func saveProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current settings as a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			profile := &model.Profile{
				Name:     args[0],
				Settings: sess.settings.Snapshot(),
			}
			if err := sess.db.CreateProfile(ctx, profile); err != nil {
				return fmt.Errorf("failed to save profile: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Saved profile %q (%s)", profile.Name, profile.ID)))
			return nil
		},
	}
}

func loadProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <id|name>",
		Short: "Make a saved profile the current settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			profile, err := resolveProfile(ctx, sess.db, args[0])
			if err != nil {
				return err
			}

			next, err := sess.settings.Replace(ctx, profile.Settings)
			if err != nil {
				return fmt.Errorf("failed to load profile: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Loaded profile %q", profile.Name)))
			printSettings(cmd, next)
			return nil
		},
	}
}

func deleteProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id|name>",
		Short: "Delete a saved profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			profile, err := resolveProfile(ctx, sess.db, args[0])
			if err != nil {
				return err
			}
			if err := sess.db.DeleteProfile(ctx, profile.ID); err != nil {
				return fmt.Errorf("failed to delete profile: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted profile %q", profile.Name)))
			return nil
		},
	}
}
