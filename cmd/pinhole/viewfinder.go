package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/pinhole/internal/tui"
	"github.com/Veraticus/pinhole/internal/tui/themes"
	"github.com/spf13/cobra"
)

func viewfinderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "viewfinder",
		Aliases: []string{"vf"},
		Short:   "Open the live viewfinder",
		Long: `Open a full-screen view that draws the film frame for the current format and
orientation next to the live exposure. Settings can be changed from the
keyboard (press ? for the keys) and are saved as you go.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			name, _ := cmd.Flags().GetString("theme")
			theme, ok := themes.ByName(name)
			if !ok {
				return fmt.Errorf("unknown theme %q (available: %s)", name, strings.Join(themes.Names(), ", "))
			}

			sess, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = sess.Close() }()

			return tui.Run(ctx,
				tui.WithStore(sess.settings),
				tui.WithTheme(theme),
				tui.WithLayout(sess.cfg.Layout()),
			)
		},
	}

	cmd.Flags().String("theme", themes.Default.Name, "colour theme ("+strings.Join(themes.Names(), ", ")+")")
	return cmd
}
