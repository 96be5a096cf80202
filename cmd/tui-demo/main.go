// Package main runs the viewfinder against in-memory settings, for trying the
// screen without touching the saved settings.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Veraticus/pinhole/internal/model"
	"github.com/Veraticus/pinhole/internal/settings"
	"github.com/Veraticus/pinhole/internal/tui"
	"github.com/Veraticus/pinhole/internal/tui/themes"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	theme := themes.Default
	if len(os.Args) > 1 {
		t, ok := themes.ByName(os.Args[1])
		if !ok {
			_, _ = fmt.Fprintf(os.Stderr, "unknown theme %q\n", os.Args[1])
			os.Exit(2)
		}
		theme = t
	}

	store := settings.NewStore(nil)
	if _, err := store.Modify(ctx, demoSettings); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error preparing settings: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(ctx, tui.WithStore(store), tui.WithTheme(theme)); err != nil {
		// Use explicit error check to satisfy forbidigo
		_, _ = fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// demoSettings is a 6x17 panoramic camera on a bright day.
func demoSettings(s model.CameraSettings) model.CameraSettings {
	if f, ok := model.FindFilmFormat("6x17"); ok {
		s.FilmFormat = f
	}
	s.FocalLength = 90
	s.PinholeSize = 0.4
	s.Condition = "Clear/Sunny"
	s.ISO = 100
	s.Filter = model.FilterYellow
	s.ReciprocityFailure = true
	return s
}
