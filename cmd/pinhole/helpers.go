package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/pinhole/internal/common"
	"github.com/Veraticus/pinhole/internal/config"
	"github.com/Veraticus/pinhole/internal/model"
	"github.com/Veraticus/pinhole/internal/settings"
	"github.com/Veraticus/pinhole/internal/storage"
)

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context, cfg *config.Config) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(cfg.Database.Path)
	if err != nil {
		return nil, common.NewUserError("cannot open database "+cfg.Database.Path, err)
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		if errors.Is(err, common.ErrDatabaseCorrupted) {
			return nil, common.NewUserError("database "+cfg.Database.Path+" was written by a newer pinhole", err)
		}
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// session bundles what most commands need: configuration, the database and
// the settings store loaded from it.
type session struct {
	cfg      *config.Config
	db       *storage.SQLiteStorage
	settings *settings.Store
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	db, err := initStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store := settings.NewStore(db, settings.WithLogger(slog.Default()))
	if err := store.Load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &session{cfg: cfg, db: db, settings: store}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// resolveProfile finds a profile by full id or by a unique id prefix, as
// printed in profile listings.
func resolveProfile(ctx context.Context, db *storage.SQLiteStorage, ref string) (*model.Profile, error) {
	profile, err := db.GetProfile(ctx, ref)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	profiles, err := db.ListProfiles(ctx)
	if err != nil {
		return nil, err
	}

	var matches []model.Profile
	for _, p := range profiles {
		if strings.HasPrefix(p.ID, ref) || p.Name == ref {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("profile %q: %w", ref, common.ErrNotFound)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("profile %q is ambiguous: %d profiles match", ref, len(matches))
	}
}
