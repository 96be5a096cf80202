// Package testutil provides shared fixtures for pinhole tests: migrated
// SQLite databases seeded with profiles or settings, and synthetic images
// for the meter.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Veraticus/pinhole/internal/model"
	"github.com/Veraticus/pinhole/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage  *storage.SQLiteStorage
	t        *testing.T
	Profiles []model.Profile
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup func(context.Context, *storage.SQLiteStorage) error
	// Settings, if set, is stored as the current camera settings.
	Settings       *model.CameraSettings
	Profiles       []model.Profile
	SkipMigrations bool
	// InMemory uses ":memory:" instead of a file under t.TempDir().
	InMemory bool
}

// SetupTestDB creates a migrated test database seeded with profiles. It is
// closed when the test finishes.
//
// Example:
//
//	db := testutil.SetupTestDB(t,
//		testutil.NewProfile("Holga", func(s *model.CameraSettings) {
//			s.FocalLength = 40
//		}),
//	)
func SetupTestDB(t *testing.T, profiles ...model.Profile) *TestDB {
	t.Helper()
	return SetupTestDBWithOptions(t, TestDBOptions{Profiles: profiles})
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	path := ":memory:"
	if !opts.InMemory {
		path = filepath.Join(t.TempDir(), "pinhole.db")
	}

	db, err := storage.NewSQLiteStorage(path)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	ctx := context.Background()

	// Run migrations unless skipped
	if !opts.SkipMigrations {
		if err := db.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	profiles := make([]model.Profile, 0, len(opts.Profiles))
	for _, p := range opts.Profiles {
		if err := db.CreateProfile(ctx, &p); err != nil {
			t.Fatalf("failed to seed profile %q: %v", p.Name, err)
		}
		profiles = append(profiles, p)
	}

	if opts.Settings != nil {
		data, err := model.EncodeSettings(*opts.Settings)
		if err != nil {
			t.Fatalf("failed to encode settings: %v", err)
		}
		if err := db.PutSetting(ctx, SettingsKey, data); err != nil {
			t.Fatalf("failed to seed settings: %v", err)
		}
	}

	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, db); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage:  db,
		Profiles: profiles,
		t:        t,
	}
}

// SettingsKey is where the settings store keeps the current settings.
const SettingsKey = "pinhole_camera_settings"

// MustGetProfile returns the seeded profile with the given name or fails the test.
func (db *TestDB) MustGetProfile(name string) model.Profile {
	db.t.Helper()
	for _, p := range db.Profiles {
		if p.Name == name {
			return p
		}
	}
	db.t.Fatalf("profile %q was not seeded", name)
	return model.Profile{}
}

// NewProfile builds a profile from the default settings with edits applied.
func NewProfile(name string, edits ...func(*model.CameraSettings)) model.Profile {
	s := model.DefaultCameraSettings()
	for _, edit := range edits {
		edit(&s)
	}
	return model.Profile{Name: name, Settings: s}
}
