// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/Veraticus/pinhole/internal/model"
)

// SettingsStore is a key-value store for serialised settings records.
type SettingsStore interface {
	GetSetting(ctx context.Context, key string) ([]byte, error)
	PutSetting(ctx context.Context, key string, value []byte) error
	DeleteSetting(ctx context.Context, key string) error
}

// ProfileStore persists named settings profiles keyed by id.
type ProfileStore interface {
	CreateProfile(ctx context.Context, profile *model.Profile) error
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	ListProfiles(ctx context.Context) ([]model.Profile, error)
	DeleteProfile(ctx context.Context, id string) error
}

// ReadingStore persists image brightness readings.
type ReadingStore interface {
	SaveReading(ctx context.Context, reading *model.MeterReading) error
	ListReadings(ctx context.Context, limit int) ([]model.MeterReading, error)
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	SettingsStore
	ProfileStore
	ReadingStore

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
