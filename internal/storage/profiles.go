package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/pinhole/internal/common"
	"github.com/Veraticus/pinhole/internal/model"
	"github.com/google/uuid"
)

// CreateProfile inserts a new profile. An empty ID is filled with a fresh UUID.
func (s *SQLiteStorage) CreateProfile(ctx context.Context, profile *model.Profile) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateProfile(profile); err != nil {
		return err
	}

	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}

	data, err := model.EncodeSettings(profile.Settings)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists bool
	if err := tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM profiles WHERE id = ?)
	`, profile.ID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check profile existence: %w", err)
	}
	if exists {
		return fmt.Errorf("profile %s: %w", profile.ID, common.ErrDuplicateEntry)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO profiles (id, name, settings, created_at)
		VALUES (?, ?, ?, ?)
	`, profile.ID, profile.Name, string(data), profile.CreatedAt); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit profile: %w", err)
	}

	s.cacheProfile(profile)
	return nil
}

// GetProfile retrieves a profile by id.
func (s *SQLiteStorage) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	if profile := s.getCachedProfile(id); profile != nil {
		return profile, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, settings, created_at
		FROM profiles
		WHERE id = ?
	`, id)

	profile, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	s.cacheProfile(profile)
	return profile, nil
}

// ListProfiles returns all profiles, oldest first.
func (s *SQLiteStorage) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.listProfiles(ctx, s.db)
}

func (s *SQLiteStorage) listProfiles(ctx context.Context, q queryable) ([]model.Profile, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, settings, created_at
		FROM profiles
		ORDER BY created_at, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var profiles []model.Profile
	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, *profile)
	}

	return profiles, rows.Err()
}

// DeleteProfile deletes a profile by id.
func (s *SQLiteStorage) DeleteProfile(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("profile %s: %w", id, common.ErrNotFound)
	}

	s.cacheMutex.Lock()
	delete(s.profileCache, id)
	s.cacheMutex.Unlock()

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*model.Profile, error) {
	var (
		profile model.Profile
		data    string
	)
	if err := row.Scan(&profile.ID, &profile.Name, &data, &profile.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan profile: %w", err)
	}

	settings, err := model.DecodeSettings([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("profile %s: %w", profile.ID, err)
	}
	profile.Settings = settings
	return &profile, nil
}

// getCachedProfile retrieves a profile from the cache.
func (s *SQLiteStorage) getCachedProfile(id string) *model.Profile {
	s.cacheMutex.RLock()

	if time.Now().After(s.cacheExpiry) {
		// Upgrade to write lock to clear the expired cache.
		s.cacheMutex.RUnlock()
		s.cacheMutex.Lock()
		defer s.cacheMutex.Unlock()

		// Double-check after acquiring write lock
		if time.Now().After(s.cacheExpiry) {
			s.profileCache = make(map[string]*model.Profile)
		}
		return nil
	}

	profile := s.profileCache[id]
	s.cacheMutex.RUnlock()
	if profile == nil {
		return nil
	}
	cp := *profile
	return &cp
}

// cacheProfile adds a copy of profile to the cache.
func (s *SQLiteStorage) cacheProfile(profile *model.Profile) {
	s.cacheMutex.Lock()
	defer s.cacheMutex.Unlock()

	if len(s.profileCache) == 0 {
		// Set cache expiry on first entry
		s.cacheExpiry = time.Now().Add(profileCacheTTL)
	}
	cp := *profile
	s.profileCache[profile.ID] = &cp
}
