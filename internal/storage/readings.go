package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/pinhole/internal/model"
	"github.com/google/uuid"
)

// DefaultReadingsLimit caps ListReadings when no positive limit is given.
const DefaultReadingsLimit = 1000

// SaveReading stores a meter reading. An empty ID is filled with a fresh UUID.
func (s *SQLiteStorage) SaveReading(ctx context.Context, reading *model.MeterReading) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateReading(reading); err != nil {
		return err
	}

	if reading.ID == "" {
		reading.ID = uuid.NewString()
	}
	if reading.CreatedAt.IsZero() {
		reading.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO meter_readings (id, source, avg_luminance, ev, pixel_count, suggested_condition, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, reading.ID, reading.Source, reading.AvgLuminance, reading.EV, reading.PixelCount,
		reading.SuggestedCondition, reading.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save meter reading: %w", err)
	}
	return nil
}

// ListReadings returns the most recent readings first.
func (s *SQLiteStorage) ListReadings(ctx context.Context, limit int) ([]model.MeterReading, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultReadingsLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, avg_luminance, ev, pixel_count, suggested_condition, created_at
		FROM meter_readings
		ORDER BY created_at DESC, id
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query meter readings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var readings []model.MeterReading
	for rows.Next() {
		var r model.MeterReading
		if err := rows.Scan(&r.ID, &r.Source, &r.AvgLuminance, &r.EV, &r.PixelCount,
			&r.SuggestedCondition, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan meter reading: %w", err)
		}
		readings = append(readings, r)
	}

	return readings, rows.Err()
}
