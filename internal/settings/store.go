// Package settings holds the one shared copy of the camera settings. Every
// screen reads it through Snapshot and is told about changes through Subscribe.
package settings

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Veraticus/pinhole/internal/common"
	"github.com/Veraticus/pinhole/internal/model"
)

// Key is the storage key the settings record is persisted under.
const Key = "pinhole_camera_settings"

// Patch is a partial update. Nil fields are left unchanged.
type Patch = model.SettingsRecord

// Persister is the key-value store the settings record lives in.
type Persister interface {
	GetSetting(ctx context.Context, key string) ([]byte, error)
	PutSetting(ctx context.Context, key string, value []byte) error
}

// Listener receives the new settings after every successful write.
type Listener func(model.CameraSettings)

type subscription struct {
	fn    Listener
	state *delivery
	id    uint64
}

// delivery serialises notifications to one subscriber. seen is the last
// revision handed to it; delivering is set while a goroutine is inside fn.
type delivery struct {
	mu         sync.Mutex
	seen       uint64
	delivering bool
}

// Store is the observable settings store.
type Store struct {
	persister Persister
	logger    *slog.Logger
	subs      []subscription
	current   model.CameraSettings
	nextID    uint64
	revision  uint64
	mu        sync.RWMutex
	writeMu   sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load warnings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore returns a store holding the defaults. A nil persister keeps
// settings in memory only.
func NewStore(p Persister, opts ...Option) *Store {
	s := &Store{
		persister: p,
		current:   model.DefaultCameraSettings(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns the current settings.
func (s *Store) Snapshot() model.CameraSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Current returns the settings together with their revision. The revision
// grows with every change, so a holder of a newer revision can discard an
// older value that arrives late.
func (s *Store) Current() (model.CameraSettings, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.revision
}

// Subscribe registers fn for change notifications and returns a function that
// removes it. The returned function is safe to call more than once.
//
// Each listener is called from one goroutine at a time, always with the
// latest settings, and never with settings older than ones it has already
// seen. Changes made while a listener is running are delivered to it once it
// returns, possibly folded into a single call.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn, state: &delivery{seen: s.revision}})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Load reads the persisted record. A missing record leaves the defaults in
// place; an unreadable one is logged and also falls back to the defaults.
func (s *Store) Load(ctx context.Context) error {
	if s.persister == nil {
		return nil
	}

	s.writeMu.Lock()
	data, err := s.persister.GetSetting(ctx, Key)
	if errors.Is(err, common.ErrNotFound) {
		s.writeMu.Unlock()
		return nil
	}
	if err != nil {
		s.writeMu.Unlock()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded, err := model.DecodeSettings(data)
	if err != nil {
		s.writeMu.Unlock()
		s.logger.Warn("Ignoring unreadable settings record", "key", Key, "error", err)
		return nil
	}
	if vErr := Validate(loaded); vErr != nil {
		s.writeMu.Unlock()
		s.logger.Warn("Ignoring invalid settings record", "key", Key, "error", vErr)
		return nil
	}

	changed := s.set(loaded)
	s.writeMu.Unlock()

	if changed {
		s.notify()
	}
	return nil
}

// Update merges patch over the current settings, validates and persists the
// result, then notifies subscribers if anything changed. On error nothing
// changes.
func (s *Store) Update(ctx context.Context, patch Patch) (model.CameraSettings, error) {
	return s.write(ctx, func(cur model.CameraSettings) model.CameraSettings {
		return patch.ApplyTo(cur)
	})
}

// Replace stores next wholesale.
func (s *Store) Replace(ctx context.Context, next model.CameraSettings) (model.CameraSettings, error) {
	return s.write(ctx, func(model.CameraSettings) model.CameraSettings {
		return next
	})
}

// Reset restores the defaults.
func (s *Store) Reset(ctx context.Context) (model.CameraSettings, error) {
	return s.Replace(ctx, model.DefaultCameraSettings())
}

// Modify applies fn to the current settings under the write lock. It is the
// read-modify-write form used by key handlers such as "next ISO".
func (s *Store) Modify(ctx context.Context, fn func(model.CameraSettings) model.CameraSettings) (model.CameraSettings, error) {
	return s.write(ctx, fn)
}

func (s *Store) write(ctx context.Context, fn func(model.CameraSettings) model.CameraSettings) (model.CameraSettings, error) {
	s.writeMu.Lock()

	cur := s.Snapshot()
	next := fn(cur)
	if err := Validate(next); err != nil {
		s.writeMu.Unlock()
		return cur, err
	}

	if s.persister != nil {
		data, err := model.EncodeSettings(next)
		if err != nil {
			s.writeMu.Unlock()
			return cur, err
		}
		if err := s.persister.PutSetting(ctx, Key, data); err != nil {
			s.writeMu.Unlock()
			return cur, fmt.Errorf("failed to save settings: %w", err)
		}
	}

	changed := s.set(next)
	s.writeMu.Unlock()

	if changed {
		s.notify()
	}
	return next, nil
}

// set stores next and bumps the revision, reporting whether the value
// actually changed.
func (s *Store) set(next model.CameraSettings) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if next == s.current {
		return false
	}
	s.current = next
	s.revision++
	return true
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]subscription, len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, sub := range subs {
		s.deliver(sub)
	}
}

// deliver hands sub the latest settings. If another goroutine is already
// delivering to sub, it picks the newer revision up when fn returns.
func (s *Store) deliver(sub subscription) {
	st := sub.state
	st.mu.Lock()
	if st.delivering {
		st.mu.Unlock()
		return
	}
	st.delivering = true
	for {
		cur, rev := s.Current()
		if rev <= st.seen {
			st.delivering = false
			st.mu.Unlock()
			return
		}
		st.seen = rev
		st.mu.Unlock()

		sub.fn(cur)

		st.mu.Lock()
	}
}
