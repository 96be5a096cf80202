package tui

import "github.com/Veraticus/pinhole/internal/model"

// settingsChangedMsg carries the store's new settings into the update loop.
// revision is the store revision they belong to, zero without a store.
type settingsChangedMsg struct {
	settings model.CameraSettings
	revision uint64
}

// errorMsg reports a failed edit.
type errorMsg struct {
	err error
}
