package config

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/Veraticus/pinhole/internal/common"
	"github.com/Veraticus/pinhole/internal/viewfinder"
	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Database   DatabaseConfig
	Server     ServerConfig
	Viewfinder ViewfinderConfig
	Meter      MeterConfig
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxUploadBytes int64
	// TLS serves HTTPS with a self-signed certificate kept in CertDir.
	TLS      bool
	CertDir  string
	TLSHosts []string
}

// ViewfinderConfig holds the framing layout parameters.
type ViewfinderConfig struct {
	LandscapeFill       float64
	PortraitFill        float64
	SidePanelFraction   float64
	BottomPanelFraction float64
	CellAspect          float64
}

// MeterConfig configures image brightness analysis.
type MeterConfig struct {
	ThumbnailSize int
	HistoryLimit  int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	layout := viewfinder.DefaultLayout()
	return Config{
		Database: DatabaseConfig{
			Path: "~/.local/share/pinhole/pinhole.db",
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8001",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			MaxUploadBytes: 20 << 20,
		},
		Viewfinder: ViewfinderConfig{
			LandscapeFill:       layout.LandscapeFill,
			PortraitFill:        layout.PortraitFill,
			SidePanelFraction:   layout.SidePanelFraction,
			BottomPanelFraction: layout.BottomPanelFraction,
			// terminal cells are roughly twice as tall as they are wide
			CellAspect: 2,
		},
		Meter: MeterConfig{
			ThumbnailSize: 200,
			HistoryLimit:  50,
		},
	}
}

// Load reads the configuration from the global viper instance.
func Load() (*Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads the configuration from v. Keys that are not set keep their
// defaults.
func LoadFrom(v *viper.Viper) (*Config, error) {
	config := DefaultConfig()

	if s := v.GetString("database.path"); s != "" {
		config.Database.Path = s
	}
	config.Database.Path = ExpandPath(config.Database.Path)

	if s := v.GetString("server.addr"); s != "" {
		config.Server.Addr = s
	}
	if v.IsSet("server.read_timeout") {
		config.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	}
	if v.IsSet("server.write_timeout") {
		config.Server.WriteTimeout = v.GetDuration("server.write_timeout")
	}
	if v.IsSet("server.max_upload_bytes") {
		config.Server.MaxUploadBytes = v.GetInt64("server.max_upload_bytes")
	}
	config.Server.TLS = v.GetBool("server.tls")
	config.Server.TLSHosts = v.GetStringSlice("server.tls_hosts")
	if s := v.GetString("server.cert_dir"); s != "" {
		config.Server.CertDir = s
	}
	if config.Server.CertDir == "" {
		config.Server.CertDir = filepath.Join(ConfigDir(), "certs")
	}
	config.Server.CertDir = ExpandPath(config.Server.CertDir)

	floats := []struct {
		dst *float64
		key string
	}{
		{&config.Viewfinder.LandscapeFill, "viewfinder.landscape_fill"},
		{&config.Viewfinder.PortraitFill, "viewfinder.portrait_fill"},
		{&config.Viewfinder.SidePanelFraction, "viewfinder.side_panel_fraction"},
		{&config.Viewfinder.BottomPanelFraction, "viewfinder.bottom_panel_fraction"},
		{&config.Viewfinder.CellAspect, "viewfinder.cell_aspect"},
	}
	for _, f := range floats {
		if v.IsSet(f.key) {
			*f.dst = v.GetFloat64(f.key)
		}
	}

	if v.IsSet("meter.thumbnail_size") {
		config.Meter.ThumbnailSize = v.GetInt("meter.thumbnail_size")
	}
	if v.IsSet("meter.history_limit") {
		config.Meter.HistoryLimit = v.GetInt("meter.history_limit")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Database.Path == "" {
		return fmt.Errorf("%w: database path is required", common.ErrMissingConfig)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server address is required", common.ErrMissingConfig)
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		return fmt.Errorf("%w: server timeouts cannot be negative", common.ErrInvalidConfig)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: max upload size must be positive", common.ErrInvalidConfig)
	}

	fills := map[string]float64{
		"landscape fill": c.Viewfinder.LandscapeFill,
		"portrait fill":  c.Viewfinder.PortraitFill,
	}
	for name, f := range fills {
		if !(f > 0 && f <= 1) {
			return fmt.Errorf("%w: %s must be in (0, 1], got %v", common.ErrInvalidConfig, name, f)
		}
	}

	panels := map[string]float64{
		"side panel fraction":   c.Viewfinder.SidePanelFraction,
		"bottom panel fraction": c.Viewfinder.BottomPanelFraction,
	}
	for name, f := range panels {
		if !(f >= 0 && f < 1) {
			return fmt.Errorf("%w: %s must be in [0, 1), got %v", common.ErrInvalidConfig, name, f)
		}
	}

	if !(c.Viewfinder.CellAspect > 0) || math.IsInf(c.Viewfinder.CellAspect, 0) {
		return fmt.Errorf("%w: cell aspect must be positive", common.ErrInvalidConfig)
	}

	if c.Meter.ThumbnailSize <= 0 {
		return fmt.Errorf("%w: meter thumbnail size must be positive", common.ErrInvalidConfig)
	}
	if c.Meter.HistoryLimit <= 0 {
		return fmt.Errorf("%w: meter history limit must be positive", common.ErrInvalidConfig)
	}

	return nil
}

// Layout returns the viewfinder layout described by the configuration.
func (c *Config) Layout() viewfinder.Layout {
	return viewfinder.Layout{
		LandscapeFill:       c.Viewfinder.LandscapeFill,
		PortraitFill:        c.Viewfinder.PortraitFill,
		SidePanelFraction:   c.Viewfinder.SidePanelFraction,
		BottomPanelFraction: c.Viewfinder.BottomPanelFraction,
		CellAspect:          c.Viewfinder.CellAspect,
	}
}
