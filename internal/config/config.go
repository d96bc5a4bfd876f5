package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/llehouerou/audiosession/internal/playback"
	"github.com/llehouerou/audiosession/internal/surface"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	DefaultFolder string `koanf:"default_folder"` // folder browsed by the local player

	// Default fast-forward and rewind steps, both required positive.
	FastForwardInterval time.Duration `koanf:"fast_forward_interval"`
	RewindInterval      time.Duration `koanf:"rewind_interval"`

	Notification NotificationConfig `koanf:"notification"`
	Artwork      ArtworkConfig      `koanf:"artwork"`
	Queue        QueueConfig        `koanf:"queue"`
	MPRIS        MPRISConfig        `koanf:"mpris"`
	Log          LogConfig          `koanf:"log"`
}

// NotificationConfig describes the notification channel and its behavior.
type NotificationConfig struct {
	Enabled               *bool  `koanf:"enabled"` // desktop popups on track change (default: true)
	ChannelID             string `koanf:"channel_id"`
	ChannelName           string `koanf:"channel_name"`
	ChannelDescription    string `koanf:"channel_description"`
	Color                 string `koanf:"color"` // "#rrggbb"
	Icon                  string `koanf:"icon"`  // icon name or path
	ShowBadge             *bool  `koanf:"show_badge"`
	Ongoing               bool   `koanf:"ongoing"`
	StopForegroundOnPause *bool  `koanf:"stop_foreground_on_pause"`
	ResumeOnClick         *bool  `koanf:"resume_on_click"`
}

// ArtworkConfig controls artwork resolution.
type ArtworkConfig struct {
	DownscaleWidth  int           `koanf:"downscale_width"`  // 0 = no downscale
	DownscaleHeight int           `koanf:"downscale_height"` // 0 = no downscale
	Preload         bool          `koanf:"preload"`          // resolve art for queued items ahead of time
	CacheDir        string        `koanf:"cache_dir"`        // default: XDG cache dir
	MaxAge          time.Duration `koanf:"max_age"`          // prune cached files older than this, 0 = keep
}

// QueueConfig toggles queue support.
type QueueConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// MPRISConfig controls the desktop control-center integration.
type MPRISConfig struct {
	Enabled  *bool  `koanf:"enabled"`  // default: true
	Identity string `koanf:"identity"` // player name shown by the desktop
}

// LogConfig controls the structured log file.
type LogConfig struct {
	File  string `koanf:"file"`  // default: XDG state dir
	Level string `koanf:"level"` // debug, info, warn, error (default: info)
}

func Load() (*Config, error) {
	return load(getConfigPaths())
}

func load(paths []string) (*Config, error) {
	k := koanf.New(".")

	// Later files override earlier ones.
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, fmt.Errorf("load %s: %w", path, err)
			}
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	cfg.Artwork.CacheDir = expandPath(cfg.Artwork.CacheDir)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		FastForwardInterval: playback.DefaultSeekInterval,
		RewindInterval:      playback.DefaultSeekInterval,
		Notification: NotificationConfig{
			ChannelID:   "audiosession.playback",
			ChannelName: "Playback",
		},
		Artwork: ArtworkConfig{
			MaxAge: 30 * 24 * time.Hour,
		},
		MPRIS: MPRISConfig{
			Identity: "Audiosession",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.FastForwardInterval <= 0 {
		return fmt.Errorf("%w: fast_forward_interval must be positive, got %s", ErrInvalid, c.FastForwardInterval)
	}
	if c.RewindInterval <= 0 {
		return fmt.Errorf("%w: rewind_interval must be positive, got %s", ErrInvalid, c.RewindInterval)
	}
	if c.Artwork.DownscaleWidth < 0 || c.Artwork.DownscaleHeight < 0 {
		return fmt.Errorf("%w: artwork downscale size must not be negative", ErrInvalid)
	}
	if c.Artwork.MaxAge < 0 {
		return fmt.Errorf("%w: artwork max_age must not be negative", ErrInvalid)
	}
	if c.Notification.Color != "" && !colorPattern.MatchString(c.Notification.Color) {
		return fmt.Errorf("%w: notification color %q is not #rrggbb", ErrInvalid, c.Notification.Color)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses Log.Level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return level, nil
}

// Surface returns the payload sent to presentation surfaces at session start.
func (c *Config) Surface() surface.Config {
	n := c.Notification
	return surface.Config{
		ChannelID:             n.ChannelID,
		ChannelName:           n.ChannelName,
		ChannelDescription:    n.ChannelDescription,
		Color:                 strings.ToLower(n.Color),
		Icon:                  n.Icon,
		ShowBadge:             boolOr(n.ShowBadge, true),
		Ongoing:               n.Ongoing,
		StopForegroundOnPause: boolOr(n.StopForegroundOnPause, true),
		ResumeOnClick:         boolOr(n.ResumeOnClick, true),
		ArtDownscaleWidth:     c.Artwork.DownscaleWidth,
		ArtDownscaleHeight:    c.Artwork.DownscaleHeight,
		QueueEnabled:          c.QueueEnabled(),
		PreloadArtwork:        c.Artwork.Preload,
		FastForwardInterval:   c.FastForwardInterval,
		RewindInterval:        c.RewindInterval,
	}
}

// QueueEnabled reports whether queue support is on.
func (c *Config) QueueEnabled() bool {
	return boolOr(c.Queue.Enabled, true)
}

// NotificationsEnabled reports whether desktop popups are on.
func (c *Config) NotificationsEnabled() bool {
	return boolOr(c.Notification.Enabled, true)
}

// MPRISEnabled reports whether the control-center integration is on.
func (c *Config) MPRISEnabled() bool {
	return boolOr(c.MPRIS.Enabled, true)
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/audiosession/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "audiosession", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
