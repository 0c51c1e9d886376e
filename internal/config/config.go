package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"burrow/internal/logger"
)

// Config holds all burrow configuration, mostly the external tools used to
// open each file category.
type Config struct {
	ShowHidden bool `json:"show_hidden"`

	Editor           string `json:"editor"`
	ImageViewer      string `json:"image_viewer"`
	PdfViewer        string `json:"pdf_viewer"`
	MediaPlayer      string `json:"media_player"`
	MediaProbe       string `json:"media_probe"`
	MetadataTool     string `json:"metadata_tool"`
	DependencyLister string `json:"dependency_lister"`

	// Media at or below this duration plays detached in the background;
	// anything longer takes over the terminal.
	LongMediaSeconds float64 `json:"long_media_seconds"`

	// AutoExecOnActivate makes activating a selected executable run it with
	// the same key used to enter directories. Inherited behavior, kept as a
	// deliberate, reviewable policy: turn it off to get an error message
	// instead of execution.
	AutoExecOnActivate bool `json:"auto_exec_on_activate"`
}

// Default returns the stock configuration. The editor falls back to $EDITOR
// before vi.
func Default() *Config {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	return &Config{
		ShowHidden:         true,
		Editor:             editor,
		ImageViewer:        "feh",
		PdfViewer:          "zathura",
		MediaPlayer:        "mpv",
		MediaProbe:         "ffprobe",
		MetadataTool:       "mediainfo",
		DependencyLister:   "ldd",
		LongMediaSeconds:   1.5,
		AutoExecOnActivate: true,
	}
}

// Load reads config from ~/.config/burrow/burrow-config.json, writing the
// defaults on first run. A broken config file falls back to defaults.
func Load() *Config {
	defaults := Default()

	path, err := Path()
	if err != nil {
		logger.Error("Failed to locate config: %v", err)
		return defaults
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if err := Save(defaults); err != nil {
			logger.Warn("Failed to save default config: %v", err)
		}
		return defaults
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		logger.Warn("Failed to parse config file %s: %v, using defaults", path, err)
		return defaults
	}

	if cfg.LongMediaSeconds <= 0 {
		cfg.LongMediaSeconds = defaults.LongMediaSeconds
	}
	if cfg.Editor == "" {
		cfg.Editor = defaults.Editor
	}

	return cfg
}

// Save writes config to ~/.config/burrow/burrow-config.json.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return fmt.Errorf("cannot locate config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		logger.Error("Failed to create config directory: %v", err)
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		logger.Error("Failed to write config file %s: %v", path, err)
		return fmt.Errorf("cannot write config file: %w", err)
	}

	return nil
}

// Path returns the config file location.
func Path() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "burrow", "burrow-config.json"), nil
}
