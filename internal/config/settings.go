package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up next to the executable when no path is given.
const DefaultFileName = "timebg.yaml"

const (
	defaultTimePointsFile = "time_points_config.json"
	defaultImagesFile     = "images_config.json"
	defaultLogFile        = "timebased_bg.log"
	defaultPollInterval   = 60
	defaultChangeCheck    = 1
	defaultErrorBackoff   = 5
)

type Settings struct {
	DataDir             string `yaml:"data_dir" toml:"data_dir"`
	TimePointsFile      string `yaml:"time_points_file" toml:"time_points_file"`
	ImagesFile          string `yaml:"images_file" toml:"images_file"`
	LogFile             string `yaml:"log_file" toml:"log_file"`
	PollIntervalSeconds int    `yaml:"poll_interval_seconds" toml:"poll_interval_seconds"`
	ChangeCheckSeconds  int    `yaml:"change_check_seconds" toml:"change_check_seconds"`
	ErrorBackoffSeconds int    `yaml:"error_backoff_seconds" toml:"error_backoff_seconds"`
	MetricsTextfile     string `yaml:"metrics_textfile" toml:"metrics_textfile"`
}

// Load reads the settings file at path. A missing file yields defaults.
// Relative paths inside the file resolve against the data directory, which
// itself defaults to baseDir.
func Load(path, baseDir string) (Settings, error) {
	var s Settings
	if strings.TrimSpace(path) == "" {
		path = filepath.Join(baseDir, DefaultFileName)
	}
	resolved := mustExpand(path)

	data, err := os.ReadFile(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Settings{}, fmt.Errorf("read settings: %w", err)
	default:
		if strings.EqualFold(filepath.Ext(resolved), ".toml") {
			err = toml.Unmarshal(data, &s)
		} else {
			err = yaml.Unmarshal(data, &s)
		}
		if err != nil {
			return Settings{}, fmt.Errorf("parse settings %s: %w", resolved, err)
		}
	}

	s.applyDefaults(baseDir)
	return s, nil
}

func (s *Settings) applyDefaults(baseDir string) {
	s.DataDir = strings.TrimSpace(s.DataDir)
	if s.DataDir == "" {
		s.DataDir = baseDir
	}
	s.DataDir = mustExpand(s.DataDir)

	s.TimePointsFile = s.resolve(s.TimePointsFile, defaultTimePointsFile)
	s.ImagesFile = s.resolve(s.ImagesFile, defaultImagesFile)
	s.LogFile = s.resolve(s.LogFile, defaultLogFile)
	if strings.TrimSpace(s.MetricsTextfile) != "" {
		s.MetricsTextfile = s.resolve(s.MetricsTextfile, "")
	}

	if s.PollIntervalSeconds <= 0 {
		s.PollIntervalSeconds = defaultPollInterval
	}
	if s.ChangeCheckSeconds <= 0 {
		s.ChangeCheckSeconds = defaultChangeCheck
	}
	if s.ChangeCheckSeconds > s.PollIntervalSeconds {
		s.ChangeCheckSeconds = s.PollIntervalSeconds
	}
	if s.ErrorBackoffSeconds <= 0 {
		s.ErrorBackoffSeconds = defaultErrorBackoff
	}
}

// WithDataDir moves every document that was left at its default location
// into dir.
func (s Settings) WithDataDir(dir string) Settings {
	dir = mustExpand(dir)
	rebase := func(p string) string {
		if filepath.Dir(p) == s.DataDir {
			return filepath.Join(dir, filepath.Base(p))
		}
		return p
	}
	s.TimePointsFile = rebase(s.TimePointsFile)
	s.ImagesFile = rebase(s.ImagesFile)
	s.LogFile = rebase(s.LogFile)
	if s.MetricsTextfile != "" {
		s.MetricsTextfile = rebase(s.MetricsTextfile)
	}
	s.DataDir = dir
	return s
}

func (s Settings) PollInterval() time.Duration {
	return time.Duration(s.PollIntervalSeconds) * time.Second
}

func (s Settings) ChangeCheck() time.Duration {
	return time.Duration(s.ChangeCheckSeconds) * time.Second
}

func (s Settings) ErrorBackoff() time.Duration {
	return time.Duration(s.ErrorBackoffSeconds) * time.Second
}

func (s Settings) resolve(p, def string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		p = def
	}
	if strings.HasPrefix(p, "~") {
		return mustExpand(p)
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(s.DataDir, p)
	}
	return filepath.Clean(p)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
