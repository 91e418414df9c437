package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/handiism/webfont-packager/internal/http"
	"github.com/handiism/webfont-packager/internal/stylesheet"
	"gopkg.in/yaml.v3"
)

// Settings holds all configuration options.
type Settings struct {
	// Catalog settings
	APIBaseURL     string  `json:"api_base_url" yaml:"api_base_url"`
	UserAgent      string  `json:"user_agent" yaml:"user_agent"`
	RequestTimeout float64 `json:"request_timeout" yaml:"request_timeout"` // seconds

	// Output settings
	PackagesPath      string `json:"packages_path" yaml:"packages_path"`
	PackageNameFormat string `json:"package_name_format" yaml:"package_name_format"`
	PackageVersion    string `json:"package_version" yaml:"package_version"`
	License           string `json:"license" yaml:"license"`
	Author            string `json:"author" yaml:"author"`
	RepositoryURL     string `json:"repository_url" yaml:"repository_url"`

	// Concurrency settings
	MaxConcurrentFonts     int `json:"max_concurrent_fonts" yaml:"max_concurrent_fonts"`
	MaxConcurrentDownloads int `json:"max_concurrent_downloads" yaml:"max_concurrent_downloads"`

	// Retry settings
	DownloadMaxRetries    int     `json:"download_max_retries" yaml:"download_max_retries"`
	DownloadRetryCooldown float64 `json:"download_retry_cooldown" yaml:"download_retry_cooldown"`
	DownloadRetryExponent float64 `json:"download_retry_exponent" yaml:"download_retry_exponent"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		APIBaseURL:     "https://google-webfonts-helper.herokuapp.com/api/fonts/",
		UserAgent:      "webfont-packager",
		RequestTimeout: 60,

		PackagesPath:      "packages",
		PackageNameFormat: "typeface-{id}",
		PackageVersion:    "1.0.0",
		License:           "MIT",
		Author:            "",
		RepositoryURL:     "",

		MaxConcurrentFonts:     12,
		MaxConcurrentDownloads: 0,

		DownloadMaxRetries:    3,
		DownloadRetryCooldown: 0.2,
		DownloadRetryExponent: 4.0,
	}
}

// Load reads settings from a JSON or YAML file.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if isYAML(path) {
		err = yaml.Unmarshal(data, settings)
	} else {
		err = json.Unmarshal(data, settings)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON or YAML file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate reports settings that cannot work.
func (s *Settings) Validate() error {
	if s.APIBaseURL == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if s.PackagesPath == "" {
		return fmt.Errorf("packages_path must not be empty")
	}
	if s.MaxConcurrentFonts < 1 {
		return fmt.Errorf("max_concurrent_fonts must be at least 1, got %d", s.MaxConcurrentFonts)
	}
	if s.DownloadMaxRetries < 1 {
		return fmt.Errorf("download_max_retries must be at least 1, got %d", s.DownloadMaxRetries)
	}
	return nil
}

// ToClientConfig converts settings to the HTTP client configuration.
func (s *Settings) ToClientConfig() *http.ClientConfig {
	return &http.ClientConfig{
		UserAgent:     s.UserAgent,
		Timeout:       time.Duration(s.RequestTimeout * float64(time.Second)),
		MaxRetries:    s.DownloadMaxRetries,
		RetryCooldown: time.Duration(s.DownloadRetryCooldown * float64(time.Second)),
		RetryExponent: s.DownloadRetryExponent,
	}
}

// ToManifestConfig converts settings to the manifest configuration.
func (s *Settings) ToManifestConfig() *stylesheet.ManifestConfig {
	return &stylesheet.ManifestConfig{
		NameFormat:    s.PackageNameFormat,
		Version:       s.PackageVersion,
		License:       s.License,
		Author:        s.Author,
		RepositoryURL: s.RepositoryURL,
	}
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
