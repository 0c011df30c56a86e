package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the inspector client needs to talk to the
// hazard service and the identity provider.
type Config struct {
	Service struct {
		BaseURL        string `yaml:"baseURL"`
		RequestTimeout int    `yaml:"requestTimeoutSeconds"`
	} `yaml:"service"`

	Identity struct {
		TokenURL    string `yaml:"tokenURL"`
		Email       string `yaml:"email"`
		Password    string `yaml:"password"`
		StaticToken string `yaml:"staticToken"`
	} `yaml:"identity"`

	Imaging struct {
		MaxUploadBytes int64  `yaml:"maxUploadBytes"`
		MaxDimension   int    `yaml:"maxDimension"`
		JPEGQuality    int    `yaml:"jpegQuality"`
		CaptureDevice  string `yaml:"captureDevice"`
		FFmpegPath     string `yaml:"ffmpegPath"`
	} `yaml:"imaging"`

	History struct {
		PageSize int `yaml:"pageSize"`
	} `yaml:"history"`

	Prefs struct {
		Path string `yaml:"path"`
	} `yaml:"prefs"`
}

const (
	// Base64 expands payloads by 4/3, so 3 MB of encoded image keeps the
	// request body under the service's limit.
	DefaultMaxUploadBytes = 3_000_000
	DefaultMaxDimension   = 1600
	DefaultJPEGQuality    = 70

	DefaultRequestTimeout = 60
	DefaultPageSize       = 10
)

// Load reads the YAML config at path and applies env overrides.
// A missing file is not an error; env vars alone can configure the client.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if cfg.Service.BaseURL == "" {
		return nil, fmt.Errorf("service baseURL is required (set service.baseURL or HSE_BASE_URL)")
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("HSE_BASE_URL"); v != "" {
		c.Service.BaseURL = v
	}
	if v := os.Getenv("HSE_TOKEN"); v != "" {
		c.Identity.StaticToken = v
	}
	if v := os.Getenv("HSE_TOKEN_URL"); v != "" {
		c.Identity.TokenURL = v
	}
	if v := os.Getenv("HSE_EMAIL"); v != "" {
		c.Identity.Email = v
	}
	if v := os.Getenv("HSE_PASSWORD"); v != "" {
		c.Identity.Password = v
	}
	if v := os.Getenv("HSE_CAPTURE_DEVICE"); v != "" {
		c.Imaging.CaptureDevice = v
	}
	if v := os.Getenv("HSE_PREFS_PATH"); v != "" {
		c.Prefs.Path = v
	}
	if v := os.Getenv("HSE_REQUEST_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Service.RequestTimeout = n
		}
	}
}

func (c *Config) applyDefaults() {
	if c.Service.RequestTimeout <= 0 {
		c.Service.RequestTimeout = DefaultRequestTimeout
	}
	if c.Imaging.MaxUploadBytes <= 0 {
		c.Imaging.MaxUploadBytes = DefaultMaxUploadBytes
	}
	if c.Imaging.MaxDimension <= 0 {
		c.Imaging.MaxDimension = DefaultMaxDimension
	}
	if c.Imaging.JPEGQuality <= 0 {
		c.Imaging.JPEGQuality = DefaultJPEGQuality
	}
	if c.History.PageSize <= 0 {
		c.History.PageSize = DefaultPageSize
	}
	if c.Prefs.Path == "" {
		c.Prefs.Path = "./inspector.db"
	}
}

// Timeout returns the per-request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Service.RequestTimeout) * time.Second
}
