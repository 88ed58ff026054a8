package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/dmitrijs2005/imguploader/internal/common"
	"github.com/dmitrijs2005/imguploader/internal/logging"
)

var ErrNoBackendURL = errors.New("backend URL is required (-u or IMGUP_BACKEND_URL)")

// Config holds runtime settings for the uploader CLI.
//
// RequestTimeout of 0 means uploads never time out. An empty HistoryDB
// disables the local upload history. Files are the positional arguments;
// when present the CLI uploads them once and exits.
type Config struct {
	BackendURL     string
	FormField      string
	URLField       string
	PartialPolicy  models.PartialPolicy
	RequestTimeout time.Duration
	StrictStatus   bool
	HistoryDB      string
	HistoryLimit   int
	CopyOnSuccess  bool
	LogLevel       string
	Files          []string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = ""
	c.FormField = common.DefaultFormFieldName
	c.URLField = common.DefaultURLFieldName
	c.PartialPolicy = models.PolicyProceed
	c.RequestTimeout = 0
	c.StrictStatus = false
	c.HistoryDB = defaultHistoryPath()
	c.HistoryLimit = 100
	c.CopyOnSuccess = false
	c.LogLevel = "warn"
	c.Files = nil
}

// HistoryEnabled reports whether uploads should be recorded.
func (c *Config) HistoryEnabled() bool {
	switch strings.ToLower(strings.TrimSpace(c.HistoryDB)) {
	case "", "off", "none":
		return false
	}
	return true
}

// Validate checks that the configuration can drive an upload.
func (c *Config) Validate() error {
	if c.BackendURL == "" {
		return ErrNoBackendURL
	}
	u, err := url.Parse(c.BackendURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("backend URL %q must be an absolute http(s) URL", c.BackendURL)
	}
	if strings.TrimSpace(c.FormField) == "" {
		return errors.New("form field name must not be empty")
	}
	if strings.TrimSpace(c.URLField) == "" {
		return errors.New("URL field name must not be empty")
	}
	if _, err := models.ParsePartialPolicy(string(c.PartialPolicy)); err != nil {
		return err
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout %s must not be negative", c.RequestTimeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config, then the environment (a .env file in the working directory
// is loaded first), then command-line flags. Later sources win.
// Malformed JSON or flags panic; an unusable result is returned as an
// error.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func defaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".imguploader", "history.db")
	}
	return filepath.Join(dir, "imguploader", "history.db")
}
