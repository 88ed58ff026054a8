package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/imguploader/internal/client/models"
	"github.com/dmitrijs2005/imguploader/internal/flagx"
	"github.com/dmitrijs2005/imguploader/internal/timex"
)

// JsonConfig is the on-disk form of Config. Pointer fields distinguish an
// absent key from an explicit zero value, so a file can switch
// strict_status off or clear history_db.
type JsonConfig struct {
	BackendURL     *string         `json:"backend_url"`
	FormField      *string         `json:"form_field"`
	URLField       *string         `json:"url_field"`
	PartialPolicy  *string         `json:"partial_policy"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	StrictStatus   *bool           `json:"strict_status"`
	HistoryDB      *string         `json:"history_db"`
	HistoryLimit   *int            `json:"history_limit"`
	CopyOnSuccess  *bool           `json:"copy_on_success"`
	LogLevel       *string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c or -config. Without
// either flag it does nothing. Read and decode errors panic.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	setIf(&cfg.BackendURL, jc.BackendURL)
	setIf(&cfg.FormField, jc.FormField)
	setIf(&cfg.URLField, jc.URLField)
	if jc.PartialPolicy != nil {
		cfg.PartialPolicy = models.PartialPolicy(*jc.PartialPolicy)
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setIf(&cfg.StrictStatus, jc.StrictStatus)
	setIf(&cfg.HistoryDB, jc.HistoryDB)
	setIf(&cfg.HistoryLimit, jc.HistoryLimit)
	setIf(&cfg.CopyOnSuccess, jc.CopyOnSuccess)
	setIf(&cfg.LogLevel, jc.LogLevel)
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
