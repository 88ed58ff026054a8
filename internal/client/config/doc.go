// Package config loads runtime configuration for the uploader CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c or -config.
//  3. Environment variables, optionally from a .env file (see parseEnv).
//  4. Command-line flags (see parseFlags).
//
// Supported flags
//
//	-u string          upload endpoint URL (required)
//	-field string      multipart field name (default "file")
//	-url-field string  response field holding the URL (default "imageUrl")
//	-policy string     proceed | reject | confirm
//	-timeout duration  upload timeout, 0 disables
//	-strict            non-2xx responses fail the upload
//	-history string    history database path, "" disables
//	-history-limit int uploads kept in history
//	-copy              copy the link after a one-shot upload
//	-log-level string  debug | info | warn | error
//
// Positional arguments are image paths for a one-shot upload.
//
// # JSON schema
//
// Durations use timex.Duration, so they may be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "backend_url": "https://img.example/upload",
//	  "form_field": "file",
//	  "url_field": "imageUrl",
//	  "partial_policy": "proceed",
//	  "request_timeout": "30s",
//	  "strict_status": false,
//	  "history_db": "/home/me/.cache/imguploader/history.db",
//	  "history_limit": 100,
//	  "copy_on_success": true,
//	  "log_level": "info"
//	}
package config
