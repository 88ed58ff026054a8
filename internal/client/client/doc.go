// Package client bootstraps the uploader's local persistence.
//
// InitDatabase opens the SQLite history database with the pure-Go
// modernc.org/sqlite driver and applies the embedded goose migrations
// (RunMigrations). The returned Repositories bundle is what services and
// the CLI work against.
package client
