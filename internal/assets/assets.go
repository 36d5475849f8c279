// Package assets embeds files the binary needs at runtime, so a single
// executable can bootstrap its own database schema.
package assets

import "embed"

// MigrationsFS holds the SQL migration pairs applied on startup.
//
//go:embed all:migrations
var MigrationsFS embed.FS
