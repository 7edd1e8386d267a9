// Package appfs embeds the application's static assets: SQL migrations and email templates.
package appfs

import "embed"

//go:embed migrations all:templates
var FS embed.FS

const MigrationsDir = "migrations"
