// Package db embeds the goose migrations so binaries do not depend on the working directory.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the root of Migrations.
const MigrationsDir = "migrations"
