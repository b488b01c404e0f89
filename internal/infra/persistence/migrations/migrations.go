// Package migrations embeds the SQL schema migrations applied at startup.
package migrations

import "embed"

// Migrations holds the goose migration files, ordered by filename.
//
//go:embed *.sql
var Migrations embed.FS
