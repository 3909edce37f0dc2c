// Package migrations embeds the SQL migrations for the sqlite storage
// backend so the binary stays self-contained.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
