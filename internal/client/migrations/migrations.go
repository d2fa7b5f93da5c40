// Package migrations embeds the sqlite schema migrations for the client's
// local state database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
