// Package migrations embeds the SQL schema migrations so the binary can
// apply them on startup without shipping loose files.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
