// Package migrations holds the goose SQL migrations, embedded so the server
// binary can apply them on startup.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
