// Package migrations holds the goose SQL migrations for the sqlite store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
