// Package migrations embeds the development schema for the clinic tables.
// Production schema is owned by the clinic management system; these exist so
// the assistant can be developed and tested against a local database.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
