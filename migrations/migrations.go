// Package migrations embeds the schema scripts applied at startup.
package migrations

import _ "embed"

//go:embed 001_init.sql
var Schema string
