// Package migrations embeds the station-service schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
