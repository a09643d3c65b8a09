// Package migrations embeds the SQL migration files applied by infra.Migrate
// at server start and by DB-backed tests.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
