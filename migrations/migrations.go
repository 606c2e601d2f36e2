// Package migrations carries the SurrealQL schema applied at server
// startup. Statements are idempotent (IF NOT EXISTS) so re-running on
// every boot is safe.
package migrations

import (
	_ "embed"
)

//go:embed 0001_init.surql
var Schema string
