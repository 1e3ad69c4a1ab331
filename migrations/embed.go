package migrations

import "embed"

// FS holds the SQL migrations for each backend, one subdirectory per dialect.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
