// Package migrations embeds the SQL schema migrations for the SQL backends.
package migrations

import "embed"

// FS holds one directory of NNN_name.sql files per dialect: sqlite/ and postgres/.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS
