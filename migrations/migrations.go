// Package migrations embeds the SQL schema migrations for every supported
// database backend. Files are named NNN_name.sql and applied in order by the
// migration runner.
package migrations

import "embed"

//go:embed sqlite postgres
var FS embed.FS
