package storage

import (
	"strings"

	"github.com/ehunter/skycast/internal/storage/postgres"
	"github.com/ehunter/skycast/internal/storage/sqlite"
)

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)

// New selects a provider by connection string: postgres:// (or postgresql://)
// DSNs get the Postgres store, anything else is treated as a SQLite path.
func New(db string) Provider {
	if strings.HasPrefix(db, "postgres://") || strings.HasPrefix(db, "postgresql://") {
		return postgres.New(db)
	}
	return sqlite.NewStore(db)
}
