// Package db wires repository implementations to their backing storage and
// owns schema migrations.
package db

import (
	"context"
	"database/sql"

	"github.com/famly-app/identity/internal/server/accounts"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Accounts() accounts.Repository
}
