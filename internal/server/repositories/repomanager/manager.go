package repomanager

import (
	"context"
	"database/sql"

	"cofre/internal/dbx"
	"cofre/internal/server/repositories/messages"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Messages(db dbx.DBTX) messages.Repository
}
