package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/jobkeeper/internal/dbx"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/jobnotes"
	"github.com/dmitrijs2005/jobkeeper/internal/server/repositories/users"
)

// RepositoryManager binds repositories to a handle, either the pool or a
// transaction opened with dbx.WithTx.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	JobNotes(db dbx.DBTX) jobnotes.Repository
}
