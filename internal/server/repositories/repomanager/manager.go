package repomanager

import (
	"context"
	"database/sql"

	"github.com/reminisce-care/reminisce/internal/dbx"
	"github.com/reminisce-care/reminisce/internal/server/repositories/accounts"
	"github.com/reminisce-care/reminisce/internal/server/repositories/emergencylogs"
	"github.com/reminisce-care/reminisce/internal/server/repositories/medications"
	"github.com/reminisce-care/reminisce/internal/server/repositories/memories"
	"github.com/reminisce-care/reminisce/internal/server/repositories/routines"
	"github.com/reminisce-care/reminisce/internal/server/repositories/sessions"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Accounts(db dbx.DBTX) accounts.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Memories(db dbx.DBTX) memories.Repository
	Routines(db dbx.DBTX) routines.Repository
	Medications(db dbx.DBTX) medications.Repository
	EmergencyLogs(db dbx.DBTX) emergencylogs.Repository
}
