// Package sessions stores opaque session tokens issued at login.
package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/dbx"
	"github.com/reminisce-care/reminisce/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create saves a new session token for the account.
func (r *PostgresRepository) Create(ctx context.Context, accountID int64, token string, expires time.Time) error {

	query :=
		`INSERT INTO sessions (token, account_id, expires)
		 VALUES ($1, $2, $3)
		 `

	_, err := r.db.ExecContext(ctx, query, token, accountID, expires)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// Get returns the session with the given token, or common.ErrorNotFound.
// Expiry is not checked here; callers decide what a stale session means.
func (r *PostgresRepository) Get(ctx context.Context, token string) (*models.Session, error) {

	query :=
		`SELECT token, account_id, expires
		 FROM sessions
		 WHERE token = $1
		 `

	s := &models.Session{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(&s.Token, &s.AccountID, &s.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return s, nil
}

// Delete removes the session token. Deleting a token that does not exist is
// not an error.
func (r *PostgresRepository) Delete(ctx context.Context, token string) error {

	query := `DELETE FROM sessions WHERE token = $1`

	_, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

// DeleteExpired prunes sessions past their expiry.
func (r *PostgresRepository) DeleteExpired(ctx context.Context) error {

	query := `DELETE FROM sessions WHERE expires < now()`

	_, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
