// Package accounts provides a PostgreSQL-backed repository for caretaker and
// patient identities, including the caretaker-patient link.
package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/dbx"
	"github.com/reminisce-care/reminisce/internal/server/models"
)

const uniqueViolation = "23505"

// PostgresRepository implements Repository over dbx.DBTX
// (satisfied by *sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new account. A username collision yields common.ErrorConflict.
func (r *PostgresRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {

	query :=
		`INSERT INTO accounts (username, password_hash, salt, role, caretaker_id, phone_number)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		account.Username, account.PasswordHash, account.Salt,
		account.Role, account.CaretakerID, account.PhoneNumber,
	).Scan(&account.ID, &account.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, common.ErrorConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

// GetByID returns the account with the given id, or common.ErrorNotFound.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, salt, role, caretaker_id, phone_number, created_at
		 FROM accounts
		 WHERE id = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByUsername returns the account with the given username, or common.ErrorNotFound.
func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, salt, role, caretaker_id, phone_number, created_at
		 FROM accounts
		 WHERE username = $1
		 `

	return r.scanOne(r.db.QueryRowContext(ctx, query, username))
}

// PatientsOf returns the patient accounts linked to the caretaker, ordered by
// username.
func (r *PostgresRepository) PatientsOf(ctx context.Context, caretakerID int64) ([]*models.Account, error) {
	query :=
		`SELECT id, username, password_hash, salt, role, caretaker_id, phone_number, created_at
		 FROM accounts
		 WHERE caretaker_id = $1 AND role = 'patient'
		 ORDER BY username
		 `

	rows, err := r.db.QueryContext(ctx, query, caretakerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var patients []*models.Account
	for rows.Next() {
		a := &models.Account{}
		if err := rows.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Salt,
			&a.Role, &a.CaretakerID, &a.PhoneNumber, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		patients = append(patients, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return patients, nil
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Account, error) {
	a := &models.Account{}
	err := row.Scan(&a.ID, &a.Username, &a.PasswordHash, &a.Salt,
		&a.Role, &a.CaretakerID, &a.PhoneNumber, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}
