// Package services contains server-side business logic. This file implements
// IdentityService: registration, login, session issue/verify and the
// caretaker-patient roster.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/cryptox"
	"github.com/reminisce-care/reminisce/internal/dbx"
	"github.com/reminisce-care/reminisce/internal/server/config"
	"github.com/reminisce-care/reminisce/internal/server/models"
	"github.com/reminisce-care/reminisce/internal/server/repositories/repomanager"
)

const sessionTokenBytes = 32

// RegisterParams carries the registration request fields.
type RegisterParams struct {
	Username          string
	Password          string
	Role              models.Role
	CaretakerUsername string
	PhoneNumber       string
}

// IdentityService provides account and session operations:
// - Register: create accounts, linking patients to their caretaker
// - Login: verify credentials and establish a session
// - Authenticate: resolve a session token to an account
type IdentityService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	sessionValidity time.Duration
}

// NewIdentityService constructs an IdentityService using repositories and
// server config.
func NewIdentityService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *IdentityService {
	return &IdentityService{
		db:              db,
		repomanager:     m,
		sessionValidity: cfg.SessionValidityDuration,
	}
}

// Register creates a new account and logs it in. A patient registration must
// name an existing caretaker account; the new account is linked to it.
func (s *IdentityService) Register(ctx context.Context, params RegisterParams) (*models.Account, *models.Session, error) {

	username := strings.TrimSpace(params.Username)
	if username == "" || params.Password == "" {
		return nil, nil, common.ErrorValidation
	}
	if !params.Role.Valid() {
		return nil, nil, common.ErrorValidation
	}

	account := &models.Account{Username: username, Role: params.Role}

	if phone := strings.TrimSpace(params.PhoneNumber); phone != "" {
		account.PhoneNumber = &phone
	}

	if params.Role == models.RolePatient {
		caretakerUsername := strings.TrimSpace(params.CaretakerUsername)
		if caretakerUsername == "" {
			return nil, nil, common.ErrCaretakerRequired
		}
		caretaker, err := s.repomanager.Accounts(s.db).GetByUsername(ctx, caretakerUsername)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return nil, nil, common.ErrCaretakerNotFound
			}
			return nil, nil, common.ErrorInternal
		}
		if caretaker.Role != models.RoleCaretaker {
			return nil, nil, common.ErrCaretakerWrongRole
		}
		account.CaretakerID = &caretaker.ID
	}

	hash, salt, err := cryptox.HashPassword(params.Password)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}
	account.PasswordHash = hash
	account.Salt = salt

	var session *models.Session
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		created, err := s.repomanager.Accounts(tx).Create(ctx, account)
		if err != nil {
			return err
		}
		account = created
		session, err = s.createSession(ctx, tx, account.ID)
		return err
	}); err != nil {
		if errors.Is(err, common.ErrorConflict) {
			return nil, nil, common.ErrorConflict
		}
		return nil, nil, common.ErrorInternal
	}

	return account, session, nil
}

// Login verifies the credentials and establishes a new session. A missing
// account and a wrong password are indistinguishable to the caller.
func (s *IdentityService) Login(ctx context.Context, username, password string) (*models.Account, *models.Session, error) {

	account, err := s.repomanager.Accounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, nil, common.ErrorUnauthenticated
		}
		return nil, nil, common.ErrorInternal
	}

	if !cryptox.VerifyPassword(password, account.PasswordHash, account.Salt) {
		return nil, nil, common.ErrorUnauthenticated
	}

	session, err := s.createSession(ctx, s.db, account.ID)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	return account, session, nil
}

// Logout destroys the session. An unknown token is not an error.
func (s *IdentityService) Logout(ctx context.Context, token string) error {
	if err := s.repomanager.Sessions(s.db).Delete(ctx, token); err != nil {
		return common.ErrorInternal
	}
	return nil
}

// Authenticate resolves a session token to its account. Expired sessions are
// deleted on sight.
func (s *IdentityService) Authenticate(ctx context.Context, token string) (*models.Account, error) {

	if token == "" {
		return nil, common.ErrorUnauthenticated
	}

	sessionRepo := s.repomanager.Sessions(s.db)

	session, err := sessionRepo.Get(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthenticated
		}
		return nil, common.ErrorInternal
	}

	if session.Expires.Before(time.Now()) {
		_ = sessionRepo.Delete(ctx, token)
		return nil, common.ErrSessionExpired
	}

	account, err := s.repomanager.Accounts(s.db).GetByID(ctx, session.AccountID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthenticated
		}
		return nil, common.ErrorInternal
	}

	return account, nil
}

// PatientsOf lists the patient accounts linked to the calling caretaker.
// Patients have no roster of their own.
func (s *IdentityService) PatientsOf(ctx context.Context, caller *models.Account) ([]*models.Account, error) {

	switch caller.Role {
	case models.RoleCaretaker:
		patients, err := s.repomanager.Accounts(s.db).PatientsOf(ctx, caller.ID)
		if err != nil {
			return nil, common.ErrorInternal
		}
		return patients, nil
	case models.RolePatient:
		return nil, common.ErrorForbidden
	default:
		return nil, common.ErrorInternal
	}
}

func (s *IdentityService) createSession(ctx context.Context, db dbx.DBTX, accountID int64) (*models.Session, error) {

	token, err := common.MakeRandHexString(sessionTokenBytes)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		Token:     token,
		AccountID: accountID,
		Expires:   time.Now().Add(s.sessionValidity),
	}

	if err := s.repomanager.Sessions(db).Create(ctx, accountID, token, session.Expires); err != nil {
		return nil, err
	}

	return session, nil
}
