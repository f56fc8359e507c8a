package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/server/models"
	"github.com/reminisce-care/reminisce/internal/server/repositories/repomanager"
)

// ScopeService decides which patient's data a caller may touch. Every
// resource operation goes through ResolvePatient, including mutations that
// address a resource by id.
type ScopeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewScopeService(db *sql.DB, m repomanager.RepositoryManager) *ScopeService {
	return &ScopeService{db: db, repomanager: m}
}

// ResolvePatient returns the single patient id the caller is authorized to
// act on. A patient always acts on itself; any requested id is ignored. A
// caretaker must name a linked patient explicitly, anything else yields
// ErrorForbidden. The role switch is exhaustive so a new role cannot slip
// past authorization unnoticed.
func (s *ScopeService) ResolvePatient(ctx context.Context, caller *models.Account, requestedPatientID int64) (int64, error) {

	switch caller.Role {
	case models.RolePatient:
		return caller.ID, nil

	case models.RoleCaretaker:
		if requestedPatientID == 0 {
			return 0, common.ErrorForbidden
		}
		patient, err := s.repomanager.Accounts(s.db).GetByID(ctx, requestedPatientID)
		if err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return 0, common.ErrorForbidden
			}
			return 0, common.ErrorInternal
		}
		if patient.Role != models.RolePatient {
			return 0, common.ErrorForbidden
		}
		if patient.CaretakerID == nil || *patient.CaretakerID != caller.ID {
			return 0, common.ErrorForbidden
		}
		return patient.ID, nil

	default:
		return 0, common.ErrorInternal
	}
}

// AuthorizeOwner verifies that the caller may act on a resource owned by
// ownerPatientID. Mutations addressing a resource by id re-check ownership
// here, so a caller cannot reach another patient's rows by guessing ids.
func (s *ScopeService) AuthorizeOwner(ctx context.Context, caller *models.Account, ownerPatientID int64) error {
	resolved, err := s.ResolvePatient(ctx, caller, ownerPatientID)
	if err != nil {
		return err
	}
	if resolved != ownerPatientID {
		return common.ErrorForbidden
	}
	return nil
}
