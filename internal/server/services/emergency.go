package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/server/models"
	"github.com/reminisce-care/reminisce/internal/server/repositories/repomanager"
)

const sosStatus = "SOS triggered"

// CaretakerContact is returned with a triggered SOS so the client can offer
// a direct call to the caretaker.
type CaretakerContact struct {
	Username    string  `json:"username"`
	PhoneNumber *string `json:"phoneNumber"`
}

// EmergencyService manages SOS events. Only patients raise them; every
// trigger creates a new row, with no deduplication of rapid repeats.
type EmergencyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	scope       *ScopeService
}

func NewEmergencyService(db *sql.DB, m repomanager.RepositoryManager, scope *ScopeService) *EmergencyService {
	return &EmergencyService{db: db, repomanager: m, scope: scope}
}

// Trigger raises an SOS for the calling patient and returns the new log
// together with the linked caretaker's contact details, when a caretaker
// is linked.
func (s *EmergencyService) Trigger(ctx context.Context, caller *models.Account) (*models.EmergencyLog, *CaretakerContact, error) {

	switch caller.Role {
	case models.RolePatient:
	case models.RoleCaretaker:
		return nil, nil, common.ErrorForbidden
	default:
		return nil, nil, common.ErrorInternal
	}

	log, err := s.repomanager.EmergencyLogs(s.db).Create(ctx, caller.ID, sosStatus)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}

	var contact *CaretakerContact
	if caller.CaretakerID != nil {
		caretaker, err := s.repomanager.Accounts(s.db).GetByID(ctx, *caller.CaretakerID)
		if err == nil {
			contact = &CaretakerContact{Username: caretaker.Username, PhoneNumber: caretaker.PhoneNumber}
		}
	}

	return log, contact, nil
}

// List returns the resolved patient's SOS events, newest first.
// Unauthorized patient ids yield an empty list.
func (s *EmergencyService) List(ctx context.Context, caller *models.Account, requestedPatientID int64) ([]*models.EmergencyLog, error) {

	patientID, err := s.scope.ResolvePatient(ctx, caller, requestedPatientID)
	if err != nil {
		if errors.Is(err, common.ErrorForbidden) {
			return []*models.EmergencyLog{}, nil
		}
		return nil, err
	}

	list, err := s.repomanager.EmergencyLogs(s.db).ListByPatient(ctx, patientID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if list == nil {
		list = []*models.EmergencyLog{}
	}

	return list, nil
}

// Resolve marks the SOS handled after re-checking that the caller is
// authorized for the owning patient.
func (s *EmergencyService) Resolve(ctx context.Context, caller *models.Account, id int64) (*models.EmergencyLog, error) {

	repo := s.repomanager.EmergencyLogs(s.db)

	log, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if err := s.scope.AuthorizeOwner(ctx, caller, log.PatientID); err != nil {
		return nil, err
	}

	resolved, err := repo.Resolve(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return resolved, nil
}
