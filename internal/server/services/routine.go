package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/server/models"
	"github.com/reminisce-care/reminisce/internal/server/repositories/repomanager"
)

// RoutineParams carries the routine creation fields.
type RoutineParams struct {
	Task      string
	TimeOfDay string
	Frequency string
}

// RoutineService manages a patient's daily routine checklist.
type RoutineService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	scope       *ScopeService
}

func NewRoutineService(db *sql.DB, m repomanager.RepositoryManager, scope *ScopeService) *RoutineService {
	return &RoutineService{db: db, repomanager: m, scope: scope}
}

func (s *RoutineService) Create(ctx context.Context, caller *models.Account, requestedPatientID int64, params RoutineParams) (*models.Routine, error) {

	task := strings.TrimSpace(params.Task)
	if task == "" {
		return nil, common.ErrorValidation
	}

	patientID, err := s.scope.ResolvePatient(ctx, caller, requestedPatientID)
	if err != nil {
		return nil, err
	}

	routine := &models.Routine{PatientID: patientID, Task: task}
	if t := strings.TrimSpace(params.TimeOfDay); t != "" {
		routine.TimeOfDay = &t
	}
	if f := strings.TrimSpace(params.Frequency); f != "" {
		routine.Frequency = &f
	}

	created, err := s.repomanager.Routines(s.db).Create(ctx, routine)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return created, nil
}

// List returns the resolved patient's routines, newest first. Unauthorized
// patient ids yield an empty list.
func (s *RoutineService) List(ctx context.Context, caller *models.Account, requestedPatientID int64) ([]*models.Routine, error) {

	patientID, err := s.scope.ResolvePatient(ctx, caller, requestedPatientID)
	if err != nil {
		if errors.Is(err, common.ErrorForbidden) {
			return []*models.Routine{}, nil
		}
		return nil, err
	}

	list, err := s.repomanager.Routines(s.db).ListByPatient(ctx, patientID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if list == nil {
		list = []*models.Routine{}
	}

	return list, nil
}

// Toggle flips the routine's completion flag. Ownership is re-checked here:
// addressing a routine by id is not enough to mutate it.
func (s *RoutineService) Toggle(ctx context.Context, caller *models.Account, id int64) (*models.Routine, error) {

	repo := s.repomanager.Routines(s.db)

	routine, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if err := s.scope.AuthorizeOwner(ctx, caller, routine.PatientID); err != nil {
		return nil, err
	}

	updated, err := repo.Toggle(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	return updated, nil
}
