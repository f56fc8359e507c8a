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

// MedicationParams carries the medication creation fields.
type MedicationParams struct {
	Name      string
	Dosage    string
	TimeOfDay string
	Frequency string
}

// MedicationService manages a patient's medication schedule.
type MedicationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	scope       *ScopeService
}

func NewMedicationService(db *sql.DB, m repomanager.RepositoryManager, scope *ScopeService) *MedicationService {
	return &MedicationService{db: db, repomanager: m, scope: scope}
}

func (s *MedicationService) Create(ctx context.Context, caller *models.Account, requestedPatientID int64, params MedicationParams) (*models.Medication, error) {

	name := strings.TrimSpace(params.Name)
	if name == "" {
		return nil, common.ErrorValidation
	}

	patientID, err := s.scope.ResolvePatient(ctx, caller, requestedPatientID)
	if err != nil {
		return nil, err
	}

	medication := &models.Medication{PatientID: patientID, Name: name}
	if d := strings.TrimSpace(params.Dosage); d != "" {
		medication.Dosage = &d
	}
	if t := strings.TrimSpace(params.TimeOfDay); t != "" {
		medication.TimeOfDay = &t
	}
	if f := strings.TrimSpace(params.Frequency); f != "" {
		medication.Frequency = &f
	}

	created, err := s.repomanager.Medications(s.db).Create(ctx, medication)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return created, nil
}

// List returns the resolved patient's medications, newest first.
// Unauthorized patient ids yield an empty list.
func (s *MedicationService) List(ctx context.Context, caller *models.Account, requestedPatientID int64) ([]*models.Medication, error) {

	patientID, err := s.scope.ResolvePatient(ctx, caller, requestedPatientID)
	if err != nil {
		if errors.Is(err, common.ErrorForbidden) {
			return []*models.Medication{}, nil
		}
		return nil, err
	}

	list, err := s.repomanager.Medications(s.db).ListByPatient(ctx, patientID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if list == nil {
		list = []*models.Medication{}
	}

	return list, nil
}

// Toggle flips the medication's taken flag after re-checking ownership.
func (s *MedicationService) Toggle(ctx context.Context, caller *models.Account, id int64) (*models.Medication, error) {

	repo := s.repomanager.Medications(s.db)

	medication, err := repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if err := s.scope.AuthorizeOwner(ctx, caller, medication.PatientID); err != nil {
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
