package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/reminisce-care/reminisce/internal/common"
	"github.com/reminisce-care/reminisce/internal/logging"
	"github.com/reminisce-care/reminisce/internal/server/enrichment"
	"github.com/reminisce-care/reminisce/internal/server/models"
	"github.com/reminisce-care/reminisce/internal/server/repositories/repomanager"
)

// imageUploader is the slice of MediaService that memory creation needs.
type imageUploader interface {
	UploadImage(ctx context.Context, imageData string) (string, error)
}

// MemoryService manages photo memories and their reminiscence questions.
// Enrichment runs synchronously during creation but can never fail the
// write: the facade degrades to fixed fallbacks instead of erroring.
type MemoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	scope       *ScopeService
	media       imageUploader
	analyzer    enrichment.ImageAnalyzer
	questions   enrichment.QuestionGenerator
	logger      logging.Logger
}

func NewMemoryService(db *sql.DB, m repomanager.RepositoryManager, scope *ScopeService,
	media imageUploader, analyzer enrichment.ImageAnalyzer, questions enrichment.QuestionGenerator,
	logger logging.Logger) *MemoryService {
	return &MemoryService{
		db:          db,
		repomanager: m,
		scope:       scope,
		media:       media,
		analyzer:    analyzer,
		questions:   questions,
		logger:      logger,
	}
}

// Create uploads the photo, enriches it and persists the memory for the
// resolved patient.
func (s *MemoryService) Create(ctx context.Context, caller *models.Account, requestedPatientID int64, imageData, description string) (*models.Memory, error) {

	if strings.TrimSpace(imageData) == "" {
		return nil, common.ErrorValidation
	}

	patientID, err := s.scope.ResolvePatient(ctx, caller, requestedPatientID)
	if err != nil {
		return nil, err
	}

	imageURL, err := s.media.UploadImage(ctx, imageData)
	if err != nil {
		return nil, err
	}

	analysis := s.analyzer.Analyze(ctx, imageURL)

	if strings.TrimSpace(description) == "" {
		description = analysis.Caption
	}

	memory := &models.Memory{
		PatientID:   patientID,
		ImageURL:    imageURL,
		Description: description,
		Questions:   s.questions.Questions(ctx, analysis, description),
	}

	created, err := s.repomanager.Memories(s.db).Create(ctx, memory)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return created, nil
}

// List returns the resolved patient's memories, newest first, advancing
// each memory's active question once per day. A caretaker asking for a
// patient outside their roster gets an empty list, not an error.
func (s *MemoryService) List(ctx context.Context, caller *models.Account, requestedPatientID int64) ([]*models.Memory, error) {

	patientID, err := s.scope.ResolvePatient(ctx, caller, requestedPatientID)
	if err != nil {
		if errors.Is(err, common.ErrorForbidden) {
			return []*models.Memory{}, nil
		}
		return nil, err
	}

	repo := s.repomanager.Memories(s.db)

	if err := repo.RotateStale(ctx, patientID); err != nil {
		// a failed rotation should not hide the memories themselves
		s.logger.Warn(ctx, "question rotation failed", "patientID", patientID, "err", err)
	}

	list, err := repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if list == nil {
		list = []*models.Memory{}
	}

	return list, nil
}

// Answer records the caller's answer to a memory's active question for
// today. A second answer on the same day overwrites the first.
func (s *MemoryService) Answer(ctx context.Context, caller *models.Account, memoryID int64, answer string) (*models.MemoryAnswer, error) {

	if strings.TrimSpace(answer) == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Memories(s.db)

	memory, err := repo.Get(ctx, memoryID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if err := s.scope.AuthorizeOwner(ctx, caller, memory.PatientID); err != nil {
		return nil, err
	}

	recorded, err := repo.UpsertAnswer(ctx, memoryID, strings.TrimSpace(answer))
	if err != nil {
		return nil, common.ErrorInternal
	}

	return recorded, nil
}

// Answers returns the recorded answers for a memory, newest day first.
func (s *MemoryService) Answers(ctx context.Context, caller *models.Account, memoryID int64) ([]*models.MemoryAnswer, error) {

	repo := s.repomanager.Memories(s.db)

	memory, err := repo.Get(ctx, memoryID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	if err := s.scope.AuthorizeOwner(ctx, caller, memory.PatientID); err != nil {
		return nil, err
	}

	answers, err := repo.ListAnswers(ctx, memoryID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if answers == nil {
		answers = []*models.MemoryAnswer{}
	}

	return answers, nil
}
