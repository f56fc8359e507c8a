package memories

import (
	"context"

	"github.com/reminisce-care/reminisce/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, memory *models.Memory) (*models.Memory, error)
	Get(ctx context.Context, id int64) (*models.Memory, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*models.Memory, error)
	RotateStale(ctx context.Context, patientID int64) error
	UpsertAnswer(ctx context.Context, memoryID int64, answer string) (*models.MemoryAnswer, error)
	ListAnswers(ctx context.Context, memoryID int64) ([]*models.MemoryAnswer, error)
}
