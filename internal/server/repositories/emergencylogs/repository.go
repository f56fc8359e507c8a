package emergencylogs

import (
	"context"

	"github.com/reminisce-care/reminisce/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, patientID int64, status string) (*models.EmergencyLog, error)
	Get(ctx context.Context, id int64) (*models.EmergencyLog, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*models.EmergencyLog, error)
	Resolve(ctx context.Context, id int64) (*models.EmergencyLog, error)
}
