package medications

import (
	"context"

	"github.com/reminisce-care/reminisce/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, medication *models.Medication) (*models.Medication, error)
	Get(ctx context.Context, id int64) (*models.Medication, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*models.Medication, error)
	Toggle(ctx context.Context, id int64) (*models.Medication, error)
}
