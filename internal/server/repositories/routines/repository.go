package routines

import (
	"context"

	"github.com/reminisce-care/reminisce/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, routine *models.Routine) (*models.Routine, error)
	Get(ctx context.Context, id int64) (*models.Routine, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*models.Routine, error)
	Toggle(ctx context.Context, id int64) (*models.Routine, error)
}
