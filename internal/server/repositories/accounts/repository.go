package accounts

import (
	"context"

	"github.com/reminisce-care/reminisce/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	PatientsOf(ctx context.Context, caretakerID int64) ([]*models.Account, error)
}
