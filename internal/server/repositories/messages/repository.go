package messages

import (
	"context"

	"cofre/internal/server/models"
)

type Repository interface {
	Append(ctx context.Context, msg *models.Message) error
	Recent(ctx context.Context, limit int) ([]*models.Message, error)
}
