package jobnotes

import (
	"context"

	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
)

type Repository interface {
	ListByJob(ctx context.Context, userID, jobID string) ([]models.JobNote, error)
	Create(ctx context.Context, note *models.JobNote) (*models.JobNote, error)
	Delete(ctx context.Context, userID, jobID, noteID string) error
}
