// Package users stores backend accounts. Job notes and attachment keys are
// scoped by the account id issued here.
package users

import (
	"context"

	"github.com/dmitrijs2005/jobkeeper/internal/server/models"
)

// Repository persists accounts. Create returns shared.ErrorLoginAlreadyExists
// for a taken username; GetUserByLogin returns common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
