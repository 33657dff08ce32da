package ports

import (
	"context"

	"github.com/legacyapp/user-service/internal/core/domain"
)

// UserRepository is the persistence sink for registered users.
type UserRepository interface {
	// AddUser stores a fully built user. It may assign user.ID.
	AddUser(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
