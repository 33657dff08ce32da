package ports

import (
	"context"

	"github.com/legacyapp/user-service/internal/core/domain"
)

// ClientRepository resolves the client a user registers under.
type ClientRepository interface {
	// GetByID returns domain.ErrClientNotFound when no client has the given id.
	GetByID(ctx context.Context, id int) (*domain.Client, error)
}
