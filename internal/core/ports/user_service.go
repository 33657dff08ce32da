package ports

import (
	"context"
	"time"

	"github.com/legacyapp/user-service/internal/core/domain"
)

// RegisterUserInput carries the raw registration fields.
type RegisterUserInput struct {
	FirstName   string
	LastName    string
	Email       string
	DateOfBirth time.Time
	ClientID    int
}

// UserService defines use-case operations for users.
type UserService interface {
	// RegisterUser validates the input, applies the client's credit policy and
	// persists the user. Gate failures satisfy domain.IsRejection.
	RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// ClientService exposes read access to clients.
type ClientService interface {
	GetClient(ctx context.Context, id int) (*domain.Client, error)
}
