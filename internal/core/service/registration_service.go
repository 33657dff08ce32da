package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/legacyapp/user-service/internal/core/domain"
	"github.com/legacyapp/user-service/internal/core/ports"
	"github.com/legacyapp/user-service/pkg/logger"
)

// Policy holds the registration thresholds.
type Policy struct {
	MinimumAge         int
	MinimumCreditLimit int
}

// DefaultPolicy returns the thresholds defined by the domain.
func DefaultPolicy() Policy {
	return Policy{
		MinimumAge:         domain.MinimumAge,
		MinimumCreditLimit: domain.MinimumCreditLimit,
	}
}

// RegistrationService validates registrations, applies the client's credit
// policy and hands accepted users to the persistence sink.
type RegistrationService struct {
	clients ports.ClientRepository
	credit  ports.CreditService
	users   ports.UserRepository
	policy  Policy
	logger  zerolog.Logger
	now     func() time.Time
}

func NewRegistrationService(
	clients ports.ClientRepository,
	credit ports.CreditService,
	users ports.UserRepository,
	policy Policy,
	logger zerolog.Logger,
) *RegistrationService {
	if policy.MinimumAge <= 0 {
		policy.MinimumAge = domain.MinimumAge
	}
	if policy.MinimumCreditLimit <= 0 {
		policy.MinimumCreditLimit = domain.MinimumCreditLimit
	}
	return &RegistrationService{
		clients: clients,
		credit:  credit,
		users:   users,
		policy:  policy,
		logger:  logger,
		now:     time.Now,
	}
}

// RegisterUser runs the registration gates in order and persists the user
// once all of them pass. Gate failures satisfy domain.IsRejection; failures of
// the client lookup, the credit bureau or the sink are returned wrapped.
func (s *RegistrationService) RegisterUser(ctx context.Context, in ports.RegisterUserInput) (*domain.User, error) {
	now := s.now()

	// 1. Input validation. Nothing is looked up until the input is clean.
	if err := s.validate(in, now); err != nil {
		return nil, s.rejected(in, err)
	}

	// 2. Client resolution.
	client, err := s.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, s.rejected(in, err)
		}
		return nil, fmt.Errorf("register user: get client %d: %w", in.ClientID, err)
	}

	user := &domain.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		EmailAddress: in.Email,
		DateOfBirth:  in.DateOfBirth,
		Client:       *client,
	}

	// 3. Credit limit assignment.
	if err := s.assignCreditLimit(ctx, user); err != nil {
		if domain.IsRejection(err) {
			return nil, s.rejected(in, err)
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	// 4. Credit gate. Unlimited users are never compared against the minimum.
	if user.HasCreditLimit && user.CreditLimit < s.policy.MinimumCreditLimit {
		err := domain.Reject(fmt.Errorf("%w: %d < %d", domain.ErrCreditLimitTooLow, user.CreditLimit, s.policy.MinimumCreditLimit))
		return nil, s.rejected(in, err)
	}

	// 5. Persistence, exactly once.
	user.ID = uuid.NewString()
	user.CreatedAt = now.UTC()
	if err := s.users.AddUser(ctx, user); err != nil {
		s.logger.Error().Err(err).Int("client_id", in.ClientID).Msg("failed to persist user")
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.logger.Info().
		Str("user_id", user.ID).
		Str("email", logger.RedactEmail(user.EmailAddress)).
		Int("client_id", client.ID).
		Str("client_type", client.Type.String()).
		Bool("has_credit_limit", user.HasCreditLimit).
		Msg("user registered")

	return user, nil
}

// AddUser is the boolean form of RegisterUser: it reports false for any
// rejection and only returns an error when a collaborator fails.
func (s *RegistrationService) AddUser(ctx context.Context, firstName, lastName, email string, dateOfBirth time.Time, clientID int) (bool, error) {
	_, err := s.RegisterUser(ctx, ports.RegisterUserInput{
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		DateOfBirth: dateOfBirth,
		ClientID:    clientID,
	})
	switch {
	case err == nil:
		return true, nil
	case domain.IsRejection(err):
		return false, nil
	default:
		return false, err
	}
}

// GetUser returns a previously registered user.
func (s *RegistrationService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *RegistrationService) validate(in ports.RegisterUserInput, now time.Time) error {
	switch {
	case in.FirstName == "":
		return domain.Reject(domain.ErrInvalidFirstName)
	case in.LastName == "":
		return domain.Reject(domain.ErrInvalidLastName)
	case !domain.LooksLikeEmail(in.Email):
		return domain.Reject(domain.ErrInvalidEmail)
	}

	if age := domain.AgeAt(in.DateOfBirth, now); age < s.policy.MinimumAge {
		return domain.Reject(fmt.Errorf("%w: %d < %d", domain.ErrUnderage, age, s.policy.MinimumAge))
	}
	return nil
}

func (s *RegistrationService) assignCreditLimit(ctx context.Context, user *domain.User) error {
	switch user.Client.Type {
	case domain.ClientVeryImportant:
		user.HasCreditLimit = false
		return nil
	case domain.ClientImportant:
		limit, err := s.credit.GetCreditLimit(ctx, user.LastName, user.DateOfBirth)
		if err != nil {
			return fmt.Errorf("get credit limit: %w", err)
		}
		user.HasCreditLimit = true
		user.CreditLimit = limit * domain.ImportantClientMultiplier
		return nil
	case domain.ClientStandard:
		limit, err := s.credit.GetCreditLimit(ctx, user.LastName, user.DateOfBirth)
		if err != nil {
			return fmt.Errorf("get credit limit: %w", err)
		}
		user.HasCreditLimit = true
		user.CreditLimit = limit
		return nil
	default:
		return domain.Reject(fmt.Errorf("%w: %s", domain.ErrUnknownClientType, user.Client.Type))
	}
}

func (s *RegistrationService) rejected(in ports.RegisterUserInput, err error) error {
	if !domain.IsRejection(err) {
		err = domain.Reject(err)
	}
	s.logger.Info().
		Int("client_id", in.ClientID).
		Str("email", logger.RedactEmail(in.Email)).
		Str("reason", domain.RejectionReason(err)).
		Msg("registration rejected")
	return err
}
