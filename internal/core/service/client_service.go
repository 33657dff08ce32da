package service

import (
	"context"

	"github.com/legacyapp/user-service/internal/core/domain"
	"github.com/legacyapp/user-service/internal/core/ports"
)

type ClientService struct {
	repo ports.ClientRepository
}

func NewClientService(repo ports.ClientRepository) *ClientService {
	return &ClientService{repo: repo}
}

func (s *ClientService) GetClient(ctx context.Context, id int) (*domain.Client, error) {
	return s.repo.GetByID(ctx, id)
}
