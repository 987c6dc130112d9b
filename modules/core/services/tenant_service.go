package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/careops/staffhub/modules/core/domain/entities/tenant"
)

type TenantService struct {
	repo tenant.Repository
}

func NewTenantService(repo tenant.Repository) *TenantService {
	return &TenantService{repo: repo}
}

func (s *TenantService) GetByID(ctx context.Context, id uuid.UUID) (tenant.Tenant, error) {
	return s.repo.GetByID(ctx, id)
}

// ResolveAPIKey maps an integration API key to its tenant. Used by the
// authentication middleware.
func (s *TenantService) ResolveAPIKey(ctx context.Context, apiKey string) (uuid.UUID, error) {
	t, err := s.repo.GetByAPIKey(ctx, apiKey)
	if err != nil {
		return uuid.Nil, err
	}
	return t.ID(), nil
}

func (s *TenantService) Create(ctx context.Context, t tenant.Tenant) (tenant.Tenant, error) {
	return s.repo.Create(ctx, t)
}
