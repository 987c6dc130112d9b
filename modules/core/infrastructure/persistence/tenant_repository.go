package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careops/staffhub/modules/core/domain/entities/tenant"
	"github.com/careops/staffhub/pkg/composables"
)

type TenantRepository struct{}

func NewTenantRepository() tenant.Repository {
	return &TenantRepository{}
}

func (r *TenantRepository) GetByID(ctx context.Context, id uuid.UUID) (tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return tenant.Tenant{}, err
	}

	row := tx.QueryRow(ctx, `
		SELECT id, name, api_key, created_at
		FROM tenants
		WHERE id = $1
	`, id)
	return scanTenant(row)
}

func (r *TenantRepository) GetByAPIKey(ctx context.Context, apiKey string) (tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return tenant.Tenant{}, err
	}

	row := tx.QueryRow(ctx, `
		SELECT id, name, api_key, created_at
		FROM tenants
		WHERE api_key = $1
	`, strings.TrimSpace(apiKey))
	return scanTenant(row)
}

func (r *TenantRepository) Create(ctx context.Context, t tenant.Tenant) (tenant.Tenant, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return tenant.Tenant{}, err
	}

	row := tx.QueryRow(ctx, `
		INSERT INTO tenants (id, name, api_key)
		VALUES ($1, $2, $3)
		RETURNING id, name, api_key, created_at
	`, t.ID(), t.Name(), t.APIKey())
	created, err := scanTenant(row)
	if err != nil {
		return tenant.Tenant{}, gerrors.Wrap(err, "failed to create tenant")
	}
	return created, nil
}

func scanTenant(row pgx.Row) (tenant.Tenant, error) {
	var (
		id        uuid.UUID
		name      string
		apiKey    string
		createdAt time.Time
	)
	if err := row.Scan(&id, &name, &apiKey, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return tenant.Tenant{}, tenant.ErrNotFound
		}
		return tenant.Tenant{}, err
	}
	return tenant.Hydrate(id, name, apiKey, createdAt), nil
}
