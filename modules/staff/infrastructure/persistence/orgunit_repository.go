package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/careops/staffhub/modules/staff/domain/entities/orgunit"
	"github.com/careops/staffhub/modules/staff/infrastructure/persistence/models"
	"github.com/careops/staffhub/pkg/composables"
)

const orgUnitColumns = `id, tenant_id, name, created_at`

type OrgUnitRepository struct{}

func NewOrgUnitRepository() orgunit.Repository {
	return &OrgUnitRepository{}
}

func (r *OrgUnitRepository) GetByID(ctx context.Context, id int64) (orgunit.Unit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return orgunit.Unit{}, err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return orgunit.Unit{}, err
	}

	row, err := scanOrgUnit(tx.QueryRow(ctx, `
		SELECT `+orgUnitColumns+` FROM org_units WHERE tenant_id = $1 AND id = $2
	`, pgTenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return orgunit.Unit{}, orgunit.ErrUnitNotFound
		}
		return orgunit.Unit{}, err
	}
	return toDomainUnit(row), nil
}

func (r *OrgUnitRepository) GetByName(ctx context.Context, name string) (orgunit.Unit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return orgunit.Unit{}, err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return orgunit.Unit{}, err
	}

	// Name collisions are resolved by taking the oldest matching unit.
	row, err := scanOrgUnit(tx.QueryRow(ctx, `
		SELECT `+orgUnitColumns+` FROM org_units
		WHERE tenant_id = $1 AND name = $2
		ORDER BY id
		LIMIT 1
	`, pgTenantID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return orgunit.Unit{}, orgunit.ErrUnitNotFound
		}
		return orgunit.Unit{}, err
	}
	return toDomainUnit(row), nil
}

func (r *OrgUnitRepository) GetAll(ctx context.Context) ([]orgunit.Unit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, `
		SELECT `+orgUnitColumns+` FROM org_units WHERE tenant_id = $1 ORDER BY name
	`, pgTenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []orgunit.Unit
	for rows.Next() {
		row, err := scanOrgUnit(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, toDomainUnit(row))
	}
	return results, rows.Err()
}

func (r *OrgUnitRepository) Create(ctx context.Context, u orgunit.Unit) (orgunit.Unit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return orgunit.Unit{}, err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return orgunit.Unit{}, err
	}

	row, err := scanOrgUnit(tx.QueryRow(ctx, `
		INSERT INTO org_units (tenant_id, name)
		VALUES ($1, $2)
		RETURNING `+orgUnitColumns+`
	`, pgTenantID, u.Name()))
	if err != nil {
		return orgunit.Unit{}, gerrors.Wrap(err, "failed to create org unit")
	}
	return toDomainUnit(row), nil
}

func scanOrgUnit(row pgx.Row) (*models.OrgUnit, error) {
	var m models.OrgUnit
	if err := row.Scan(&m.ID, &m.TenantID, &m.Name, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
