package persistence

import (
	"context"
	"errors"
	"fmt"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/careops/staffhub/modules/staff/domain/aggregates/staff"
	"github.com/careops/staffhub/modules/staff/infrastructure/persistence/models"
	"github.com/careops/staffhub/pkg/composables"
	"github.com/careops/staffhub/pkg/repo"
)

const staffColumns = `
	id, tenant_id, first_name, last_name, email, phone, date_of_birth,
	employee_reference, job_title, employment_start_date, employment_end_date,
	emergency_contact_name, emergency_contact_phone, is_active, created_at, updated_at`

type StaffRepository struct{}

func NewStaffRepository() staff.Repository {
	return &StaffRepository{}
}

func (r *StaffRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM staff WHERE tenant_id = $1
	`, pgTenantID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *StaffRepository) GetPaginated(ctx context.Context, params *staff.FindParams) ([]staff.Staff, error) {
	if params == nil {
		params = &staff.FindParams{}
	}

	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + staffColumns + ` FROM staff WHERE tenant_id = $1`
	args := []any{pgTenantID}
	if params.Q != "" {
		query += ` AND (first_name ILIKE $2 OR last_name ILIKE $2 OR employee_reference ILIKE $2)`
		args = append(args, "%"+params.Q+"%")
	}
	query += ` ORDER BY id ` + repo.FormatLimitOffset(limit, offset)

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []staff.Staff
	for rows.Next() {
		row, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, toDomainStaff(row))
	}
	return results, rows.Err()
}

func (r *StaffRepository) GetByID(ctx context.Context, id int64) (staff.Staff, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return staff.Staff{}, err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return staff.Staff{}, err
	}

	row, err := scanStaff(tx.QueryRow(ctx, `
		SELECT `+staffColumns+` FROM staff WHERE tenant_id = $1 AND id = $2
	`, pgTenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, err
	}
	return toDomainStaff(row), nil
}

func (r *StaffRepository) GetByReference(ctx context.Context, employeeReference string) (staff.Staff, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return staff.Staff{}, err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return staff.Staff{}, err
	}

	row, err := scanStaff(tx.QueryRow(ctx, `
		SELECT `+staffColumns+` FROM staff
		WHERE tenant_id = $1 AND employee_reference = $2
	`, pgTenantID, employeeReference))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return staff.Staff{}, staff.ErrStaffNotFound
		}
		return staff.Staff{}, err
	}
	return toDomainStaff(row), nil
}

func (r *StaffRepository) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return staff.Staff{}, err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return staff.Staff{}, err
	}

	row, err := scanStaff(tx.QueryRow(ctx, `
		INSERT INTO staff (
			tenant_id, first_name, last_name, email, phone, date_of_birth,
			employee_reference, job_title, employment_start_date, employment_end_date,
			emergency_contact_name, emergency_contact_phone, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING `+staffColumns+`
	`,
		pgTenantID,
		s.FirstName(),
		s.LastName(),
		pgTextFromString(s.Email()),
		pgTextFromString(s.Phone()),
		pgTextFromString(s.DateOfBirth()),
		pgTextFromString(s.EmployeeReference()),
		pgTextFromString(s.JobTitle()),
		pgTextFromString(s.EmploymentStartDate()),
		pgTextFromString(s.EmploymentEndDate()),
		pgTextFromString(s.EmergencyContactName()),
		pgTextFromString(s.EmergencyContactPhone()),
		s.IsActive(),
	))
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return staff.Staff{}, staff.ErrReferenceTaken
		}
		return staff.Staff{}, gerrors.Wrap(err, "failed to create staff member")
	}
	return toDomainStaff(row), nil
}

func (r *StaffRepository) AssignToUnit(ctx context.Context, staffID, unitID int64, role string, isPrimary bool) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return err
	}

	// The FK on unit_id doubles as the existence check for explicitly
	// supplied unit ids; a tenant-mismatched unit is excluded up front.
	tag, err := tx.Exec(ctx, `
		INSERT INTO staff_unit_assignments (tenant_id, staff_id, unit_id, role_in_unit, is_primary)
		SELECT $1, $2, u.id, $4, $5
		FROM org_units u
		WHERE u.id = $3 AND u.tenant_id = $1
	`, pgTenantID, staffID, unitID, role, isPrimary)
	if err != nil {
		if repo.IsForeignKeyViolation(err) {
			return gerrors.Wrap(err, "assignment unit does not exist")
		}
		return gerrors.Wrap(err, "failed to assign staff to unit")
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("assignment unit %d does not exist in tenant", unitID)
	}
	return nil
}

func scanStaff(row pgx.Row) (*models.Staff, error) {
	var m models.Staff
	if err := row.Scan(
		&m.ID,
		&m.TenantID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.Phone,
		&m.DateOfBirth,
		&m.EmployeeReference,
		&m.JobTitle,
		&m.EmploymentStartDate,
		&m.EmploymentEndDate,
		&m.EmergencyContactName,
		&m.EmergencyContactPhone,
		&m.IsActive,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &m, nil
}

func tenantIDs(ctx context.Context) (uuid.UUID, pgtype.UUID, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return uuid.Nil, pgtype.UUID{}, fmt.Errorf("failed to get tenant from context: %w", err)
	}
	return tenantID, pgUUIDFromUUID(tenantID), nil
}
