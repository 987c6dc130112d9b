package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/careops/staffhub/modules/staff/domain/entities/importlog"
	"github.com/careops/staffhub/modules/staff/infrastructure/persistence/models"
	"github.com/careops/staffhub/pkg/composables"
)

const importLogColumns = `
	id, tenant_id, actor_id, source_system, status, payload,
	successful_records, failed_records, error_detail, created_at, completed_at`

type ImportLogRepository struct{}

func NewImportLogRepository() importlog.Repository {
	return &ImportLogRepository{}
}

func (r *ImportLogRepository) Create(ctx context.Context, entry *importlog.Entry) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return 0, err
	}

	actorID := pgUUIDFromUUID(entry.ActorID)
	if entry.ActorID == uuid.Nil {
		actorID.Valid = false
	}

	var id int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO staff_import_logs (tenant_id, actor_id, source_system, status, payload)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, pgTenantID, actorID, entry.SourceSystem, string(entry.Status), entry.Payload).Scan(&id); err != nil {
		return 0, gerrors.Wrap(err, "failed to create import log entry")
	}
	entry.ID = id
	return id, nil
}

func (r *ImportLogRepository) GetByID(ctx context.Context, id int64) (*importlog.Entry, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return nil, err
	}

	var m models.ImportLog
	if err := tx.QueryRow(ctx, `
		SELECT `+importLogColumns+` FROM staff_import_logs
		WHERE tenant_id = $1 AND id = $2
	`, pgTenantID, id).Scan(
		&m.ID,
		&m.TenantID,
		&m.ActorID,
		&m.SourceSystem,
		&m.Status,
		&m.Payload,
		&m.SuccessfulRecords,
		&m.FailedRecords,
		&m.ErrorDetail,
		&m.CreatedAt,
		&m.CompletedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, gerrors.New("import log entry not found")
		}
		return nil, err
	}
	return toDomainImportLog(&m), nil
}

func (r *ImportLogRepository) MarkCompleted(ctx context.Context, id int64, successfulRecords int) error {
	return r.finish(ctx, id, importlog.StatusCompleted, successfulRecords, 0, "")
}

func (r *ImportLogRepository) MarkFailed(ctx context.Context, id int64, failedRecords int, errorDetail string) error {
	return r.finish(ctx, id, importlog.StatusFailed, 0, failedRecords, errorDetail)
}

// finish applies a terminal transition. The status guard in the WHERE clause
// enforces that pending is the only valid source state.
func (r *ImportLogRepository) finish(
	ctx context.Context,
	id int64,
	status importlog.Status,
	successfulRecords, failedRecords int,
	errorDetail string,
) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	_, pgTenantID, err := tenantIDs(ctx)
	if err != nil {
		return err
	}

	tag, err := tx.Exec(ctx, `
		UPDATE staff_import_logs
		SET status = $3,
			successful_records = $4,
			failed_records = $5,
			error_detail = NULLIF($6, ''),
			completed_at = now()
		WHERE tenant_id = $1 AND id = $2 AND status = $7
	`, pgTenantID, id, string(status), successfulRecords, failedRecords, errorDetail, string(importlog.StatusPending))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return importlog.ErrNotPending
	}
	return nil
}
