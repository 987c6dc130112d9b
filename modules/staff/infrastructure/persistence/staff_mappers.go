package persistence

import (
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/careops/staffhub/modules/staff/domain/aggregates/staff"
	"github.com/careops/staffhub/modules/staff/domain/entities/importlog"
	"github.com/careops/staffhub/modules/staff/domain/entities/orgunit"
	"github.com/careops/staffhub/modules/staff/infrastructure/persistence/models"
)

func pgUUIDFromUUID(id uuid.UUID) pgtype.UUID {
	return pgtype.UUID{Bytes: id, Valid: true}
}

func uuidFromPgUUID(v pgtype.UUID) uuid.UUID {
	if !v.Valid {
		return uuid.Nil
	}
	return v.Bytes
}

func pgTextFromString(v string) pgtype.Text {
	if v == "" {
		return pgtype.Text{}
	}
	return pgtype.Text{String: v, Valid: true}
}

func stringFromPgText(v pgtype.Text) string {
	if !v.Valid {
		return ""
	}
	return v.String
}

func toDomainStaff(row *models.Staff) staff.Staff {
	return staff.Hydrate(
		row.ID,
		uuidFromPgUUID(row.TenantID),
		staff.Values{
			FirstName:             row.FirstName,
			LastName:              row.LastName,
			Email:                 stringFromPgText(row.Email),
			Phone:                 stringFromPgText(row.Phone),
			DateOfBirth:           stringFromPgText(row.DateOfBirth),
			EmployeeReference:     stringFromPgText(row.EmployeeReference),
			JobTitle:              stringFromPgText(row.JobTitle),
			EmploymentStartDate:   stringFromPgText(row.EmploymentStartDate),
			EmploymentEndDate:     stringFromPgText(row.EmploymentEndDate),
			EmergencyContactName:  stringFromPgText(row.EmergencyContactName),
			EmergencyContactPhone: stringFromPgText(row.EmergencyContactPhone),
		},
		row.IsActive,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func toDomainUnit(row *models.OrgUnit) orgunit.Unit {
	return orgunit.Hydrate(row.ID, uuidFromPgUUID(row.TenantID), row.Name, row.CreatedAt)
}

func toDomainImportLog(row *models.ImportLog) *importlog.Entry {
	entry := &importlog.Entry{
		ID:                row.ID,
		TenantID:          uuidFromPgUUID(row.TenantID),
		ActorID:           uuidFromPgUUID(row.ActorID),
		SourceSystem:      row.SourceSystem,
		Status:            importlog.Status(row.Status),
		Payload:           row.Payload,
		SuccessfulRecords: int(row.SuccessfulRecords),
		FailedRecords:     int(row.FailedRecords),
		ErrorDetail:       stringFromPgText(row.ErrorDetail),
		CreatedAt:         row.CreatedAt,
	}
	if row.CompletedAt.Valid {
		completedAt := row.CompletedAt.Time
		entry.CompletedAt = &completedAt
	}
	return entry
}
