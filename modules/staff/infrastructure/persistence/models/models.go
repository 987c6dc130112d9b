package models

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

type Staff struct {
	ID                    int64
	TenantID              pgtype.UUID
	FirstName             string
	LastName              string
	Email                 pgtype.Text
	Phone                 pgtype.Text
	DateOfBirth           pgtype.Text
	EmployeeReference     pgtype.Text
	JobTitle              pgtype.Text
	EmploymentStartDate   pgtype.Text
	EmploymentEndDate     pgtype.Text
	EmergencyContactName  pgtype.Text
	EmergencyContactPhone pgtype.Text
	IsActive              bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

type OrgUnit struct {
	ID        int64
	TenantID  pgtype.UUID
	Name      string
	CreatedAt time.Time
}

type UnitAssignment struct {
	ID         int64
	TenantID   pgtype.UUID
	StaffID    int64
	UnitID     int64
	RoleInUnit string
	IsPrimary  bool
	CreatedAt  time.Time
}

type ImportLog struct {
	ID                int64
	TenantID          pgtype.UUID
	ActorID           pgtype.UUID
	SourceSystem      string
	Status            string
	Payload           []byte
	SuccessfulRecords int32
	FailedRecords     int32
	ErrorDetail       pgtype.Text
	CreatedAt         time.Time
	CompletedAt       pgtype.Timestamptz
}
