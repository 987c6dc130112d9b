package staff

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Values carries the normalized person fields of a staff record. Optional
// fields use the empty string for "absent"; dates are carried verbatim as
// submitted by the source system.
type Values struct {
	FirstName             string
	LastName              string
	Email                 string
	Phone                 string
	DateOfBirth           string
	EmployeeReference     string
	JobTitle              string
	EmploymentStartDate   string
	EmploymentEndDate     string
	EmergencyContactName  string
	EmergencyContactPhone string
}

func (v Values) normalized() Values {
	return Values{
		FirstName:             strings.TrimSpace(v.FirstName),
		LastName:              strings.TrimSpace(v.LastName),
		Email:                 strings.TrimSpace(v.Email),
		Phone:                 strings.TrimSpace(v.Phone),
		DateOfBirth:           strings.TrimSpace(v.DateOfBirth),
		EmployeeReference:     strings.TrimSpace(v.EmployeeReference),
		JobTitle:              strings.TrimSpace(v.JobTitle),
		EmploymentStartDate:   strings.TrimSpace(v.EmploymentStartDate),
		EmploymentEndDate:     strings.TrimSpace(v.EmploymentEndDate),
		EmergencyContactName:  strings.TrimSpace(v.EmergencyContactName),
		EmergencyContactPhone: strings.TrimSpace(v.EmergencyContactPhone),
	}
}

// Staff is a tenant-scoped staff member. The employee reference, when
// present, is unique within the tenant and acts as the import idempotency key.
type Staff struct {
	id        int64
	tenantID  uuid.UUID
	values    Values
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func New(tenantID uuid.UUID, values Values) Staff {
	return Staff{
		tenantID: tenantID,
		values:   values.normalized(),
		isActive: true,
	}
}

func Hydrate(
	id int64,
	tenantID uuid.UUID,
	values Values,
	isActive bool,
	createdAt time.Time,
	updatedAt time.Time,
) Staff {
	return Staff{
		id:        id,
		tenantID:  tenantID,
		values:    values.normalized(),
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s Staff) ID() int64                     { return s.id }
func (s Staff) TenantID() uuid.UUID           { return s.tenantID }
func (s Staff) FirstName() string             { return s.values.FirstName }
func (s Staff) LastName() string              { return s.values.LastName }
func (s Staff) Email() string                 { return s.values.Email }
func (s Staff) Phone() string                 { return s.values.Phone }
func (s Staff) DateOfBirth() string           { return s.values.DateOfBirth }
func (s Staff) EmployeeReference() string     { return s.values.EmployeeReference }
func (s Staff) JobTitle() string              { return s.values.JobTitle }
func (s Staff) EmploymentStartDate() string   { return s.values.EmploymentStartDate }
func (s Staff) EmploymentEndDate() string     { return s.values.EmploymentEndDate }
func (s Staff) EmergencyContactName() string  { return s.values.EmergencyContactName }
func (s Staff) EmergencyContactPhone() string { return s.values.EmergencyContactPhone }
func (s Staff) IsActive() bool                { return s.isActive }
func (s Staff) CreatedAt() time.Time          { return s.createdAt }
func (s Staff) UpdatedAt() time.Time          { return s.updatedAt }
func (s Staff) IsZero() bool                  { return s.id == 0 && s.tenantID == uuid.Nil }
