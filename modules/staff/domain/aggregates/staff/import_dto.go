package staff

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/careops/staffhub/pkg/constants"
	"github.com/careops/staffhub/pkg/serrors"
)

const DefaultUnitRole = "member"

// ImportRequest is the payload pushed by an external recruitment system.
// Raw preserves the submitted bytes verbatim for the import audit log.
type ImportRequest struct {
	SourceSystem string      `json:"source_system" validate:"required"`
	NewHire      *NewHireDTO `json:"new_hire" validate:"required"`

	Raw json.RawMessage `json:"-"`
}

type NewHireDTO struct {
	FirstName             string `json:"first_name" validate:"required"`
	LastName              string `json:"last_name" validate:"required"`
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	DateOfBirth           string `json:"date_of_birth"`
	EmployeeReference     string `json:"employee_reference"`
	JobTitle              string `json:"job_title"`
	EmploymentStartDate   string `json:"employment_start_date"`
	EmploymentEndDate     string `json:"employment_end_date"`
	OrganisationalUnit    string `json:"organisational_unit"`
	OrganisationalUnitID  *int64 `json:"organisational_unit_id" validate:"omitempty,gt=0"`
	RoleInUnit            string `json:"role_in_unit"`
	IsPrimaryUnit         bool   `json:"is_primary_unit"`
	EmergencyContactName  string `json:"emergency_contact_name"`
	EmergencyContactPhone string `json:"emergency_contact_phone"`
}

// Normalize trims every string field so that whitespace-only input counts as
// absent, and applies the default unit role.
func (d *ImportRequest) Normalize() {
	d.SourceSystem = strings.TrimSpace(d.SourceSystem)
	if d.NewHire == nil {
		return
	}
	h := d.NewHire
	h.FirstName = strings.TrimSpace(h.FirstName)
	h.LastName = strings.TrimSpace(h.LastName)
	h.Email = strings.TrimSpace(h.Email)
	h.Phone = strings.TrimSpace(h.Phone)
	h.DateOfBirth = strings.TrimSpace(h.DateOfBirth)
	h.EmployeeReference = strings.TrimSpace(h.EmployeeReference)
	h.JobTitle = strings.TrimSpace(h.JobTitle)
	h.EmploymentStartDate = strings.TrimSpace(h.EmploymentStartDate)
	h.EmploymentEndDate = strings.TrimSpace(h.EmploymentEndDate)
	h.OrganisationalUnit = strings.TrimSpace(h.OrganisationalUnit)
	h.RoleInUnit = strings.TrimSpace(h.RoleInUnit)
	if h.RoleInUnit == "" {
		h.RoleInUnit = DefaultUnitRole
	}
	h.EmergencyContactName = strings.TrimSpace(h.EmergencyContactName)
	h.EmergencyContactPhone = strings.TrimSpace(h.EmergencyContactPhone)
}

// Ok normalizes the request and checks its structural preconditions. It
// returns the offending fields when validation fails.
func (d *ImportRequest) Ok() (serrors.ValidationErrors, bool) {
	d.Normalize()

	err := constants.Validate.Struct(d)
	if err == nil {
		return serrors.ValidationErrors{}, true
	}

	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return serrors.ValidationErrors{"payload": "is malformed"}, false
	}
	return serrors.FromValidatorErrors(validatorErrs), false
}

// Values maps the new-hire fields to a normalized staff record.
func (d *ImportRequest) Values() Values {
	h := d.NewHire
	return Values{
		FirstName:             h.FirstName,
		LastName:              h.LastName,
		Email:                 h.Email,
		Phone:                 h.Phone,
		DateOfBirth:           h.DateOfBirth,
		EmployeeReference:     h.EmployeeReference,
		JobTitle:              h.JobTitle,
		EmploymentStartDate:   h.EmploymentStartDate,
		EmploymentEndDate:     h.EmploymentEndDate,
		EmergencyContactName:  h.EmergencyContactName,
		EmergencyContactPhone: h.EmergencyContactPhone,
	}
}

// HasReference reports whether an employee reference was supplied, after
// normalization.
func (d *ImportRequest) HasReference() bool {
	return d.NewHire != nil && d.NewHire.EmployeeReference != ""
}
