package viewmodels

import "time"

type StaffMember struct {
	ID                    int64     `json:"id"`
	FirstName             string    `json:"first_name"`
	LastName              string    `json:"last_name"`
	Email                 string    `json:"email,omitempty"`
	Phone                 string    `json:"phone,omitempty"`
	DateOfBirth           string    `json:"date_of_birth,omitempty"`
	EmployeeReference     string    `json:"employee_reference,omitempty"`
	JobTitle              string    `json:"job_title,omitempty"`
	EmploymentStartDate   string    `json:"employment_start_date,omitempty"`
	EmploymentEndDate     string    `json:"employment_end_date,omitempty"`
	EmergencyContactName  string    `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string    `json:"emergency_contact_phone,omitempty"`
	IsActive              bool      `json:"is_active"`
	CreatedAt             time.Time `json:"created_at"`
}

type UnitAssignment struct {
	UnitID    int64  `json:"unit_id"`
	UnitName  string `json:"unit_name"`
	Role      string `json:"role_in_unit"`
	IsPrimary bool   `json:"is_primary"`
}

type ImportResponse struct {
	Success     bool            `json:"success"`
	Staff       StaffMember     `json:"staff"`
	Assignment  *UnitAssignment `json:"assignment,omitempty"`
	ImportLogID int64           `json:"import_log_id"`
}

type OrgUnit struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
