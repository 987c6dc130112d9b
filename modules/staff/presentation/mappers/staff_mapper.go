package mappers

import (
	"github.com/careops/staffhub/modules/staff/domain/aggregates/staff"
	"github.com/careops/staffhub/modules/staff/domain/entities/orgunit"
	"github.com/careops/staffhub/modules/staff/presentation/viewmodels"
	"github.com/careops/staffhub/modules/staff/services"
)

func StaffToViewModel(s staff.Staff) viewmodels.StaffMember {
	return viewmodels.StaffMember{
		ID:                    s.ID(),
		FirstName:             s.FirstName(),
		LastName:              s.LastName(),
		Email:                 s.Email(),
		Phone:                 s.Phone(),
		DateOfBirth:           s.DateOfBirth(),
		EmployeeReference:     s.EmployeeReference(),
		JobTitle:              s.JobTitle(),
		EmploymentStartDate:   s.EmploymentStartDate(),
		EmploymentEndDate:     s.EmploymentEndDate(),
		EmergencyContactName:  s.EmergencyContactName(),
		EmergencyContactPhone: s.EmergencyContactPhone(),
		IsActive:              s.IsActive(),
		CreatedAt:             s.CreatedAt(),
	}
}

func ImportResultToResponse(result *services.ImportResult) viewmodels.ImportResponse {
	response := viewmodels.ImportResponse{
		Success:     true,
		Staff:       StaffToViewModel(result.Staff),
		ImportLogID: result.LogID,
	}
	if result.Unit != nil {
		response.Assignment = &viewmodels.UnitAssignment{
			UnitID:    result.Unit.ID,
			UnitName:  result.Unit.Name,
			Role:      result.Unit.Role,
			IsPrimary: result.Unit.IsPrimary,
		}
	}
	return response
}

func UnitToViewModel(u orgunit.Unit) viewmodels.OrgUnit {
	return viewmodels.OrgUnit{ID: u.ID(), Name: u.Name()}
}
