package services

import (
	"context"

	"github.com/careops/staffhub/modules/staff/domain/aggregates/staff"
	"github.com/careops/staffhub/modules/staff/domain/entities/orgunit"
)

// StaffService exposes the read side of the staff directory. Creation goes
// through ImportService only.
type StaffService struct {
	repo staff.Repository
}

func NewStaffService(repo staff.Repository) *StaffService {
	return &StaffService{repo: repo}
}

func (s *StaffService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *StaffService) GetPaginated(ctx context.Context, params *staff.FindParams) ([]staff.Staff, error) {
	return s.repo.GetPaginated(ctx, params)
}

func (s *StaffService) GetByID(ctx context.Context, id int64) (staff.Staff, error) {
	return s.repo.GetByID(ctx, id)
}

type OrgUnitService struct {
	repo orgunit.Repository
}

func NewOrgUnitService(repo orgunit.Repository) *OrgUnitService {
	return &OrgUnitService{repo: repo}
}

func (s *OrgUnitService) GetAll(ctx context.Context) ([]orgunit.Unit, error) {
	return s.repo.GetAll(ctx)
}

func (s *OrgUnitService) Create(ctx context.Context, u orgunit.Unit) (orgunit.Unit, error) {
	return s.repo.Create(ctx, u)
}
