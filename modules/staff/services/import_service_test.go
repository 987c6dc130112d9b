package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/careops/staffhub/modules/staff/domain/aggregates/staff"
	"github.com/careops/staffhub/modules/staff/domain/entities/importlog"
	"github.com/careops/staffhub/modules/staff/domain/entities/orgunit"
	"github.com/careops/staffhub/pkg/composables"
)

type mockStaffRepo struct {
	existingByRef map[string]staff.Staff
	createErr     error
	assignErr     error

	created     []staff.Staff
	assignments []mockAssignment
	refLookups  []string
	nextID      int64
}

type mockAssignment struct {
	staffID   int64
	unitID    int64
	role      string
	isPrimary bool
}

func (m *mockStaffRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.created)), nil
}

func (m *mockStaffRepo) GetPaginated(ctx context.Context, params *staff.FindParams) ([]staff.Staff, error) {
	return m.created, nil
}

func (m *mockStaffRepo) GetByID(ctx context.Context, id int64) (staff.Staff, error) {
	for _, s := range m.created {
		if s.ID() == id {
			return s, nil
		}
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

func (m *mockStaffRepo) GetByReference(ctx context.Context, ref string) (staff.Staff, error) {
	m.refLookups = append(m.refLookups, ref)
	if existing, ok := m.existingByRef[ref]; ok {
		return existing, nil
	}
	return staff.Staff{}, staff.ErrStaffNotFound
}

func (m *mockStaffRepo) Create(ctx context.Context, s staff.Staff) (staff.Staff, error) {
	if m.createErr != nil {
		return staff.Staff{}, m.createErr
	}
	m.nextID++
	created := staff.Hydrate(m.nextID, s.TenantID(), staff.Values{
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
	}, s.IsActive(), s.CreatedAt(), s.UpdatedAt())
	m.created = append(m.created, created)
	return created, nil
}

func (m *mockStaffRepo) AssignToUnit(ctx context.Context, staffID, unitID int64, role string, isPrimary bool) error {
	if m.assignErr != nil {
		return m.assignErr
	}
	m.assignments = append(m.assignments, mockAssignment{staffID: staffID, unitID: unitID, role: role, isPrimary: isPrimary})
	return nil
}

type mockUnitRepo struct {
	byName map[string]orgunit.Unit
	byID   map[int64]orgunit.Unit

	idLookups []int64
}

func (m *mockUnitRepo) GetByID(ctx context.Context, id int64) (orgunit.Unit, error) {
	m.idLookups = append(m.idLookups, id)
	if u, ok := m.byID[id]; ok {
		return u, nil
	}
	return orgunit.Unit{}, orgunit.ErrUnitNotFound
}

func (m *mockUnitRepo) GetByName(ctx context.Context, name string) (orgunit.Unit, error) {
	if u, ok := m.byName[name]; ok {
		return u, nil
	}
	return orgunit.Unit{}, orgunit.ErrUnitNotFound
}

func (m *mockUnitRepo) GetAll(ctx context.Context) ([]orgunit.Unit, error) {
	return nil, nil
}

func (m *mockUnitRepo) Create(ctx context.Context, u orgunit.Unit) (orgunit.Unit, error) {
	return u, nil
}

type mockLogRepo struct {
	createErr     error
	markFailedErr error

	entries       map[int64]*importlog.Entry
	nextID        int64
	completedIDs  []int64
	failedIDs     []int64
	failedDetails []string
}

func newMockLogRepo() *mockLogRepo {
	return &mockLogRepo{entries: map[int64]*importlog.Entry{}}
}

func (m *mockLogRepo) Create(ctx context.Context, entry *importlog.Entry) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	entry.ID = m.nextID
	m.entries[entry.ID] = entry
	return entry.ID, nil
}

func (m *mockLogRepo) GetByID(ctx context.Context, id int64) (*importlog.Entry, error) {
	return m.entries[id], nil
}

func (m *mockLogRepo) MarkCompleted(ctx context.Context, id int64, successfulRecords int) error {
	entry := m.entries[id]
	if entry == nil || entry.Status != importlog.StatusPending {
		return importlog.ErrNotPending
	}
	entry.Status = importlog.StatusCompleted
	entry.SuccessfulRecords = successfulRecords
	m.completedIDs = append(m.completedIDs, id)
	return nil
}

func (m *mockLogRepo) MarkFailed(ctx context.Context, id int64, failedRecords int, errorDetail string) error {
	if m.markFailedErr != nil {
		return m.markFailedErr
	}
	entry := m.entries[id]
	if entry == nil || entry.Status != importlog.StatusPending {
		return importlog.ErrNotPending
	}
	entry.Status = importlog.StatusFailed
	entry.FailedRecords = failedRecords
	entry.ErrorDetail = errorDetail
	m.failedIDs = append(m.failedIDs, id)
	m.failedDetails = append(m.failedDetails, errorDetail)
	return nil
}

type stubPublisher struct {
	published []interface{}
}

func (s *stubPublisher) Publish(args ...interface{})     { s.published = append(s.published, args...) }
func (s *stubPublisher) Subscribe(handler interface{})   {}
func (s *stubPublisher) Unsubscribe(handler interface{}) {}
func (s *stubPublisher) Clear()                          {}
func (s *stubPublisher) SubscribersCount() int           { return 0 }

func passthroughTx(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func newImportFixture(t *testing.T) (*ImportService, *mockStaffRepo, *mockUnitRepo, *mockLogRepo, *stubPublisher, context.Context) {
	t.Helper()
	t.Cleanup(func() { inTxFn = composables.InTx })
	inTxFn = passthroughTx

	staffRepo := &mockStaffRepo{existingByRef: map[string]staff.Staff{}}
	unitRepo := &mockUnitRepo{byName: map[string]orgunit.Unit{}, byID: map[int64]orgunit.Unit{}}
	logRepo := newMockLogRepo()
	publisher := &stubPublisher{}
	svc := NewImportService(staffRepo, unitRepo, logRepo, publisher)

	ctx := composables.WithTenantID(context.Background(), uuid.New())
	return svc, staffRepo, unitRepo, logRepo, publisher, ctx
}

func validRequest() *staff.ImportRequest {
	return &staff.ImportRequest{
		SourceSystem: "rs-v1",
		NewHire: &staff.NewHireDTO{
			FirstName:         "Jane",
			LastName:          "Smith",
			EmployeeReference: "EMP001",
		},
	}
}

func TestImportService_ValidationFailures(t *testing.T) {
	cases := []struct {
		name    string
		request *staff.ImportRequest
		field   string
	}{
		{
			name:    "missing source system",
			request: &staff.ImportRequest{NewHire: &staff.NewHireDTO{FirstName: "Jane", LastName: "Smith"}},
			field:   "source_system",
		},
		{
			name:    "missing new hire",
			request: &staff.ImportRequest{SourceSystem: "rs-v1"},
			field:   "new_hire",
		},
		{
			name:    "missing first name",
			request: &staff.ImportRequest{SourceSystem: "rs-v1", NewHire: &staff.NewHireDTO{LastName: "Smith"}},
			field:   "first_name",
		},
		{
			name:    "whitespace-only last name",
			request: &staff.ImportRequest{SourceSystem: "rs-v1", NewHire: &staff.NewHireDTO{FirstName: "Jane", LastName: "   "}},
			field:   "last_name",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, staffRepo, _, logRepo, _, ctx := newImportFixture(t)

			result, err := svc.Import(ctx, tc.request)
			require.Nil(t, result)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Contains(t, vErr.Fields, tc.field)

			require.Empty(t, staffRepo.created, "no staff member must be created")
			require.Empty(t, logRepo.entries, "no import log entry must be created")
		})
	}
}

func TestImportService_RejectsNonPositiveUnitID(t *testing.T) {
	svc, _, _, logRepo, _, ctx := newImportFixture(t)

	zero := int64(0)
	req := validRequest()
	req.NewHire.OrganisationalUnitID = &zero

	_, err := svc.Import(ctx, req)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Contains(t, vErr.Fields, "organisational_unit_id")
	require.Empty(t, logRepo.entries)
}

func TestImportService_DuplicateReference(t *testing.T) {
	svc, staffRepo, _, logRepo, _, ctx := newImportFixture(t)

	existing := staff.Hydrate(42, uuid.New(), staff.Values{
		FirstName:         "Jane",
		LastName:          "Smith",
		EmployeeReference: "EMP001",
	}, true, time.Time{}, time.Time{})
	staffRepo.existingByRef["EMP001"] = existing

	result, err := svc.Import(ctx, validRequest())
	require.Nil(t, result)

	var dupErr *DuplicateReferenceError
	require.ErrorAs(t, err, &dupErr)
	require.Equal(t, int64(42), dupErr.ExistingID)
	require.Equal(t, "EMP001", dupErr.Reference)
	require.Equal(t, "Jane Smith", dupErr.ExistingName)

	require.Empty(t, staffRepo.created, "duplicate must not create a staff member")
	require.Empty(t, logRepo.entries, "duplicate must not open a log entry")
}

func TestImportService_SkipsDuplicateCheckWithoutReference(t *testing.T) {
	svc, staffRepo, _, _, _, ctx := newImportFixture(t)

	req := validRequest()
	req.NewHire.EmployeeReference = "   "

	result, err := svc.Import(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Empty(t, staffRepo.refLookups, "no reference lookup without a reference")
}

func TestImportService_HappyPathWithUnitName(t *testing.T) {
	svc, staffRepo, unitRepo, logRepo, publisher, ctx := newImportFixture(t)

	tenantID, err := composables.UseTenantID(ctx)
	require.NoError(t, err)
	unit := orgunit.Hydrate(7, tenantID, "Care Team A", time.Time{})
	unitRepo.byName["Care Team A"] = unit
	unitRepo.byID[7] = unit

	req := validRequest()
	req.NewHire.OrganisationalUnit = "Care Team A"
	req.NewHire.IsPrimaryUnit = true

	result, err := svc.Import(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, "Jane", result.Staff.FirstName())
	require.Equal(t, "Smith", result.Staff.LastName())
	require.Equal(t, "EMP001", result.Staff.EmployeeReference())
	require.True(t, result.Staff.IsActive())

	require.NotNil(t, result.Unit)
	require.Equal(t, "Care Team A", result.Unit.Name)
	require.Equal(t, staff.DefaultUnitRole, result.Unit.Role)
	require.True(t, result.Unit.IsPrimary)

	require.Len(t, staffRepo.assignments, 1)
	require.Equal(t, int64(7), staffRepo.assignments[0].unitID)
	require.Empty(t, unitRepo.idLookups, "name resolution must reuse the looked-up unit")

	entry := logRepo.entries[result.LogID]
	require.NotNil(t, entry)
	require.Equal(t, importlog.StatusCompleted, entry.Status)
	require.Equal(t, 1, entry.SuccessfulRecords)
	require.Equal(t, "rs-v1", entry.SourceSystem)
	require.NotEmpty(t, entry.Payload)

	require.Len(t, publisher.published, 1)
	ev, ok := publisher.published[0].(*staff.CreatedEvent)
	require.True(t, ok)
	require.Equal(t, tenantID, ev.TenantID)
	require.Equal(t, "rs-v1", ev.SourceSystem)
}

func TestImportService_HappyPathWithExplicitUnitID(t *testing.T) {
	svc, staffRepo, unitRepo, _, _, ctx := newImportFixture(t)

	tenantID, err := composables.UseTenantID(ctx)
	require.NoError(t, err)
	unitRepo.byID[7] = orgunit.Hydrate(7, tenantID, "Care Team A", time.Time{})

	unitID := int64(7)
	req := validRequest()
	req.NewHire.OrganisationalUnitID = &unitID

	result, err := svc.Import(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result.Unit)
	require.Equal(t, int64(7), result.Unit.ID)
	require.Equal(t, "Care Team A", result.Unit.Name)
	require.Len(t, staffRepo.assignments, 1)
	require.Equal(t, []int64{7}, unitRepo.idLookups)
}

func TestImportService_UnitNameMissIsSoft(t *testing.T) {
	svc, staffRepo, _, logRepo, _, ctx := newImportFixture(t)

	req := validRequest()
	req.NewHire.OrganisationalUnit = "No Such Team"

	result, err := svc.Import(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Nil(t, result.Unit, "unknown unit name must not produce an assignment")
	require.Empty(t, staffRepo.assignments)

	entry := logRepo.entries[result.LogID]
	require.Equal(t, importlog.StatusCompleted, entry.Status)
}

func TestImportService_ExplicitUnitIDIsHard(t *testing.T) {
	svc, staffRepo, _, logRepo, publisher, ctx := newImportFixture(t)

	missing := int64(999)
	req := validRequest()
	req.NewHire.OrganisationalUnitID = &missing
	staffRepo.assignErr = errors.New("assignment unit does not exist")

	result, err := svc.Import(ctx, req)
	require.Nil(t, result)
	require.ErrorIs(t, err, ErrImportFailed)
	require.NotContains(t, err.Error(), "assignment unit", "internal detail must not leak")

	require.Len(t, logRepo.failedIDs, 1)
	entry := logRepo.entries[logRepo.failedIDs[0]]
	require.Equal(t, importlog.StatusFailed, entry.Status)
	require.Equal(t, 1, entry.FailedRecords)
	require.Contains(t, entry.ErrorDetail, "assignment unit")

	require.Empty(t, publisher.published)
}

func TestImportService_StaffCreateFailureRecordsFailedLog(t *testing.T) {
	svc, staffRepo, _, logRepo, _, ctx := newImportFixture(t)
	staffRepo.createErr = staff.ErrReferenceTaken

	result, err := svc.Import(ctx, validRequest())
	require.Nil(t, result)
	require.ErrorIs(t, err, ErrImportFailed)

	require.Len(t, logRepo.entries, 1)
	for _, entry := range logRepo.entries {
		require.Equal(t, importlog.StatusFailed, entry.Status)
		require.Contains(t, entry.ErrorDetail, "employee reference already taken")
	}
}

func TestImportService_FailureLogWriteErrorIsSuppressed(t *testing.T) {
	svc, staffRepo, _, logRepo, _, ctx := newImportFixture(t)
	staffRepo.createErr = errors.New("connection reset")
	logRepo.markFailedErr = errors.New("log table unavailable")

	result, err := svc.Import(ctx, validRequest())
	require.Nil(t, result)
	require.ErrorIs(t, err, ErrImportFailed, "log-update failure must not replace the import error")
}

func TestImportService_LogCreateFailureAbortsBeforeTx(t *testing.T) {
	svc, staffRepo, _, logRepo, _, ctx := newImportFixture(t)
	logRepo.createErr = errors.New("disk full")

	result, err := svc.Import(ctx, validRequest())
	require.Nil(t, result)
	require.ErrorIs(t, err, ErrImportFailed)
	require.Empty(t, staffRepo.created, "staff creation must not be attempted without a log entry")
}

func TestImportService_EveryLoggedAttemptReachesTerminalState(t *testing.T) {
	svc, staffRepo, _, logRepo, _, ctx := newImportFixture(t)

	_, err := svc.Import(ctx, validRequest())
	require.NoError(t, err)

	staffRepo.createErr = errors.New("boom")
	req := validRequest()
	req.NewHire.EmployeeReference = "EMP002"
	_, err = svc.Import(ctx, req)
	require.ErrorIs(t, err, ErrImportFailed)

	for id, entry := range logRepo.entries {
		require.True(t, entry.IsTerminal(), "entry %d left in %s", id, entry.Status)
	}
}

func TestImportService_NormalizesOptionalFields(t *testing.T) {
	svc, staffRepo, _, _, _, ctx := newImportFixture(t)

	req := validRequest()
	req.NewHire.Email = "  jane@example.org  "
	req.NewHire.Phone = "   "
	req.NewHire.JobTitle = " Care Assistant "

	result, err := svc.Import(ctx, req)
	require.NoError(t, err)
	require.Equal(t, "jane@example.org", result.Staff.Email())
	require.Equal(t, "", result.Staff.Phone())
	require.Equal(t, "Care Assistant", result.Staff.JobTitle())
	require.Len(t, staffRepo.created, 1)
}
