package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	gerrors "github.com/go-faster/errors"

	"github.com/careops/staffhub/modules/staff/domain/aggregates/staff"
	"github.com/careops/staffhub/modules/staff/domain/entities/importlog"
	"github.com/careops/staffhub/modules/staff/domain/entities/orgunit"
	"github.com/careops/staffhub/pkg/composables"
	"github.com/careops/staffhub/pkg/eventbus"
	"github.com/careops/staffhub/pkg/serrors"
)

// ErrImportFailed is the sanitized error surfaced to external callers when
// anything goes wrong inside the import transaction. The underlying cause is
// kept server-side and in the import log.
var ErrImportFailed = gerrors.New("staff import failed")

// ValidationError reports the offending fields of a rejected payload. No
// side effect has occurred when it is returned.
type ValidationError struct {
	Fields serrors.ValidationErrors
}

func (e *ValidationError) Error() string {
	return e.Fields.Error()
}

// DuplicateReferenceError reports a pre-flight conflict on the employee
// reference, carrying the identity of the staff member already holding it.
type DuplicateReferenceError struct {
	Reference    string
	ExistingID   int64
	ExistingName string
}

func (e *DuplicateReferenceError) Error() string {
	return fmt.Sprintf("employee reference %q already belongs to staff member %d", e.Reference, e.ExistingID)
}

// AssignedUnit describes the organisational-unit assignment created by an
// import, when one was.
type AssignedUnit struct {
	ID        int64
	Name      string
	Role      string
	IsPrimary bool
}

type ImportResult struct {
	Staff staff.Staff
	Unit  *AssignedUnit
	LogID int64
}

type ImportService struct {
	staff     staff.Repository
	units     orgunit.Repository
	logs      importlog.Repository
	publisher eventbus.EventBus
}

func NewImportService(
	staffRepo staff.Repository,
	unitRepo orgunit.Repository,
	logRepo importlog.Repository,
	publisher eventbus.EventBus,
) *ImportService {
	return &ImportService{
		staff:     staffRepo,
		units:     unitRepo,
		logs:      logRepo,
		publisher: publisher,
	}
}

// inTxFn is swapped out in tests to run the transactional body without a
// database.
var inTxFn = composables.InTx

// Import runs one atomic import attempt: validate, duplicate pre-flight,
// then a transaction creating the staff member, the optional unit assignment
// and the completed audit-log state. The pending log row is written outside
// the transaction so the audit trail survives a rollback.
func (s *ImportService) Import(ctx context.Context, req *staff.ImportRequest) (*ImportResult, error) {
	if errs, ok := req.Ok(); !ok {
		return nil, &ValidationError{Fields: errs}
	}

	if req.HasReference() {
		existing, err := s.staff.GetByReference(ctx, req.NewHire.EmployeeReference)
		if err == nil {
			return nil, &DuplicateReferenceError{
				Reference:    req.NewHire.EmployeeReference,
				ExistingID:   existing.ID(),
				ExistingName: existing.FirstName() + " " + existing.LastName(),
			}
		}
		if !errors.Is(err, staff.ErrStaffNotFound) {
			return nil, err
		}
	}

	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}

	entry := importlog.NewPending(tenantID, composables.UseActorID(ctx), req.SourceSystem, rawPayload(req))
	if _, err := s.logs.Create(ctx, entry); err != nil {
		composables.UseLogger(ctx).WithError(err).Error("failed to open import log entry")
		return nil, ErrImportFailed
	}

	var result *ImportResult
	txErr := inTxFn(ctx, func(txCtx context.Context) error {
		created, err := s.staff.Create(txCtx, staff.New(tenantID, req.Values()))
		if err != nil {
			return err
		}

		assigned, err := s.assignUnit(txCtx, created.ID(), req.NewHire)
		if err != nil {
			return err
		}

		if err := s.logs.MarkCompleted(txCtx, entry.ID, 1); err != nil {
			return err
		}

		result = &ImportResult{Staff: created, Unit: assigned, LogID: entry.ID}
		return nil
	})
	if txErr != nil {
		s.recordFailure(ctx, entry.ID, txErr)
		return nil, ErrImportFailed
	}

	if ev, evErr := staff.NewCreatedEvent(ctx, req.SourceSystem, result.Staff); evErr == nil {
		s.publisher.Publish(ev)
	}
	return result, nil
}

// assignUnit resolves the requested organisational unit and creates the
// assignment. An explicit unit id is a hard dependency checked by the
// assignment itself; a unit name that matches nothing is a soft miss and the
// import proceeds without an assignment.
func (s *ImportService) assignUnit(ctx context.Context, staffID int64, h *staff.NewHireDTO) (*AssignedUnit, error) {
	var unit orgunit.Unit
	switch {
	case h.OrganisationalUnitID != nil:
		if err := s.staff.AssignToUnit(ctx, staffID, *h.OrganisationalUnitID, h.RoleInUnit, h.IsPrimaryUnit); err != nil {
			return nil, err
		}
		// The assignment proved the unit exists; fetch it for the response.
		u, err := s.units.GetByID(ctx, *h.OrganisationalUnitID)
		if err != nil {
			return nil, err
		}
		unit = u
	case h.OrganisationalUnit != "":
		u, err := s.units.GetByName(ctx, h.OrganisationalUnit)
		if err != nil {
			if errors.Is(err, orgunit.ErrUnitNotFound) {
				return nil, nil
			}
			return nil, err
		}
		if err := s.staff.AssignToUnit(ctx, staffID, u.ID(), h.RoleInUnit, h.IsPrimaryUnit); err != nil {
			return nil, err
		}
		unit = u
	default:
		return nil, nil
	}

	return &AssignedUnit{
		ID:        unit.ID(),
		Name:      unit.Name(),
		Role:      h.RoleInUnit,
		IsPrimary: h.IsPrimaryUnit,
	}, nil
}

// recordFailure closes the log entry as failed outside the rolled-back
// transaction. It is best-effort: its own failure is logged and suppressed
// so it can never mask the import error being returned.
func (s *ImportService) recordFailure(ctx context.Context, logID int64, cause error) {
	logger := composables.UseLogger(ctx).WithField("import_log_id", logID)
	logger.WithError(cause).Error("staff import failed")

	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic while recording import failure: %v", r)
		}
	}()
	if err := s.logs.MarkFailed(ctx, logID, 1, cause.Error()); err != nil {
		logger.WithError(err).Error("failed to record import failure in log")
	}
}

func rawPayload(req *staff.ImportRequest) json.RawMessage {
	if len(req.Raw) > 0 {
		return req.Raw
	}
	raw, err := json.Marshal(req)
	if err != nil {
		return nil
	}
	return raw
}
