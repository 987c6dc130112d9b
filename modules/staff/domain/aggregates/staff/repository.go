package staff

import (
	"context"

	gerrors "github.com/go-faster/errors"
)

var (
	ErrStaffNotFound = gerrors.New("staff member not found")

	// ErrReferenceTaken is raised when the per-tenant unique index on the
	// employee reference fires. The pre-flight duplicate check catches the
	// common case; this sentinel covers the concurrent race.
	ErrReferenceTaken = gerrors.New("employee reference already taken")
)

type FindParams struct {
	Q      string
	Limit  int
	Offset int
}

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Staff, error)
	GetByID(ctx context.Context, id int64) (Staff, error)
	GetByReference(ctx context.Context, employeeReference string) (Staff, error)
	Create(ctx context.Context, s Staff) (Staff, error)
	AssignToUnit(ctx context.Context, staffID, unitID int64, role string, isPrimary bool) error
}
