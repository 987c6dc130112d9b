package orgunit

import (
	"context"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrUnitNotFound = gerrors.New("organisational unit not found")

// Unit is a tenant-scoped organisational unit (team, ward, department).
type Unit struct {
	id        int64
	tenantID  uuid.UUID
	name      string
	createdAt time.Time
}

func New(tenantID uuid.UUID, name string) Unit {
	return Unit{
		tenantID: tenantID,
		name:     strings.TrimSpace(name),
	}
}

func Hydrate(id int64, tenantID uuid.UUID, name string, createdAt time.Time) Unit {
	return Unit{
		id:        id,
		tenantID:  tenantID,
		name:      strings.TrimSpace(name),
		createdAt: createdAt,
	}
}

func (u Unit) ID() int64            { return u.id }
func (u Unit) TenantID() uuid.UUID  { return u.tenantID }
func (u Unit) Name() string         { return u.name }
func (u Unit) CreatedAt() time.Time { return u.createdAt }
func (u Unit) IsZero() bool         { return u.id == 0 }

type Repository interface {
	GetByID(ctx context.Context, id int64) (Unit, error)
	// GetByName returns the first unit with that exact name within the
	// tenant. Name collisions are resolved arbitrarily.
	GetByName(ctx context.Context, name string) (Unit, error)
	GetAll(ctx context.Context) ([]Unit, error)
	Create(ctx context.Context, u Unit) (Unit, error)
}
