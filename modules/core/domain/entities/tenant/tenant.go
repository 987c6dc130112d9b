package tenant

import (
	"context"
	"strings"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

var ErrNotFound = gerrors.New("tenant not found")

// Tenant is the isolation boundary: every staff record, organisational unit
// and import log row belongs to exactly one tenant.
type Tenant struct {
	id        uuid.UUID
	name      string
	apiKey    string
	createdAt time.Time
}

func New(name, apiKey string) Tenant {
	return Tenant{
		id:     uuid.New(),
		name:   strings.TrimSpace(name),
		apiKey: strings.TrimSpace(apiKey),
	}
}

func Hydrate(id uuid.UUID, name, apiKey string, createdAt time.Time) Tenant {
	return Tenant{
		id:        id,
		name:      strings.TrimSpace(name),
		apiKey:    strings.TrimSpace(apiKey),
		createdAt: createdAt,
	}
}

func (t Tenant) ID() uuid.UUID        { return t.id }
func (t Tenant) Name() string         { return t.name }
func (t Tenant) APIKey() string       { return t.apiKey }
func (t Tenant) CreatedAt() time.Time { return t.createdAt }
func (t Tenant) IsZero() bool         { return t.id == uuid.Nil }

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Tenant, error)
	GetByAPIKey(ctx context.Context, apiKey string) (Tenant, error)
	Create(ctx context.Context, t Tenant) (Tenant, error)
}
