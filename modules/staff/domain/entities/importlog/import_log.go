package importlog

import (
	"context"
	"encoding/json"
	"time"

	gerrors "github.com/go-faster/errors"
	"github.com/google/uuid"
)

// ErrNotPending is raised when a terminal update targets an entry that is no
// longer pending. Terminal states are final.
var ErrNotPending = gerrors.New("import log entry is not pending")

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Entry records one import attempt. Its lifecycle is independent of the
// staff record: it is written before the staff creation is attempted and
// reaches a terminal state regardless of the outcome.
type Entry struct {
	ID                int64
	TenantID          uuid.UUID
	ActorID           uuid.UUID // uuid.Nil when the integration carries no actor
	SourceSystem      string
	Status            Status
	Payload           json.RawMessage
	SuccessfulRecords int
	FailedRecords     int
	ErrorDetail       string
	CreatedAt         time.Time
	CompletedAt       *time.Time
}

func NewPending(tenantID, actorID uuid.UUID, sourceSystem string, payload json.RawMessage) *Entry {
	return &Entry{
		TenantID:     tenantID,
		ActorID:      actorID,
		SourceSystem: sourceSystem,
		Status:       StatusPending,
		Payload:      payload,
	}
}

// IsTerminal reports whether the entry has reached completed or failed.
func (e *Entry) IsTerminal() bool {
	return e.Status == StatusCompleted || e.Status == StatusFailed
}

type Repository interface {
	Create(ctx context.Context, entry *Entry) (int64, error)
	GetByID(ctx context.Context, id int64) (*Entry, error)
	// MarkCompleted transitions pending → completed. Any other source state
	// yields ErrNotPending.
	MarkCompleted(ctx context.Context, id int64, successfulRecords int) error
	// MarkFailed transitions pending → failed. Any other source state yields
	// ErrNotPending.
	MarkFailed(ctx context.Context, id int64, failedRecords int, errorDetail string) error
}
