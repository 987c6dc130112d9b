package staff

import (
	"context"

	"github.com/google/uuid"

	"github.com/careops/staffhub/pkg/composables"
)

// CreatedEvent is published after a staff member has been committed, whether
// created through an import or any future creation path.
type CreatedEvent struct {
	TenantID     uuid.UUID
	ActorID      uuid.UUID
	SourceSystem string
	Result       Staff
}

func NewCreatedEvent(ctx context.Context, sourceSystem string, result Staff) (*CreatedEvent, error) {
	tenantID, err := composables.UseTenantID(ctx)
	if err != nil {
		return nil, err
	}
	return &CreatedEvent{
		TenantID:     tenantID,
		ActorID:      composables.UseActorID(ctx),
		SourceSystem: sourceSystem,
		Result:       result,
	}, nil
}
