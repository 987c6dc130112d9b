package composables

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUseTenantID_Missing(t *testing.T) {
	_, err := UseTenantID(context.Background())
	require.ErrorIs(t, err, ErrNoTenantID)
}

func TestUseTenantID_RoundTrip(t *testing.T) {
	tenantID := uuid.New()
	ctx := WithTenantID(context.Background(), tenantID)

	got, err := UseTenantID(ctx)
	require.NoError(t, err)
	require.Equal(t, tenantID, got)
}

func TestUseActorID_DefaultsToNil(t *testing.T) {
	require.Equal(t, uuid.Nil, UseActorID(context.Background()))

	actorID := uuid.New()
	ctx := WithActorID(context.Background(), actorID)
	require.Equal(t, actorID, UseActorID(ctx))
}

func TestUseLogger_FallsBack(t *testing.T) {
	require.NotNil(t, UseLogger(context.Background()))
}

func TestUsePool_Missing(t *testing.T) {
	_, err := UsePool(context.Background())
	require.ErrorIs(t, err, ErrNoPool)
}
