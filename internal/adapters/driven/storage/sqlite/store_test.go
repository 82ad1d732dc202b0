package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleAlert(id string, created time.Time) *domain.Alert {
	return &domain.Alert{
		ID:             id,
		Type:           "contract_expiry",
		Severity:       domain.SeverityHigh,
		Message:        "2 contracts expire within 60 days",
		AffectedDocIDs: []string{"deadbeef00112233", "cafebabe44556677"},
		Metadata:       map[string]any{"window_days": float64(60)},
		CreatedAt:      created,
	}
}

func TestAlertStoreSaveAndList(t *testing.T) {
	store := newTestStore(t)
	alerts := store.AlertStore()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, alerts.Save(ctx, sampleAlert("alert-1", base)))
	require.NoError(t, alerts.Save(ctx, sampleAlert("alert-2", base.Add(time.Hour))))

	list, err := alerts.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Newest first.
	assert.Equal(t, "alert-2", list[0].ID)
	assert.Equal(t, "alert-1", list[1].ID)

	assert.Equal(t, domain.SeverityHigh, list[0].Severity)
	assert.Equal(t, []string{"deadbeef00112233", "cafebabe44556677"}, list[0].AffectedDocIDs)
	assert.Equal(t, float64(60), list[0].Metadata["window_days"])
	assert.False(t, list[0].Acknowledged)
}

func TestAlertStoreSaveValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.AlertStore().Save(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = store.AlertStore().Save(ctx, &domain.Alert{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAlertStoreAcknowledge(t *testing.T) {
	store := newTestStore(t)
	alerts := store.AlertStore()
	ctx := context.Background()

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, alerts.Save(ctx, sampleAlert("alert-1", created)))
	require.NoError(t, alerts.Acknowledge(ctx, "alert-1"))

	// Hidden by default after acknowledgement.
	list, err := alerts.List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = alerts.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Acknowledged)
}

func TestAlertStoreAcknowledgeUnknown(t *testing.T) {
	store := newTestStore(t)

	err := store.AlertStore().Acknowledge(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreReopens(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)

	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.AlertStore().Save(context.Background(), sampleAlert("alert-1", created)))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	list, err := reopened.AlertStore().List(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "alert-1", list[0].ID)
}
