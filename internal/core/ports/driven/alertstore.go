package driven

import (
	"context"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

// AlertStore persists monitoring alerts so they survive between runs
// and can be acknowledged once handled.
type AlertStore interface {
	// Save stores or updates an alert by ID.
	Save(ctx context.Context, alert *domain.Alert) error

	// List returns alerts, newest first. Acknowledged alerts are
	// included only when includeAcknowledged is set.
	List(ctx context.Context, includeAcknowledged bool) ([]domain.Alert, error)

	// Acknowledge marks an alert as handled.
	// Fails with domain.ErrNotFound for an unknown ID.
	Acknowledge(ctx context.Context, id string) error
}
