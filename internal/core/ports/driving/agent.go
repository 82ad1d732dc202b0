package driving

import (
	"context"

	"github.com/futureready-labs/futureready-kb/internal/core/domain"
)

// QueryOptions carries optional context for an agent question.
type QueryOptions struct {
	// DateRange restricts retrieval to documents uploaded within the
	// inclusive window.
	DateRange *domain.DateRange
}

// Agent is a reasoning component over the knowledge base.
// Agents compose their own search queries and render answers and
// alerts; they never touch storage directly.
type Agent interface {
	// Query answers a user question from retrieved documents.
	Query(ctx context.Context, question string, opts QueryOptions) (*domain.AgentResponse, error)

	// Monitor proactively checks for conditions worth alerting on.
	Monitor(ctx context.Context) ([]domain.Alert, error)
}
