package domain

import "time"

// AlertSeverity ranks how urgent an alert is.
type AlertSeverity string

// Supported severities.
const (
	SeverityLow      AlertSeverity = "low"
	SeverityMedium   AlertSeverity = "medium"
	SeverityHigh     AlertSeverity = "high"
	SeverityCritical AlertSeverity = "critical"
)

// Alert is an operational warning raised by a monitoring agent,
// e.g. a batch of contracts approaching expiry.
type Alert struct {
	// ID is the unique identifier for the alert.
	ID string

	// Type names the condition, e.g. "contract_expiry".
	Type string

	// Severity ranks the alert.
	Severity AlertSeverity

	// Message is the human-readable description.
	Message string

	// AffectedDocIDs lists the documents the alert concerns.
	AffectedDocIDs []string

	// Metadata carries condition-specific detail.
	Metadata map[string]any

	// CreatedAt is when the alert was raised.
	CreatedAt time.Time

	// Acknowledged marks the alert as handled.
	Acknowledged bool
}

// AgentResponse is an agent's answer to a user question.
type AgentResponse struct {
	// Answer is the rendered answer text.
	Answer string

	// Sources lists the document IDs the answer draws on.
	Sources []string

	// Confidence is the agent's confidence in [0,1].
	Confidence float64

	// ReasoningTrace records how the answer was produced.
	ReasoningTrace []string

	// Timestamp is when the answer was produced.
	Timestamp time.Time
}
