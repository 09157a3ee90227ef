package models

import "time"

// CommandResult is returned once per command request.
type CommandResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ConnectionProbe is the outcome of a diagnostic read of the doorbell pin.
type ConnectionProbe struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	URL     string `json:"url"`
}

// Command event types recorded in the journal.
const (
	EventTriggerDoorbell = "TRIGGER_DOORBELL"
	EventResetDoorbell   = "RESET_DOORBELL"
	EventTriggerSmoke    = "TRIGGER_SMOKE"
	EventResetSmoke      = "RESET_SMOKE"
)

// CommandEvent is a single journal entry describing one remote write.
type CommandEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`
	Pin         string    `json:"pin"`
	Value       int       `json:"value"`
	Success     bool      `json:"success"`
	Description string    `json:"description"`
	Metadata    any       `json:"metadata,omitempty"`
}
