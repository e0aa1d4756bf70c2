package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "session.deleted").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Topic is the single in-process channel all session events flow through.
const Topic = "session-events"

const (
	TypeDocumentsProcessed = "session.documents.processed"
	TypeTurnRecorded       = "session.turn.recorded"
	TypeSessionDeleted     = "session.deleted"
	TypeSessionRenamed     = "session.renamed"
)

func NewDocumentsProcessed(sessionID string, files, chunks int) Event {
	return BaseEvent{
		Type: TypeDocumentsProcessed,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"files":      files,
			"chunks":     chunks,
		},
		OccurredAt: time.Now(),
	}
}

func NewTurnRecorded(sessionID, query string) Event {
	return BaseEvent{
		Type: TypeTurnRecorded,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"query":      query,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionDeleted(sessionID string) Event {
	return BaseEvent{
		Type: TypeSessionDeleted,
		Data: map[string]interface{}{
			"session_id": sessionID,
		},
		OccurredAt: time.Now(),
	}
}

func NewSessionRenamed(sessionID, title string) Event {
	return BaseEvent{
		Type: TypeSessionRenamed,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"title":      title,
		},
		OccurredAt: time.Now(),
	}
}
