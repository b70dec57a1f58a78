package events

import (
	"encoding/json"
	"fmt"
	"time"
)

// Event defines the contract for all activity events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "UPLOAD_SUCCEEDED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

const (
	TypeUploadSucceeded  = "UPLOAD_SUCCEEDED"
	TypeUploadFailed     = "UPLOAD_FAILED"
	TypeAnalyzeDiscarded = "ANALYZE_DISCARDED"
	TypeQuestionAsked    = "QUESTION_ASKED"
	TypeDraftGenerated   = "DRAFT_GENERATED"
	TypeReviewCompleted  = "REVIEW_COMPLETED"
	TypeHistoryLoaded    = "HISTORY_LOADED"
	TypeLocaleChanged    = "LOCALE_CHANGED"
	TypeRequestFailed    = "REQUEST_FAILED"
)

type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
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

// New stamps an event with the current time. visitorID may be empty (CLI).
func New(eventType, visitorID string, data map[string]interface{}) BaseEvent {
	if data == nil {
		data = make(map[string]interface{})
	}
	if visitorID != "" {
		data["visitor_id"] = visitorID
	}
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now().UTC()}
}

// Marshal encodes any Event into the wire envelope.
func Marshal(e Event) ([]byte, error) {
	return json.Marshal(BaseEvent{Type: e.EventType(), Data: e.Payload(), OccurredAt: e.Timestamp()})
}

// Unmarshal decodes the wire envelope.
func Unmarshal(data []byte) (BaseEvent, error) {
	var e BaseEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return BaseEvent{}, fmt.Errorf("decode event: %w", err)
	}
	if e.Type == "" {
		return BaseEvent{}, fmt.Errorf("decode event: missing type")
	}
	return e, nil
}
