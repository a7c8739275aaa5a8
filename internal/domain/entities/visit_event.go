package entities

import "time"

// VisitLifecycleChannel is the pub/sub channel carrying visit lifecycle
// events for downstream consumers (notification workers, client sync).
const VisitLifecycleChannel = "visits:lifecycle"

// VisitEventType identifies a visit lifecycle event on the event bus.
type VisitEventType string

const (
	VisitEventRetried     VisitEventType = "visit.retried"
	VisitEventTranscribed VisitEventType = "visit.transcribed"
	VisitEventCompleted   VisitEventType = "visit.completed"
	VisitEventFailed      VisitEventType = "visit.failed"
)

// VisitEvent is published whenever a visit changes lifecycle state.
// Downstream consumers (notification workers, sync services) subscribe to it.
type VisitEvent struct {
	ID          string           `json:"id"`
	Type        VisitEventType   `json:"type"`
	VisitID     string           `json:"visit_id"`
	OwnerUserID string           `json:"owner_user_id"`
	Status      ProcessingStatus `json:"status"`
	Timestamp   time.Time        `json:"timestamp"`
}
