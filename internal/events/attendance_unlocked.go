package events

import "time"

const AttendanceUnlockedTopic = "backoffice.attendance.unlocked.v1"

// AttendanceUnlockedEvent is the audit record for reopening a locked period.
type AttendanceUnlockedEvent struct {
	EventType  string    `json:"event_type"`
	TenantID   string    `json:"tenant_id"`
	ScopeKey   string    `json:"scope_key"`
	UnlockedBy string    `json:"unlocked_by"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}
