package attendancelock

import "time"

type LockRequest struct {
	ScopeKey string `json:"scope_key" binding:"required"`
}

type UnlockRequest struct {
	ScopeKey string `json:"scope_key" binding:"required"`
	Reason   string `json:"reason" binding:"required"`
}

type LockResponse struct {
	ScopeKey string    `json:"scope_key"`
	Locked   bool      `json:"locked"`
	LockedBy string    `json:"locked_by"`
	LockedAt time.Time `json:"locked_at"`

	UnlockedBy   *string    `json:"unlocked_by,omitempty"`
	UnlockedAt   *time.Time `json:"unlocked_at,omitempty"`
	UnlockReason *string    `json:"unlock_reason,omitempty"`
}
