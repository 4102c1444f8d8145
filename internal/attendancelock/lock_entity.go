package attendancelock

import (
	"time"

	"github.com/google/uuid"
)

// Lock freezes one scope key for a tenant. The scope key is a date
// ("2006-01-02") or a month ("2006-01") depending on the sector's lock
// granularity; the row is reused across lock/unlock cycles.
type Lock struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;uniqueIndex:idx_tenant_scope"`
	ScopeKey string    `gorm:"column:scope_key;type:varchar(10);not null;uniqueIndex:idx_tenant_scope"`
	Locked   bool      `gorm:"column:locked;not null;default:true"`

	LockedBy uuid.UUID `gorm:"column:locked_by;type:uuid;not null"`
	LockedAt time.Time `gorm:"column:locked_at;not null"`

	UnlockedBy   *uuid.UUID `gorm:"column:unlocked_by;type:uuid"`
	UnlockedAt   *time.Time `gorm:"column:unlocked_at"`
	UnlockReason *string    `gorm:"column:unlock_reason;type:text"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Lock) TableName() string {
	return "attendance_locks"
}
