package member

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	WageTypeMonthly = "MONTHLY"
	WageTypeDaily   = "DAILY"
	WageTypeHourly  = "HOURLY"
)

const (
	LeaveCL = "CL"
	LeaveSL = "SL"
	LeaveEL = "EL"
)

// Member is the directory record this core consumes: wage profile plus the
// per-type leave balances the ledger decrements.
type Member struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID `gorm:"column:tenant_id;type:uuid;not null;index"`
	FullName string    `gorm:"column:full_name;type:varchar(120);not null"`
	Role     string    `gorm:"column:role;type:varchar(40);not null;default:'STAFF'"`
	Department *string `gorm:"column:department;type:varchar(80)"`

	// Wage amounts in the smallest currency unit to avoid floating error.
	WageType     string `gorm:"column:wage_type;type:varchar(10);not null;default:'MONTHLY'"`
	WageRate     int64  `gorm:"column:wage_rate;type:bigint;not null;default:0"`
	OvertimeRate int64  `gorm:"column:overtime_rate;type:bigint;not null;default:0"`

	CLBalance int `gorm:"column:cl_balance;type:int;not null;default:0"`
	SLBalance int `gorm:"column:sl_balance;type:int;not null;default:0"`
	ELBalance int `gorm:"column:el_balance;type:int;not null;default:0"`

	Active    bool           `gorm:"column:active;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Member) TableName() string {
	return "members"
}

// Balance returns the remaining entitlement for a leave type.
func (m Member) Balance(leaveType string) int {
	switch leaveType {
	case LeaveCL:
		return m.CLBalance
	case LeaveSL:
		return m.SLBalance
	case LeaveEL:
		return m.ELBalance
	default:
		return 0
	}
}
