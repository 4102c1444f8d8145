package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status buckets. CL/SL/EL draw down the member's leave balance; CO and OD
// are tracked but never charged.
const (
	StatusPresent    = "present"
	StatusAbsent     = "absent"
	StatusLate       = "late"
	StatusHalfDay    = "half_day"
	StatusPermission = "permission"
	StatusWeekOff    = "week_off"
	StatusHoliday    = "holiday"
	StatusCL         = "CL"
	StatusSL         = "SL"
	StatusEL         = "EL"
	StatusCO         = "CO"
	StatusOD         = "OD"
)

func IsLeaveStatus(status string) bool {
	switch status {
	case StatusCL, StatusSL, StatusEL:
		return true
	default:
		return false
	}
}

func IsKnownStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusLate, StatusHalfDay,
		StatusPermission, StatusWeekOff, StatusHoliday,
		StatusCL, StatusSL, StatusEL, StatusCO, StatusOD:
		return true
	default:
		return false
	}
}

// Attendance is one ledger row per (tenant, member, date[, context]). The
// context id disambiguates multiple shifts per day where the sector allows it.
type Attendance struct {
	ID        uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID  uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index:idx_member_day"`
	Sector    string     `gorm:"column:sector;type:varchar(20);not null"`
	MemberID  uuid.UUID  `gorm:"column:member_id;type:uuid;not null;index:idx_member_day"`
	WorkDate  time.Time  `gorm:"column:work_date;type:date;not null;index:idx_member_day"`
	ContextID *uuid.UUID `gorm:"column:context_id;type:uuid"`

	Status string `gorm:"column:status;type:varchar(20);not null;default:'present'"`
	Label  string `gorm:"column:label;type:varchar(80);not null;default:''"`

	// Times of day as "HH:MM"; the date itself lives in WorkDate so an
	// overnight shift stays a single row.
	CheckIn  *string `gorm:"column:check_in;type:varchar(5)"`
	CheckOut *string `gorm:"column:check_out;type:varchar(5)"`

	TotalHours float64 `gorm:"column:total_hours;type:numeric(5,2);not null;default:0"`
	WorkMode   *string `gorm:"column:work_mode;type:varchar(30)"`
	Note       *string `gorm:"column:note;type:text"`

	PermissionStart  *string `gorm:"column:permission_start;type:varchar(5)"`
	PermissionEnd    *string `gorm:"column:permission_end;type:varchar(5)"`
	PermissionReason *string `gorm:"column:permission_reason;type:text"`

	OvertimeHours  float64 `gorm:"column:overtime_hours;type:numeric(5,2);not null;default:0"`
	OvertimeReason *string `gorm:"column:overtime_reason;type:text"`

	CreatedBy uuid.UUID      `gorm:"column:created_by;type:uuid;not null"`
	UpdatedBy uuid.UUID      `gorm:"column:updated_by;type:uuid;not null"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Member *MemberRef `gorm:"foreignKey:MemberID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type MemberRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (MemberRef) TableName() string {
	return "members"
}
