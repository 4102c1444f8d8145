package payroll

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payroll lifecycle. PAID rows are immutable: regeneration skips them and
// every other mutation is rejected.
const (
	StatusDraft    = "DRAFT"
	StatusApproved = "APPROVED"
	StatusPaid     = "PAID"
)

const (
	PaymentModeCash         = "cash"
	PaymentModeBankTransfer = "bank_transfer"
	PaymentModeUPI          = "upi"
)

// Payroll is one member's settlement for a calendar month, unique per
// (tenant, member, month, year).
type Payroll struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index:idx_member_period,unique"`
	MemberID uuid.UUID  `gorm:"column:member_id;type:uuid;not null;index:idx_member_period,unique"`
	Member   *MemberRef `gorm:"foreignKey:MemberID;references:ID"`

	Month int `gorm:"column:month;type:int;not null;index:idx_member_period,unique"`
	Year  int `gorm:"column:year;type:int;not null;index:idx_member_period,unique"`

	// Attendance snapshot the figures were derived from.
	PresentDays    int     `gorm:"column:present_days;type:int;not null;default:0"`
	AbsentDays     int     `gorm:"column:absent_days;type:int;not null;default:0"`
	LateDays       int     `gorm:"column:late_days;type:int;not null;default:0"`
	HalfDays       int     `gorm:"column:half_days;type:int;not null;default:0"`
	PermissionDays int     `gorm:"column:permission_days;type:int;not null;default:0"`
	PaidLeaveDays  int     `gorm:"column:paid_leave_days;type:int;not null;default:0"`
	WorkingDays    int     `gorm:"column:working_days;type:int;not null;default:0"`
	OvertimeHours  float64 `gorm:"column:overtime_hours;type:numeric(6,2);not null;default:0"`

	// Amounts in the smallest currency unit to avoid floating error.
	EffectivePresentDays float64 `gorm:"column:effective_present_days;type:numeric(5,2);not null;default:0"`
	BaseSalary           int64   `gorm:"column:base_salary;type:bigint;not null;default:0"`
	OvertimePay          int64   `gorm:"column:overtime_pay;type:bigint;not null;default:0"`
	Bonus                int64   `gorm:"column:bonus;type:bigint;not null;default:0"`
	Deductions           int64   `gorm:"column:deductions;type:bigint;not null;default:0"`
	NetSalary            int64   `gorm:"column:net_salary;type:bigint;not null;default:0"`

	Status         string  `gorm:"column:status;type:varchar(10);not null;default:'DRAFT';index"`
	PaymentMode    *string `gorm:"column:payment_mode;type:varchar(20)"`
	TransactionRef *string `gorm:"column:transaction_ref;type:varchar(80)"`

	GeneratedBy uuid.UUID  `gorm:"column:generated_by;type:uuid;not null"`
	ApprovedBy  *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	ApprovedAt  *time.Time `gorm:"column:approved_at;index"`
	PaidBy      *uuid.UUID `gorm:"column:paid_by;type:uuid"`
	PaidAt      *time.Time `gorm:"column:paid_at;index"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (Payroll) TableName() string {
	return "payrolls"
}

type MemberRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
}

func (MemberRef) TableName() string {
	return "members"
}
