package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a money movement in the tenant's book. Payroll payment writes
// exactly one expense entry per payroll, in the payment transaction.
type Entry struct {
	ID       uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID uuid.UUID  `gorm:"column:tenant_id;type:uuid;not null;index"`
	MemberID *uuid.UUID `gorm:"column:member_id;type:uuid"`

	// Amount in the smallest currency unit; expenses are positive here and
	// the entry type carries the direction.
	EntryType string    `gorm:"column:entry_type;type:varchar(10);not null"`
	Amount    int64     `gorm:"column:amount;type:bigint;not null"`
	EntryDate time.Time `gorm:"column:entry_date;type:date;not null"`
	Label     string    `gorm:"column:label;type:varchar(120);not null"`
	Reference *string   `gorm:"column:reference;type:varchar(80)"`

	CreatedBy uuid.UUID `gorm:"column:created_by;type:uuid;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

const (
	EntryTypeExpense = "expense"
	EntryTypeIncome  = "income"
)

func (Entry) TableName() string {
	return "ledger_entries"
}
