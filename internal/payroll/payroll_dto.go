package payroll

import "time"

type GeneratePayrollRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12"`
	Year  int `json:"year" binding:"required,min=2000,max=2100"`

	// Optional narrowing; empty means every active member with attendance.
	MemberIDs []string `json:"member_ids"`
}

type PayPayrollRequest struct {
	PaymentMode    string  `json:"payment_mode" binding:"required"`
	TransactionRef *string `json:"transaction_ref"`
}

type ListPayrollFilter struct {
	Month    int    `form:"month"`
	Year     int    `form:"year"`
	Status   string `form:"status"`
	MemberID string `form:"member_id"`
}

type PayrollResponse struct {
	ID         string `json:"id"`
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name,omitempty"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`

	PresentDays    int     `json:"present_days"`
	AbsentDays     int     `json:"absent_days"`
	LateDays       int     `json:"late_days"`
	HalfDays       int     `json:"half_days"`
	PermissionDays int     `json:"permission_days"`
	PaidLeaveDays  int     `json:"paid_leave_days"`
	WorkingDays    int     `json:"working_days"`
	OvertimeHours  float64 `json:"overtime_hours"`

	EffectivePresentDays float64 `json:"effective_present_days"`
	BaseSalary           int64   `json:"base_salary"`
	OvertimePay          int64   `json:"overtime_pay"`
	Bonus                int64   `json:"bonus"`
	Deductions           int64   `json:"deductions"`
	NetSalary            int64   `json:"net_salary"`

	Status         string     `json:"status"`
	PaymentMode    *string    `json:"payment_mode,omitempty"`
	TransactionRef *string    `json:"transaction_ref,omitempty"`
	ApprovedAt     *time.Time `json:"approved_at,omitempty"`
	PaidAt         *time.Time `json:"paid_at,omitempty"`
}

// GeneratePayrollResult reports what a generation run did: freshly written
// drafts plus the member ids whose paid payrolls were left untouched.
type GeneratePayrollResult struct {
	Generated   int               `json:"generated"`
	SkippedPaid []string          `json:"skipped_paid,omitempty"`
	Payrolls    []PayrollResponse `json:"payrolls"`
}
