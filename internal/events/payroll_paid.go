package events

import "time"

const PayrollPaidTopic = "backoffice.payroll.paid.v1"

type PayrollPaidEvent struct {
	EventType      string    `json:"event_type"`
	PayrollID      string    `json:"payroll_id"`
	TenantID       string    `json:"tenant_id"`
	MemberID       string    `json:"member_id"`
	NetSalary      int64     `json:"net_salary"`
	PaymentMode    string    `json:"payment_mode"`
	TransactionRef string    `json:"transaction_ref"`
	PaidBy         string    `json:"paid_by"`
	OccurredAt     time.Time `json:"occurred_at"`
}
