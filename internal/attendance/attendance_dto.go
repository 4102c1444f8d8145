package attendance

type CreateAttendanceRequest struct {
	MemberID         string   `json:"member_id" binding:"required"`
	Date             string   `json:"date" binding:"required"`
	ContextID        *string  `json:"context_id"`
	Status           string   `json:"status"`
	Label            *string  `json:"label"`
	CheckIn          *string  `json:"check_in"`
	CheckOut         *string  `json:"check_out"`
	TotalHours       *float64 `json:"total_hours"`
	WorkMode         *string  `json:"work_mode"`
	Note             *string  `json:"note"`
	PermissionStart  *string  `json:"permission_start"`
	PermissionEnd    *string  `json:"permission_end"`
	PermissionReason *string  `json:"permission_reason"`
	OvertimeHours    *float64 `json:"overtime_hours"`
	OvertimeReason   *string  `json:"overtime_reason"`
}

// QuickMarkRequest is the one-click marking payload; everything except the
// key and status is optional and merged non-destructively on upsert.
type QuickMarkRequest struct {
	MemberID         string   `json:"member_id" binding:"required"`
	Date             string   `json:"date" binding:"required"`
	Status           string   `json:"status"`
	ContextID        *string  `json:"context_id"`
	Label            *string  `json:"label"`
	CheckIn          *string  `json:"check_in"`
	CheckOut         *string  `json:"check_out"`
	TotalHours       *float64 `json:"total_hours"`
	WorkMode         *string  `json:"work_mode"`
	Note             *string  `json:"note"`
	PermissionStart  *string  `json:"permission_start"`
	PermissionEnd    *string  `json:"permission_end"`
	PermissionReason *string  `json:"permission_reason"`
	OvertimeHours    *float64 `json:"overtime_hours"`
	OvertimeReason   *string  `json:"overtime_reason"`
}

type BulkMarkRequest struct {
	MemberIDs []string `json:"member_ids" binding:"required,min=1"`
	Date      string   `json:"date" binding:"required"`
	Status    string   `json:"status"`
	Note      *string  `json:"note"`
}

type UpdateAttendanceRequest struct {
	Date             *string  `json:"date"`
	Status           *string  `json:"status"`
	Label            *string  `json:"label"`
	CheckIn          *string  `json:"check_in"`
	CheckOut         *string  `json:"check_out"`
	TotalHours       *float64 `json:"total_hours"`
	WorkMode         *string  `json:"work_mode"`
	Note             *string  `json:"note"`
	PermissionStart  *string  `json:"permission_start"`
	PermissionEnd    *string  `json:"permission_end"`
	PermissionReason *string  `json:"permission_reason"`
	OvertimeHours    *float64 `json:"overtime_hours"`
	OvertimeReason   *string  `json:"overtime_reason"`
}

// PeriodFilter selects exactly one period shape: a single date, an ISO week,
// a month, a year, or an explicit range.
type PeriodFilter struct {
	Date      string `form:"date"`
	Week      string `form:"week"`
	Month     string `form:"month"`
	Year      string `form:"year"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`

	MemberID   string `form:"member_id"`
	Role       string `form:"role"`
	Department string `form:"department"`
}

type AttendanceResponse struct {
	ID               string   `json:"id"`
	MemberID         string   `json:"member_id"`
	MemberName       string   `json:"member_name,omitempty"`
	Date             string   `json:"date"`
	ContextID        *string  `json:"context_id,omitempty"`
	Status           string   `json:"status"`
	Label            string   `json:"label,omitempty"`
	CheckIn          *string  `json:"check_in,omitempty"`
	CheckOut         *string  `json:"check_out,omitempty"`
	TotalHours       float64  `json:"total_hours"`
	WorkMode         *string  `json:"work_mode,omitempty"`
	Note             *string  `json:"note,omitempty"`
	PermissionStart  *string  `json:"permission_start,omitempty"`
	PermissionEnd    *string  `json:"permission_end,omitempty"`
	PermissionReason *string  `json:"permission_reason,omitempty"`
	OvertimeHours    float64  `json:"overtime_hours"`
	OvertimeReason   *string  `json:"overtime_reason,omitempty"`
}

// QuickMarkResult reports which upsert branch ran. Exactly one of Created
// and Updated is true.
type QuickMarkResult struct {
	Created bool               `json:"created"`
	Updated bool               `json:"updated"`
	Record  AttendanceResponse `json:"record"`
}

type BulkMarkResult struct {
	Created int               `json:"created"`
	Updated int               `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}

type StatsResponse struct {
	Total    int64            `json:"total"`
	ByStatus map[string]int64 `json:"by_status"`
}

// MemberSummary is the per-member period rollup consumed by the payroll
// generator and the summary endpoint.
type MemberSummary struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`

	Present    int `json:"present"`
	Absent     int `json:"absent"`
	Late       int `json:"late"`
	HalfDay    int `json:"half_day"`
	Permission int `json:"permission"`
	WeekOff    int `json:"week_off"`
	Holiday    int `json:"holiday"`
	CL         int `json:"cl"`
	SL         int `json:"sl"`
	EL         int `json:"el"`
	CO         int `json:"co"`
	OD         int `json:"od"`

	WorkingDays   int     `json:"working_days"`
	HoursWorked   float64 `json:"hours_worked"`
	OvertimeHours float64 `json:"overtime_hours"`

	WageType     string `json:"wage_type,omitempty"`
	WageRate     int64  `json:"wage_rate,omitempty"`
	OvertimeRate int64  `json:"overtime_rate,omitempty"`

	EstimatedBase     int64 `json:"estimated_base,omitempty"`
	EstimatedOvertime int64 `json:"estimated_overtime,omitempty"`
	EstimatedTotal    int64 `json:"estimated_total,omitempty"`
}
