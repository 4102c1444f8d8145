package payroll

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"organizerpro/internal/attendance"
	"organizerpro/internal/events"
	"organizerpro/internal/ledger"
	"organizerpro/internal/member"
	"organizerpro/internal/messaging/kafka"
	payrollerrors "organizerpro/internal/payroll/errors"
	"organizerpro/internal/principal"
	"organizerpro/internal/shared/clock"
	"organizerpro/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const daysPerMonth = 30

// AttendanceSummarizer is the slice of the attendance service the generator
// consumes.
type AttendanceSummarizer interface {
	MemberSummary(ctx context.Context, p principal.Principal, f attendance.PeriodFilter) ([]attendance.MemberSummary, error)
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Generate(ctx context.Context, p principal.Principal, req GeneratePayrollRequest) (GeneratePayrollResult, error)
	Approve(ctx context.Context, p principal.Principal, id string) (PayrollResponse, error)
	Pay(ctx context.Context, p principal.Principal, id string, req PayPayrollRequest) (PayrollResponse, error)
	GetByID(ctx context.Context, p principal.Principal, id string) (PayrollResponse, error)
	GetAll(ctx context.Context, p principal.Principal, f ListPayrollFilter) ([]PayrollResponse, error)
}

type service struct {
	db        *gorm.DB
	repo      Repository
	summaries AttendanceSummarizer
	entries   ledger.Repository
	outbox    kafka.OutboxRepository
	clk       clock.Clock
	logger    *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	summaries AttendanceSummarizer,
	entries ledger.Repository,
	outbox kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		summaries: summaries,
		entries:   entries,
		outbox:    outbox,
		clk:       clk,
		logger:    l,
	}
}

// Generate derives one draft payroll per member from the month's attendance
// summary. Existing drafts and approved rows are recomputed and reset to
// DRAFT; paid rows are never touched and are reported as skipped.
func (s *service) Generate(ctx context.Context, p principal.Principal, req GeneratePayrollRequest) (GeneratePayrollResult, error) {
	if req.Month < 1 || req.Month > 12 || req.Year < 2000 || req.Year > 2100 {
		return GeneratePayrollResult{}, payrollerrors.ErrInvalidPeriod
	}

	period := fmt.Sprintf("%04d-%02d", req.Year, req.Month)
	summaries, err := s.summaries.MemberSummary(ctx, p, attendance.PeriodFilter{Month: period})
	if err != nil {
		return GeneratePayrollResult{}, err
	}
	if len(req.MemberIDs) > 0 {
		wanted := make(map[string]bool, len(req.MemberIDs))
		for _, id := range req.MemberIDs {
			wanted[id] = true
		}
		kept := summaries[:0]
		for _, sum := range summaries {
			if wanted[sum.MemberID] {
				kept = append(kept, sum)
			}
		}
		summaries = kept
	}
	if len(summaries) == 0 {
		return GeneratePayrollResult{}, payrollerrors.ErrNoAttendanceData
	}

	result := GeneratePayrollResult{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		for _, sum := range summaries {
			existing, err := qtx.FindByPeriod(ctx, p.TenantID, sum.MemberID, req.Month, req.Year)
			if err != nil {
				return err
			}
			if existing != nil && existing.Status == StatusPaid {
				result.SkippedPaid = append(result.SkippedPaid, sum.MemberID)
				continue
			}

			row := existing
			if row == nil {
				row = &Payroll{
					ID:       uuid.New(),
					TenantID: uuid.MustParse(p.TenantID),
					MemberID: uuid.MustParse(sum.MemberID),
					Month:    req.Month,
					Year:     req.Year,
				}
			}
			applySummary(row, sum)
			row.Status = StatusDraft
			row.ApprovedBy, row.ApprovedAt = nil, nil
			row.GeneratedBy = uuid.MustParse(p.MemberID)

			if existing == nil {
				err = qtx.Create(ctx, row)
			} else {
				err = qtx.Update(ctx, row)
			}
			if err != nil {
				return err
			}

			resp := mapToResponse(*row)
			resp.MemberName = sum.MemberName
			result.Payrolls = append(result.Payrolls, resp)
			result.Generated++
		}
		return nil
	})
	if err != nil {
		return GeneratePayrollResult{}, err
	}

	s.logger.Info("payroll generated",
		zap.String("tenant_id", p.TenantID),
		zap.String("period", period),
		zap.Int("generated", result.Generated),
		zap.Int("skipped_paid", len(result.SkippedPaid)),
	)
	return result, nil
}

// applySummary recomputes the figures from the attendance rollup. Leave days
// with pay (CL/SL/EL) count as full presence; half days weigh 0.5.
func applySummary(row *Payroll, sum attendance.MemberSummary) {
	row.PresentDays = sum.Present
	row.AbsentDays = sum.Absent
	row.LateDays = sum.Late
	row.HalfDays = sum.HalfDay
	row.PermissionDays = sum.Permission
	row.PaidLeaveDays = sum.CL + sum.SL + sum.EL
	row.WorkingDays = sum.WorkingDays
	row.OvertimeHours = sum.OvertimeHours

	effective := float64(sum.Present+sum.Late+sum.Permission+sum.CL+sum.SL+sum.EL) +
		0.5*float64(sum.HalfDay)
	row.EffectivePresentDays = effective

	dailyRate := dailyRateFor(sum)
	row.BaseSalary = int64(math.Round(dailyRate * daysPerMonth))
	row.OvertimePay = int64(math.Round(sum.OvertimeHours * float64(sum.OvertimeRate)))
	row.NetSalary = int64(math.Round(effective*dailyRate)) + row.OvertimePay + row.Bonus - row.Deductions
}

func dailyRateFor(sum attendance.MemberSummary) float64 {
	switch sum.WageType {
	case member.WageTypeMonthly:
		return float64(sum.WageRate) / daysPerMonth
	case member.WageTypeHourly:
		return float64(sum.WageRate) * 8
	default:
		return float64(sum.WageRate)
	}
}

func (s *service) Approve(ctx context.Context, p principal.Principal, id string) (PayrollResponse, error) {
	var out *Payroll
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		row, err := qtx.FindByIDAndTenant(ctx, p.TenantID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payrollerrors.ErrPayrollNotFound
			}
			return err
		}
		if row.Status == StatusPaid {
			return payrollerrors.ErrPayrollPaidImmutable
		}
		if row.Status != StatusDraft {
			return payrollerrors.ErrInvalidStatusTransition
		}

		now := s.clk.Now()
		actor := uuid.MustParse(p.MemberID)
		row.Status = StatusApproved
		row.ApprovedBy = &actor
		row.ApprovedAt = &now
		if err := qtx.Update(ctx, row); err != nil {
			return err
		}
		out = row
		return nil
	})
	if err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll approved",
		zap.String("payroll_id", id),
		zap.String("tenant_id", p.TenantID),
		zap.String("approved_by", p.MemberID),
	)
	return mapToResponse(*out), nil
}

// Pay settles an approved payroll: flips it to PAID, books the ledger
// expense, and queues the paid event. All three happen in one transaction.
func (s *service) Pay(ctx context.Context, p principal.Principal, id string, req PayPayrollRequest) (PayrollResponse, error) {
	switch req.PaymentMode {
	case PaymentModeCash, PaymentModeBankTransfer, PaymentModeUPI:
	default:
		return PayrollResponse{}, payrollerrors.ErrInvalidPaymentMode
	}

	var out *Payroll
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		ltx := s.entries.WithTx(tx)
		otx := s.outbox.WithTx(tx)

		row, err := qtx.FindByIDAndTenant(ctx, p.TenantID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return payrollerrors.ErrPayrollNotFound
			}
			return err
		}
		if row.Status == StatusPaid {
			return payrollerrors.ErrPayrollPaidImmutable
		}
		if row.Status != StatusApproved {
			return payrollerrors.ErrInvalidStatusTransition
		}

		now := s.clk.Now()
		actor := uuid.MustParse(p.MemberID)
		txRef := newTransactionRef(req.TransactionRef)

		row.Status = StatusPaid
		row.PaymentMode = &req.PaymentMode
		row.TransactionRef = &txRef
		row.PaidBy = &actor
		row.PaidAt = &now
		if err := qtx.Update(ctx, row); err != nil {
			return err
		}

		memberID := row.MemberID
		entry := &ledger.Entry{
			ID:        uuid.New(),
			TenantID:  row.TenantID,
			MemberID:  &memberID,
			EntryType: ledger.EntryTypeExpense,
			Amount:    row.NetSalary,
			EntryDate: now,
			Label:     fmt.Sprintf("Payroll %04d-%02d", row.Year, row.Month),
			Reference: &txRef,
			CreatedBy: actor,
		}
		if err := ltx.Create(ctx, entry); err != nil {
			return err
		}

		event, err := kafka.NewOutboxEvent(
			contextutil.GetRequestID(ctx),
			"payroll",
			row.ID.String(),
			"payroll.paid",
			events.PayrollPaidTopic,
			events.PayrollPaidEvent{
				EventType:      "payroll.paid",
				PayrollID:      row.ID.String(),
				TenantID:       p.TenantID,
				MemberID:       row.MemberID.String(),
				NetSalary:      row.NetSalary,
				PaymentMode:    req.PaymentMode,
				TransactionRef: txRef,
				PaidBy:         p.MemberID,
				OccurredAt:     now,
			},
		)
		if err != nil {
			return err
		}
		if err := otx.Create(ctx, event); err != nil {
			return err
		}

		out = row
		return nil
	})
	if err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll paid",
		zap.String("payroll_id", id),
		zap.String("tenant_id", p.TenantID),
		zap.Int64("net_salary", out.NetSalary),
		zap.String("payment_mode", req.PaymentMode),
	)
	return mapToResponse(*out), nil
}

func newTransactionRef(supplied *string) string {
	if supplied != nil && *supplied != "" {
		return *supplied
	}
	return "PAY-" + strings.ToUpper(uuid.New().String()[:8])
}

func (s *service) GetByID(ctx context.Context, p principal.Principal, id string) (PayrollResponse, error) {
	row, err := s.repo.FindByIDAndTenant(ctx, p.TenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) GetAll(ctx context.Context, p principal.Principal, f ListPayrollFilter) ([]PayrollResponse, error) {
	rows, err := s.repo.List(ctx, p.TenantID, f)
	if err != nil {
		return nil, err
	}
	out := make([]PayrollResponse, len(rows))
	for i, row := range rows {
		out[i] = mapToResponse(row)
	}
	return out, nil
}

func mapToResponse(row Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:       row.ID.String(),
		MemberID: row.MemberID.String(),
		Month:    row.Month,
		Year:     row.Year,

		PresentDays:    row.PresentDays,
		AbsentDays:     row.AbsentDays,
		LateDays:       row.LateDays,
		HalfDays:       row.HalfDays,
		PermissionDays: row.PermissionDays,
		PaidLeaveDays:  row.PaidLeaveDays,
		WorkingDays:    row.WorkingDays,
		OvertimeHours:  row.OvertimeHours,

		EffectivePresentDays: row.EffectivePresentDays,
		BaseSalary:           row.BaseSalary,
		OvertimePay:          row.OvertimePay,
		Bonus:                row.Bonus,
		Deductions:           row.Deductions,
		NetSalary:            row.NetSalary,

		Status:         row.Status,
		PaymentMode:    row.PaymentMode,
		TransactionRef: row.TransactionRef,
		ApprovedAt:     row.ApprovedAt,
		PaidAt:         row.PaidAt,
	}
	if row.Member != nil {
		resp.MemberName = row.Member.FullName
	}
	return resp
}
