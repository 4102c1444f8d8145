package payroll

import (
	"context"
	"fmt"
	"testing"
	"time"

	"organizerpro/internal/attendance"
	"organizerpro/internal/ledger"
	"organizerpro/internal/member"
	"organizerpro/internal/messaging/kafka"
	payrollerrors "organizerpro/internal/payroll/errors"
	"organizerpro/internal/principal"
	"organizerpro/internal/shared/clock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)
	return gdb, mock
}

type fakeRepo struct {
	byID map[string]*Payroll
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[string]*Payroll{}}
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, p *Payroll) error {
	cp := *p
	f.byID[p.ID.String()] = &cp
	return nil
}
func (f *fakeRepo) Update(ctx context.Context, p *Payroll) error {
	cp := *p
	f.byID[p.ID.String()] = &cp
	return nil
}
func (f *fakeRepo) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Payroll, error) {
	if p, ok := f.byID[id]; ok && p.TenantID.String() == tenantID {
		cp := *p
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (f *fakeRepo) FindByPeriod(ctx context.Context, tenantID, memberID string, month, year int) (*Payroll, error) {
	for _, p := range f.byID {
		if p.TenantID.String() == tenantID && p.MemberID.String() == memberID &&
			p.Month == month && p.Year == year {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}
func (f *fakeRepo) List(ctx context.Context, tenantID string, lf ListPayrollFilter) ([]Payroll, error) {
	var out []Payroll
	for _, p := range f.byID {
		if p.TenantID.String() == tenantID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeSummarizer struct {
	summaries []attendance.MemberSummary
	err       error
}

func (f *fakeSummarizer) MemberSummary(ctx context.Context, p principal.Principal, filter attendance.PeriodFilter) ([]attendance.MemberSummary, error) {
	return f.summaries, f.err
}

type fakeLedger struct {
	entries []ledger.Entry
}

func (f *fakeLedger) WithTx(tx *gorm.DB) ledger.Repository { return f }
func (f *fakeLedger) Create(ctx context.Context, e *ledger.Entry) error {
	f.entries = append(f.entries, *e)
	return nil
}
func (f *fakeLedger) ListByMember(ctx context.Context, tenantID, memberID string) ([]ledger.Entry, error) {
	return f.entries, nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *gorm.DB) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(ctx context.Context, e kafka.OutboxEvent) error {
	f.created = append(f.created, e)
	return nil
}
func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}
func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error      { return nil }
func (f *fakeOutbox) MarkFailed(ctx context.Context, id, r string) error { return nil }

var testClock = clock.Fixed(time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC))

func testPrincipal() principal.Principal {
	return principal.Principal{
		TenantID:   uuid.New().String(),
		MemberID:   uuid.New().String(),
		Role:       "OWNER",
		Sector:     "manufacturing",
		Privileged: true,
	}
}

func dailySummary(memberID string) attendance.MemberSummary {
	return attendance.MemberSummary{
		MemberID:   memberID,
		MemberName: "Asha Rao",
		Present:    20,
		HalfDay:    2,
		CL:         1,
		WageType:   member.WageTypeDaily,
		WageRate:   500,
	}
}

func TestService_Generate_DailyWage(t *testing.T) {
	gdb, mock := newGormDB(t)
	p := testPrincipal()
	memberID := uuid.New().String()

	repo := newFakeRepo()
	svc := NewService(gdb, repo, &fakeSummarizer{summaries: []attendance.MemberSummary{dailySummary(memberID)}},
		&fakeLedger{}, &fakeOutbox{}, testClock)

	mock.ExpectBegin()
	mock.ExpectCommit()
	res, err := svc.Generate(context.Background(), p, GeneratePayrollRequest{Month: 3, Year: 2025})
	assert.NoError(t, err)
	assert.Equal(t, 1, res.Generated)
	assert.Len(t, res.Payrolls, 1)

	row := res.Payrolls[0]
	assert.Equal(t, StatusDraft, row.Status)
	assert.Equal(t, 20, row.PresentDays)
	assert.Equal(t, 1, row.PaidLeaveDays)
	// 20 present + 1 CL + 2 half days at 0.5 = 22 effective days.
	assert.Equal(t, 22.0, row.EffectivePresentDays)
	assert.Equal(t, int64(15000), row.BaseSalary)
	assert.Equal(t, int64(11000), row.NetSalary)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Generate_SkipsPaidRows(t *testing.T) {
	gdb, mock := newGormDB(t)
	p := testPrincipal()
	memberID := uuid.New()

	repo := newFakeRepo()
	paid := &Payroll{
		ID:        uuid.New(),
		TenantID:  uuid.MustParse(p.TenantID),
		MemberID:  memberID,
		Month:     3,
		Year:      2025,
		NetSalary: 11000,
		Status:    StatusPaid,
	}
	assert.NoError(t, repo.Create(context.Background(), paid))

	svc := NewService(gdb, repo, &fakeSummarizer{summaries: []attendance.MemberSummary{dailySummary(memberID.String())}},
		&fakeLedger{}, &fakeOutbox{}, testClock)

	mock.ExpectBegin()
	mock.ExpectCommit()
	res, err := svc.Generate(context.Background(), p, GeneratePayrollRequest{Month: 3, Year: 2025})
	assert.NoError(t, err)
	assert.Equal(t, 0, res.Generated)
	assert.Equal(t, []string{memberID.String()}, res.SkippedPaid)

	// The paid row must be untouched.
	kept, err := repo.FindByIDAndTenant(context.Background(), p.TenantID, paid.ID.String())
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, kept.Status)
	assert.Equal(t, int64(11000), kept.NetSalary)
}

func TestService_Generate_NoData(t *testing.T) {
	gdb, _ := newGormDB(t)
	svc := NewService(gdb, newFakeRepo(), &fakeSummarizer{}, &fakeLedger{}, &fakeOutbox{}, testClock)

	_, err := svc.Generate(context.Background(), testPrincipal(), GeneratePayrollRequest{Month: 3, Year: 2025})
	assert.ErrorIs(t, err, payrollerrors.ErrNoAttendanceData)
}

func TestService_ApproveAndPayLifecycle(t *testing.T) {
	gdb, mock := newGormDB(t)
	p := testPrincipal()
	memberID := uuid.New().String()

	repo := newFakeRepo()
	entries := &fakeLedger{}
	outbox := &fakeOutbox{}
	svc := NewService(gdb, repo, &fakeSummarizer{summaries: []attendance.MemberSummary{dailySummary(memberID)}},
		entries, outbox, testClock)

	mock.ExpectBegin()
	mock.ExpectCommit()
	res, err := svc.Generate(context.Background(), p, GeneratePayrollRequest{Month: 3, Year: 2025})
	assert.NoError(t, err)
	id := res.Payrolls[0].ID

	// Paying a draft is rejected.
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Pay(context.Background(), p, id, PayPayrollRequest{PaymentMode: PaymentModeBankTransfer})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)

	mock.ExpectBegin()
	mock.ExpectCommit()
	approved, err := svc.Approve(context.Background(), p, id)
	assert.NoError(t, err)
	assert.Equal(t, StatusApproved, approved.Status)
	assert.NotNil(t, approved.ApprovedAt)

	// Approving twice is rejected.
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Approve(context.Background(), p, id)
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidStatusTransition)

	mock.ExpectBegin()
	mock.ExpectCommit()
	paid, err := svc.Pay(context.Background(), p, id, PayPayrollRequest{PaymentMode: PaymentModeBankTransfer})
	assert.NoError(t, err)
	assert.Equal(t, StatusPaid, paid.Status)
	assert.Equal(t, PaymentModeBankTransfer, *paid.PaymentMode)
	assert.NotEmpty(t, *paid.TransactionRef)

	// Exactly one ledger expense for the net amount, plus the paid event.
	assert.Len(t, entries.entries, 1)
	assert.Equal(t, ledger.EntryTypeExpense, entries.entries[0].EntryType)
	assert.Equal(t, int64(11000), entries.entries[0].Amount)
	assert.Len(t, outbox.created, 1)
	assert.Equal(t, "payroll.paid", outbox.created[0].EventType)

	// Any further mutation hits the immutability wall.
	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Pay(context.Background(), p, id, PayPayrollRequest{PaymentMode: PaymentModeCash})
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollPaidImmutable)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Approve(context.Background(), p, id)
	assert.ErrorIs(t, err, payrollerrors.ErrPayrollPaidImmutable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Pay_RejectsUnknownMode(t *testing.T) {
	gdb, _ := newGormDB(t)
	svc := NewService(gdb, newFakeRepo(), &fakeSummarizer{}, &fakeLedger{}, &fakeOutbox{}, testClock)

	_, err := svc.Pay(context.Background(), testPrincipal(), uuid.New().String(), PayPayrollRequest{PaymentMode: "cheque"})
	assert.ErrorIs(t, err, payrollerrors.ErrInvalidPaymentMode)
}

func TestService_Generate_InvalidPeriod(t *testing.T) {
	gdb, _ := newGormDB(t)
	svc := NewService(gdb, newFakeRepo(), &fakeSummarizer{}, &fakeLedger{}, &fakeOutbox{}, testClock)

	for _, req := range []GeneratePayrollRequest{
		{Month: 0, Year: 2025},
		{Month: 13, Year: 2025},
		{Month: 3, Year: 1999},
	} {
		_, err := svc.Generate(context.Background(), testPrincipal(), req)
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod, fmt.Sprintf("month=%d year=%d", req.Month, req.Year))
	}
}
