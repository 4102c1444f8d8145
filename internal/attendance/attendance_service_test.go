package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	attendanceerrors "organizerpro/internal/attendance/errors"
	"organizerpro/internal/member"
	membererrors "organizerpro/internal/member/errors"
	"organizerpro/internal/principal"
	"organizerpro/internal/shared/apperror"
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
	createFn                 func(ctx context.Context, a *Attendance) error
	findByIDAndTenantFn      func(ctx context.Context, tenantID, id string) (*Attendance, error)
	findByKeyFn              func(ctx context.Context, tenantID, memberID string, date time.Time, contextID *string) (*Attendance, error)
	findAllByMemberAndDateFn func(ctx context.Context, tenantID, memberID string, date time.Time) ([]Attendance, error)
	updateFn                 func(ctx context.Context, a *Attendance) error
	deleteFn                 func(ctx context.Context, tenantID, id string) error
	listFn                   func(ctx context.Context, tenantID string, f ListFilter) ([]Attendance, error)
	countByStatusFn          func(ctx context.Context, tenantID string, f ListFilter) ([]StatusCount, error)
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, a *Attendance) error {
	return f.createFn(ctx, a)
}
func (f *fakeRepo) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Attendance, error) {
	return f.findByIDAndTenantFn(ctx, tenantID, id)
}
func (f *fakeRepo) FindByKey(ctx context.Context, tenantID, memberID string, date time.Time, contextID *string) (*Attendance, error) {
	return f.findByKeyFn(ctx, tenantID, memberID, date, contextID)
}
func (f *fakeRepo) FindAllByMemberAndDate(ctx context.Context, tenantID, memberID string, date time.Time) ([]Attendance, error) {
	return f.findAllByMemberAndDateFn(ctx, tenantID, memberID, date)
}
func (f *fakeRepo) Update(ctx context.Context, a *Attendance) error {
	return f.updateFn(ctx, a)
}
func (f *fakeRepo) Delete(ctx context.Context, tenantID, id string) error {
	return f.deleteFn(ctx, tenantID, id)
}
func (f *fakeRepo) List(ctx context.Context, tenantID string, lf ListFilter) ([]Attendance, error) {
	return f.listFn(ctx, tenantID, lf)
}
func (f *fakeRepo) CountByStatus(ctx context.Context, tenantID string, lf ListFilter) ([]StatusCount, error) {
	return f.countByStatusFn(ctx, tenantID, lf)
}

type fakeMembers struct {
	findByIDFn   func(ctx context.Context, tenantID, id string) (*member.Member, error)
	findActiveFn func(ctx context.Context, tenantID string, role, department *string) ([]member.Member, error)
	chargeFn     func(ctx context.Context, tenantID, memberID, leaveType string) error
}

func (f *fakeMembers) WithTx(tx *gorm.DB) member.Repository { return f }
func (f *fakeMembers) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*member.Member, error) {
	return f.findByIDFn(ctx, tenantID, id)
}
func (f *fakeMembers) FindActiveByTenant(ctx context.Context, tenantID string, role, department *string) ([]member.Member, error) {
	return f.findActiveFn(ctx, tenantID, role, department)
}
func (f *fakeMembers) ChargeLeave(ctx context.Context, tenantID, memberID, leaveType string) error {
	return f.chargeFn(ctx, tenantID, memberID, leaveType)
}

type fakeLocks struct {
	locked map[string]bool
}

func (f *fakeLocks) IsLocked(ctx context.Context, tenantID, scopeKey string) (bool, error) {
	return f.locked[scopeKey], nil
}

func testPrincipal(sector string, privileged bool) principal.Principal {
	return principal.Principal{
		TenantID:   uuid.New().String(),
		MemberID:   uuid.New().String(),
		Role:       "ADMIN",
		Sector:     sector,
		Privileged: privileged,
	}
}

var testClock = clock.Fixed(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))

func permissiveMembers() *fakeMembers {
	return &fakeMembers{
		findByIDFn: func(ctx context.Context, tenantID, id string) (*member.Member, error) {
			return &member.Member{ID: uuid.MustParse(id)}, nil
		},
		chargeFn: func(ctx context.Context, tenantID, memberID, leaveType string) error {
			return nil
		},
	}
}

func TestService_QuickMark_CreateAppliesShiftDefaults(t *testing.T) {
	gdb, mock := newGormDB(t)
	p := testPrincipal("manufacturing", true)
	memberID := uuid.New().String()

	var saved Attendance
	repo := &fakeRepo{
		findByKeyFn: func(ctx context.Context, tenantID, mid string, date time.Time, contextID *string) (*Attendance, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, a *Attendance) error { saved = *a; return nil },
	}

	svc := NewService(gdb, repo, permissiveMembers(), &fakeLocks{}, testClock)

	mock.ExpectBegin()
	mock.ExpectCommit()
	res, err := svc.QuickMark(context.Background(), p, QuickMarkRequest{
		MemberID: memberID,
		Date:     "2025-03-10",
	})
	assert.NoError(t, err)
	assert.True(t, res.Created)
	assert.False(t, res.Updated)

	assert.Equal(t, StatusPresent, saved.Status)
	assert.Equal(t, "line", saved.Label)
	assert.Equal(t, "08:00", *saved.CheckIn)
	assert.Equal(t, "16:00", *saved.CheckOut)
	assert.Equal(t, 8.0, saved.TotalHours)
	assert.Equal(t, 0.0, saved.OvertimeHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_QuickMark_MergeKeepsExistingFields(t *testing.T) {
	gdb, mock := newGormDB(t)
	p := testPrincipal("manufacturing", true)
	memberID := uuid.New()

	in, out := "08:00", "16:00"
	existing := Attendance{
		ID:         uuid.New(),
		MemberID:   memberID,
		WorkDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:     StatusPresent,
		Label:      "line",
		CheckIn:    &in,
		CheckOut:   &out,
		TotalHours: 8,
	}

	var updated Attendance
	repo := &fakeRepo{
		findByKeyFn: func(ctx context.Context, tenantID, mid string, date time.Time, contextID *string) (*Attendance, error) {
			e := existing
			return &e, nil
		},
		updateFn: func(ctx context.Context, a *Attendance) error { updated = *a; return nil },
	}

	svc := NewService(gdb, repo, permissiveMembers(), &fakeLocks{}, testClock)

	note := "left early"
	mock.ExpectBegin()
	mock.ExpectCommit()
	res, err := svc.QuickMark(context.Background(), p, QuickMarkRequest{
		MemberID: memberID.String(),
		Date:     "2025-03-10",
		Status:   StatusHalfDay,
		Note:     &note,
	})
	assert.NoError(t, err)
	assert.True(t, res.Updated)
	assert.False(t, res.Created)

	// Supplied fields win, absent fields survive.
	assert.Equal(t, StatusHalfDay, updated.Status)
	assert.Equal(t, "left early", *updated.Note)
	assert.Equal(t, "08:00", *updated.CheckIn)
	assert.Equal(t, 8.0, updated.TotalHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_QuickMark_OmittedStatusSurvivesMerge(t *testing.T) {
	gdb, mock := newGormDB(t)
	p := testPrincipal("manufacturing", true)
	memberID := uuid.New()

	existing := Attendance{
		ID:       uuid.New(),
		MemberID: memberID,
		WorkDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:   StatusSL,
	}

	charges := 0
	members := permissiveMembers()
	members.chargeFn = func(ctx context.Context, tenantID, mid, leaveType string) error {
		charges++
		return nil
	}

	var updated Attendance
	repo := &fakeRepo{
		findByKeyFn: func(ctx context.Context, tenantID, mid string, date time.Time, contextID *string) (*Attendance, error) {
			e := existing
			return &e, nil
		},
		updateFn: func(ctx context.Context, a *Attendance) error { updated = *a; return nil },
	}

	svc := NewService(gdb, repo, members, &fakeLocks{}, testClock)

	// A note-only edit of a sick day must not flip the status back to present.
	note := "doctor's certificate received"
	mock.ExpectBegin()
	mock.ExpectCommit()
	res, err := svc.QuickMark(context.Background(), p, QuickMarkRequest{
		MemberID: memberID.String(),
		Date:     "2025-03-10",
		Note:     &note,
	})
	assert.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Equal(t, StatusSL, updated.Status)
	assert.Equal(t, "doctor's certificate received", *updated.Note)
	assert.Equal(t, 0, charges)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_QuickMark_ChargesLeaveOnlyWhenNewlyAssigned(t *testing.T) {
	gdb, mock := newGormDB(t)
	p := testPrincipal("manufacturing", true)
	memberID := uuid.New()

	existing := Attendance{
		ID:       uuid.New(),
		MemberID: memberID,
		WorkDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:   StatusSL,
	}

	charges := 0
	members := permissiveMembers()
	members.chargeFn = func(ctx context.Context, tenantID, mid, leaveType string) error {
		charges++
		return nil
	}
	repo := &fakeRepo{
		findByKeyFn: func(ctx context.Context, tenantID, mid string, date time.Time, contextID *string) (*Attendance, error) {
			e := existing
			return &e, nil
		},
		updateFn: func(ctx context.Context, a *Attendance) error { return nil },
	}

	svc := NewService(gdb, repo, members, &fakeLocks{}, testClock)

	// Re-marking the same leave status must not draw the balance down again.
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.QuickMark(context.Background(), p, QuickMarkRequest{
		MemberID: memberID.String(),
		Date:     "2025-03-10",
		Status:   StatusSL,
	})
	assert.NoError(t, err)
	assert.Equal(t, 0, charges)

	// Switching to a different leave type charges once.
	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.QuickMark(context.Background(), p, QuickMarkRequest{
		MemberID: memberID.String(),
		Date:     "2025-03-10",
		Status:   StatusCL,
	})
	assert.NoError(t, err)
	assert.Equal(t, 1, charges)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_QuickMark_InsufficientBalanceRollsBack(t *testing.T) {
	gdb, mock := newGormDB(t)
	p := testPrincipal("manufacturing", true)
	memberID := uuid.New().String()

	members := permissiveMembers()
	members.chargeFn = func(ctx context.Context, tenantID, mid, leaveType string) error {
		return membererrors.InsufficientBalance(leaveType)
	}
	repo := &fakeRepo{
		findByKeyFn: func(ctx context.Context, tenantID, mid string, date time.Time, contextID *string) (*Attendance, error) {
			return nil, nil
		},
		createFn: func(ctx context.Context, a *Attendance) error {
			t.Fatal("record must not be written when the charge fails")
			return nil
		},
	}

	svc := NewService(gdb, repo, members, &fakeLocks{}, testClock)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.QuickMark(context.Background(), p, QuickMarkRequest{
		MemberID: memberID,
		Date:     "2025-03-10",
		Status:   StatusSL,
	})
	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeInsufficientBalance, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_PastDateForbiddenForUnprivileged(t *testing.T) {
	gdb, mock := newGormDB(t)
	p := testPrincipal("manufacturing", false)

	svc := NewService(gdb, &fakeRepo{}, permissiveMembers(), &fakeLocks{}, testClock)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), p, CreateAttendanceRequest{
		MemberID: uuid.New().String(),
		Date:     "2025-03-09",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrPastDateForbidden)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_LockedScopeRejected(t *testing.T) {
	gdb, mock := newGormDB(t)
	p := testPrincipal("manufacturing", false)

	locks := &fakeLocks{locked: map[string]bool{"2025-03-10": true}}
	svc := NewService(gdb, &fakeRepo{}, permissiveMembers(), locks, testClock)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), p, CreateAttendanceRequest{
		MemberID: uuid.New().String(),
		Date:     "2025-03-10",
	})
	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeLocked, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_DuplicateDaySingleShiftSector(t *testing.T) {
	gdb, mock := newGormDB(t)
	p := testPrincipal("manufacturing", true)
	memberID := uuid.New()

	repo := &fakeRepo{
		findAllByMemberAndDateFn: func(ctx context.Context, tenantID, mid string, date time.Time) ([]Attendance, error) {
			return []Attendance{{ID: uuid.New(), MemberID: memberID}}, nil
		},
	}
	svc := NewService(gdb, repo, permissiveMembers(), &fakeLocks{}, testClock)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), p, CreateAttendanceRequest{
		MemberID: memberID.String(),
		Date:     "2025-03-10",
	})
	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Create_MultiShiftOverlap(t *testing.T) {
	gdb, mock := newGormDB(t)
	p := testPrincipal("hospitality", true)
	memberID := uuid.New()

	in, out := "09:00", "17:00"
	repo := &fakeRepo{
		findAllByMemberAndDateFn: func(ctx context.Context, tenantID, mid string, date time.Time) ([]Attendance, error) {
			return []Attendance{{ID: uuid.New(), MemberID: memberID, CheckIn: &in, CheckOut: &out}}, nil
		},
		createFn: func(ctx context.Context, a *Attendance) error { return nil },
	}
	svc := NewService(gdb, repo, permissiveMembers(), &fakeLocks{}, testClock)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err := svc.Create(context.Background(), p, CreateAttendanceRequest{
		MemberID: memberID.String(),
		Date:     "2025-03-10",
		CheckIn:  strp("16:00"),
		CheckOut: strp("20:00"),
	})
	var appErr *apperror.AppError
	assert.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.CodeConflict, appErr.Code)

	// A back-to-back second shift is allowed.
	mock.ExpectBegin()
	mock.ExpectCommit()
	resp, err := svc.Create(context.Background(), p, CreateAttendanceRequest{
		MemberID: memberID.String(),
		Date:     "2025-03-10",
		CheckIn:  strp("17:00"),
		CheckOut: strp("21:00"),
	})
	assert.NoError(t, err)
	assert.Equal(t, 4.0, resp.TotalHours)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Stats(t *testing.T) {
	gdb, _ := newGormDB(t)
	p := testPrincipal("manufacturing", true)

	repo := &fakeRepo{
		countByStatusFn: func(ctx context.Context, tenantID string, f ListFilter) ([]StatusCount, error) {
			return []StatusCount{
				{Status: StatusPresent, Count: 18},
				{Status: StatusAbsent, Count: 2},
				{Status: StatusSL, Count: 1},
			}, nil
		},
	}
	svc := NewService(gdb, repo, permissiveMembers(), &fakeLocks{}, testClock)

	resp, err := svc.Stats(context.Background(), p, PeriodFilter{Month: "2025-03"})
	assert.NoError(t, err)
	assert.Equal(t, int64(21), resp.Total)
	assert.Equal(t, int64(18), resp.ByStatus[StatusPresent])
}

func TestService_MemberSummary_WageEstimate(t *testing.T) {
	gdb, _ := newGormDB(t)
	p := testPrincipal("manufacturing", true)
	memberID := uuid.New()

	members := permissiveMembers()
	members.findActiveFn = func(ctx context.Context, tenantID string, role, department *string) ([]member.Member, error) {
		return []member.Member{{
			ID:           memberID,
			FullName:     "Asha Rao",
			WageType:     member.WageTypeDaily,
			WageRate:     500,
			OvertimeRate: 50,
		}}, nil
	}

	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]Attendance, 0, 23)
	for i := 0; i < 20; i++ {
		rows = append(rows, Attendance{MemberID: memberID, WorkDate: day.AddDate(0, 0, i), Status: StatusPresent, TotalHours: 8, OvertimeHours: 0.5})
	}
	rows = append(rows,
		Attendance{MemberID: memberID, WorkDate: day.AddDate(0, 0, 20), Status: StatusHalfDay, TotalHours: 4},
		Attendance{MemberID: memberID, WorkDate: day.AddDate(0, 0, 21), Status: StatusHalfDay, TotalHours: 4},
		Attendance{MemberID: memberID, WorkDate: day.AddDate(0, 0, 22), Status: StatusCL},
	)
	repo := &fakeRepo{
		listFn: func(ctx context.Context, tenantID string, f ListFilter) ([]Attendance, error) {
			return rows, nil
		},
	}

	svc := NewService(gdb, repo, members, &fakeLocks{}, testClock)

	out, err := svc.MemberSummary(context.Background(), p, PeriodFilter{Month: "2025-03"})
	assert.NoError(t, err)
	assert.Len(t, out, 1)

	sum := out[0]
	assert.Equal(t, 20, sum.Present)
	assert.Equal(t, 2, sum.HalfDay)
	assert.Equal(t, 1, sum.CL)
	assert.Equal(t, 23, sum.WorkingDays)
	assert.Equal(t, 168.0, sum.HoursWorked)
	assert.Equal(t, 10.0, sum.OvertimeHours)

	// Daily wage: (20 + 2*0.5) * 500 base, 10 * 50 overtime.
	assert.Equal(t, int64(10500), sum.EstimatedBase)
	assert.Equal(t, int64(500), sum.EstimatedOvertime)
	assert.Equal(t, int64(11000), sum.EstimatedTotal)
}
