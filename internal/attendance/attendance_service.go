package attendance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	attendanceerrors "organizerpro/internal/attendance/errors"
	"organizerpro/internal/member"
	"organizerpro/internal/principal"
	"organizerpro/internal/sector"
	"organizerpro/internal/shared/clock"
	"organizerpro/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const standardShiftHours = 8.0

// LockChecker is the gate the lock manager exposes to the mutation path.
type LockChecker interface {
	IsLocked(ctx context.Context, tenantID, scopeKey string) (bool, error)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p principal.Principal, req CreateAttendanceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, p principal.Principal, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, p principal.Principal, id string) error
	QuickMark(ctx context.Context, p principal.Principal, req QuickMarkRequest) (QuickMarkResult, error)
	BulkMark(ctx context.Context, p principal.Principal, req BulkMarkRequest) (BulkMarkResult, error)
	GetAll(ctx context.Context, p principal.Principal, f PeriodFilter) ([]AttendanceResponse, error)
	Stats(ctx context.Context, p principal.Principal, f PeriodFilter) (StatsResponse, error)
	MemberSummary(ctx context.Context, p principal.Principal, f PeriodFilter) ([]MemberSummary, error)
}

type service struct {
	db      *gorm.DB
	repo    Repository
	members member.Repository
	locks   LockChecker
	clk     clock.Clock
	logger  *zap.Logger

	statsGroup singleflight.Group
}

func NewService(
	db *gorm.DB,
	repo Repository,
	members member.Repository,
	locks LockChecker,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		members: members,
		locks:   locks,
		clk:     clk,
		logger:  l,
	}
}

// scopeKey is the lock unit for a date under the sector's granularity.
func scopeKey(prof sector.Profile, date time.Time) string {
	if prof.LockGranularity == sector.LockByMonth {
		return date.Format("2006-01")
	}
	return date.Format(dateLayout)
}

// guardMutation runs the temporal policy and the lock gate, in that order.
// Both run before any write for the request.
func (s *service) guardMutation(ctx context.Context, p principal.Principal, prof sector.Profile, date time.Time) error {
	if !p.Privileged {
		today := s.clk.Now().Truncate(24 * time.Hour)
		if date.Before(today) {
			return attendanceerrors.ErrPastDateForbidden
		}
	}

	locked, err := s.locks.IsLocked(ctx, p.TenantID, scopeKey(prof, date))
	if err != nil {
		return err
	}
	if locked && !p.Privileged {
		return attendanceerrors.ErrScopeLocked
	}
	return nil
}

func (s *service) Create(ctx context.Context, p principal.Principal, req CreateAttendanceRequest) (AttendanceResponse, error) {
	memberUUID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidMemberID
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDateFormat
	}
	status := req.Status
	if status == "" {
		status = StatusPresent
	}
	if !IsKnownStatus(status) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}
	if req.TotalHours != nil && *req.TotalHours < 0 {
		return AttendanceResponse{}, attendanceerrors.ErrNegativeHours
	}

	prof := sector.ByCode(p.Sector)

	var saved *Attendance
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		mtx := s.members.WithTx(tx)

		if err := s.guardMutation(ctx, p, prof, date); err != nil {
			return err
		}
		if _, err := mtx.FindByIDAndTenant(ctx, p.TenantID, req.MemberID); err != nil {
			return err
		}
		if IsLeaveStatus(status) {
			if err := mtx.ChargeLeave(ctx, p.TenantID, req.MemberID, status); err != nil {
				return err
			}
		}

		existing, err := qtx.FindAllByMemberAndDate(ctx, p.TenantID, req.MemberID, date)
		if err != nil {
			return err
		}
		if prof.MultiShift {
			if err := checkShiftOverlap(existing, req.CheckIn, req.CheckOut); err != nil {
				return err
			}
		} else if len(existing) > 0 {
			return attendanceerrors.ErrDuplicateDay
		}

		rec, err := s.buildRecord(p, prof, memberUUID, date, status, recordFields{
			ContextID:        req.ContextID,
			Label:            req.Label,
			CheckIn:          req.CheckIn,
			CheckOut:         req.CheckOut,
			TotalHours:       req.TotalHours,
			WorkMode:         req.WorkMode,
			Note:             req.Note,
			PermissionStart:  req.PermissionStart,
			PermissionEnd:    req.PermissionEnd,
			PermissionReason: req.PermissionReason,
			OvertimeHours:    req.OvertimeHours,
			OvertimeReason:   req.OvertimeReason,
		}, false)
		if err != nil {
			return err
		}

		if err := qtx.Create(ctx, rec); err != nil {
			return mapWriteError(err, prof)
		}
		saved = rec
		return nil
	})
	log := contextutil.GetLogger(ctx, s.logger)
	if err != nil {
		log.Warn("create attendance rejected",
			zap.String("tenant_id", p.TenantID),
			zap.String("member_id", req.MemberID),
			zap.String("date", req.Date),
			zap.Error(err),
		)
		return AttendanceResponse{}, err
	}

	log.Info("attendance created",
		zap.String("attendance_id", saved.ID.String()),
		zap.String("tenant_id", p.TenantID),
		zap.String("status", saved.Status),
	)
	return mapToResponse(*saved), nil
}

func (s *service) QuickMark(ctx context.Context, p principal.Principal, req QuickMarkRequest) (QuickMarkResult, error) {
	memberUUID, err := uuid.Parse(req.MemberID)
	if err != nil {
		return QuickMarkResult{}, attendanceerrors.ErrInvalidMemberID
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return QuickMarkResult{}, attendanceerrors.ErrInvalidDateFormat
	}
	status := req.Status
	if status != "" && !IsKnownStatus(status) {
		return QuickMarkResult{}, attendanceerrors.ErrInvalidStatus
	}
	if req.TotalHours != nil && *req.TotalHours < 0 {
		return QuickMarkResult{}, attendanceerrors.ErrNegativeHours
	}

	prof := sector.ByCode(p.Sector)
	contextID := req.ContextID
	if !prof.MultiShift {
		contextID = nil
	}

	var result QuickMarkResult
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		mtx := s.members.WithTx(tx)

		if err := s.guardMutation(ctx, p, prof, date); err != nil {
			return err
		}

		existing, err := qtx.FindByKey(ctx, p.TenantID, req.MemberID, date, contextID)
		if err != nil {
			return err
		}

		if existing == nil {
			if status == "" {
				status = StatusPresent
			}
			if _, err := mtx.FindByIDAndTenant(ctx, p.TenantID, req.MemberID); err != nil {
				return err
			}
			if IsLeaveStatus(status) {
				if err := mtx.ChargeLeave(ctx, p.TenantID, req.MemberID, status); err != nil {
					return err
				}
			}

			rec, err := s.buildRecord(p, prof, memberUUID, date, status, recordFields{
				ContextID:        contextID,
				Label:            req.Label,
				CheckIn:          req.CheckIn,
				CheckOut:         req.CheckOut,
				TotalHours:       req.TotalHours,
				WorkMode:         req.WorkMode,
				Note:             req.Note,
				PermissionStart:  req.PermissionStart,
				PermissionEnd:    req.PermissionEnd,
				PermissionReason: req.PermissionReason,
				OvertimeHours:    req.OvertimeHours,
				OvertimeReason:   req.OvertimeReason,
			}, true)
			if err != nil {
				return err
			}

			if err := qtx.Create(ctx, rec); err != nil {
				return mapWriteError(err, prof)
			}
			result = QuickMarkResult{Created: true, Record: mapToResponse(*rec)}
			return nil
		}

		// Merge branch. An omitted status keeps the day's existing status.
		// The balance is charged only when this call newly assigns a leave
		// status; later edits away from it never re-credit.
		if status == "" {
			status = existing.Status
		}
		if IsLeaveStatus(status) && existing.Status != status {
			if err := mtx.ChargeLeave(ctx, p.TenantID, req.MemberID, status); err != nil {
				return err
			}
		}

		if err := mergeQuickMark(existing, req, status); err != nil {
			return err
		}
		existing.UpdatedBy = uuid.MustParse(p.MemberID)

		if err := qtx.Update(ctx, existing); err != nil {
			return err
		}
		result = QuickMarkResult{Updated: true, Record: mapToResponse(*existing)}
		return nil
	})
	if err != nil {
		return QuickMarkResult{}, err
	}

	contextutil.GetLogger(ctx, s.logger).Info("quick mark applied",
		zap.String("tenant_id", p.TenantID),
		zap.String("member_id", req.MemberID),
		zap.String("date", req.Date),
		zap.String("status", status),
		zap.Bool("created", result.Created),
	)
	return result, nil
}

func (s *service) BulkMark(ctx context.Context, p principal.Principal, req BulkMarkRequest) (BulkMarkResult, error) {
	out := BulkMarkResult{}
	for _, memberID := range req.MemberIDs {
		res, err := s.QuickMark(ctx, p, QuickMarkRequest{
			MemberID: memberID,
			Date:     req.Date,
			Status:   req.Status,
			Note:     req.Note,
		})
		if err != nil {
			if out.Failed == nil {
				out.Failed = make(map[string]string)
			}
			out.Failed[memberID] = err.Error()
			continue
		}
		if res.Created {
			out.Created++
		} else {
			out.Updated++
		}
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, p principal.Principal, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	prof := sector.ByCode(p.Sector)

	var saved *Attendance
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		mtx := s.members.WithTx(tx)

		rec, err := qtx.FindByIDAndTenant(ctx, p.TenantID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrAttendanceNotFound
			}
			return err
		}

		// Both the record's current date and any new date must pass the
		// temporal policy and the lock gate.
		if err := s.guardMutation(ctx, p, prof, rec.WorkDate); err != nil {
			return err
		}
		newDate := rec.WorkDate
		if req.Date != nil {
			newDate, err = time.Parse(dateLayout, *req.Date)
			if err != nil {
				return attendanceerrors.ErrInvalidDateFormat
			}
			if !newDate.Equal(rec.WorkDate) {
				if err := s.guardMutation(ctx, p, prof, newDate); err != nil {
					return err
				}
			}
		}

		if req.Status != nil {
			if !IsKnownStatus(*req.Status) {
				return attendanceerrors.ErrInvalidStatus
			}
			if IsLeaveStatus(*req.Status) && rec.Status != *req.Status {
				if err := mtx.ChargeLeave(ctx, p.TenantID, rec.MemberID.String(), *req.Status); err != nil {
					return err
				}
			}
			rec.Status = *req.Status
		}

		dateChanged := !newDate.Equal(rec.WorkDate)
		rec.WorkDate = newDate
		timesChanged := applyUpdate(rec, req)
		if req.TotalHours != nil {
			if *req.TotalHours < 0 {
				return attendanceerrors.ErrNegativeHours
			}
			rec.TotalHours = *req.TotalHours
		} else if timesChanged && rec.CheckIn != nil && rec.CheckOut != nil {
			hours, err := durationHours(*rec.CheckIn, *rec.CheckOut)
			if err != nil {
				return attendanceerrors.ErrInvalidTimeOfDay
			}
			rec.TotalHours = hours
		}

		if dateChanged || timesChanged {
			siblings, err := qtx.FindAllByMemberAndDate(ctx, p.TenantID, rec.MemberID.String(), rec.WorkDate)
			if err != nil {
				return err
			}
			others := siblings[:0:0]
			for _, sib := range siblings {
				if sib.ID != rec.ID {
					others = append(others, sib)
				}
			}
			if prof.MultiShift {
				if err := checkShiftOverlap(others, rec.CheckIn, rec.CheckOut); err != nil {
					return err
				}
			} else if dateChanged && len(others) > 0 {
				return attendanceerrors.ErrDuplicateDay
			}
		}

		rec.UpdatedBy = uuid.MustParse(p.MemberID)
		if err := qtx.Update(ctx, rec); err != nil {
			return mapWriteError(err, prof)
		}
		saved = rec
		return nil
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	s.logger.Info("attendance updated",
		zap.String("attendance_id", id),
		zap.String("tenant_id", p.TenantID),
	)
	return mapToResponse(*saved), nil
}

func (s *service) Delete(ctx context.Context, p principal.Principal, id string) error {
	prof := sector.ByCode(p.Sector)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		rec, err := qtx.FindByIDAndTenant(ctx, p.TenantID, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrAttendanceNotFound
			}
			return err
		}
		if err := s.guardMutation(ctx, p, prof, rec.WorkDate); err != nil {
			return err
		}

		if err := qtx.Delete(ctx, p.TenantID, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return attendanceerrors.ErrAttendanceNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("attendance deleted",
		zap.String("attendance_id", id),
		zap.String("tenant_id", p.TenantID),
	)
	return nil
}

func (s *service) GetAll(ctx context.Context, p principal.Principal, f PeriodFilter) ([]AttendanceResponse, error) {
	filter, err := resolvePeriod(f)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, p.TenantID, filter)
	if err != nil {
		return nil, err
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

func (s *service) Stats(ctx context.Context, p principal.Principal, f PeriodFilter) (StatsResponse, error) {
	filter, err := resolvePeriod(f)
	if err != nil {
		return StatsResponse{}, err
	}

	// Dashboards fire identical stats queries in bursts; collapse them.
	key := fmt.Sprintf("%s|%s|%s|%s|%s|%s",
		p.TenantID,
		filter.From.Format(dateLayout), filter.To.Format(dateLayout),
		filter.MemberID, filter.Role, filter.Department,
	)
	v, err, _ := s.statsGroup.Do(key, func() (interface{}, error) {
		counts, err := s.repo.CountByStatus(ctx, p.TenantID, filter)
		if err != nil {
			return nil, err
		}
		resp := StatsResponse{ByStatus: make(map[string]int64, len(counts))}
		for _, c := range counts {
			resp.ByStatus[c.Status] = c.Count
			resp.Total += c.Count
		}
		return resp, nil
	})
	if err != nil {
		return StatsResponse{}, err
	}
	return v.(StatsResponse), nil
}

func (s *service) MemberSummary(ctx context.Context, p principal.Principal, f PeriodFilter) ([]MemberSummary, error) {
	filter, err := resolvePeriod(f)
	if err != nil {
		return nil, err
	}
	prof := sector.ByCode(p.Sector)

	members, err := s.members.FindActiveByTenant(ctx, p.TenantID, strPtr(filter.Role), strPtr(filter.Department))
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.List(ctx, p.TenantID, filter)
	if err != nil {
		return nil, err
	}

	byMember := make(map[string]*MemberSummary, len(members))
	order := make([]string, 0, len(members))
	for _, m := range members {
		if filter.MemberID != "" && m.ID.String() != filter.MemberID {
			continue
		}
		byMember[m.ID.String()] = &MemberSummary{
			MemberID:     m.ID.String(),
			MemberName:   m.FullName,
			WageType:     m.WageType,
			WageRate:     m.WageRate,
			OvertimeRate: m.OvertimeRate,
		}
		order = append(order, m.ID.String())
	}

	touched := make(map[string]bool)
	for _, r := range rows {
		sum, ok := byMember[r.MemberID.String()]
		if !ok {
			continue
		}
		touched[r.MemberID.String()] = true
		bumpStatus(sum, r.Status)
		if r.Status != StatusWeekOff && r.Status != StatusHoliday {
			sum.WorkingDays++
		}
		sum.HoursWorked += r.TotalHours
		sum.OvertimeHours += r.OvertimeHours
	}

	out := make([]MemberSummary, 0, len(touched))
	for _, id := range order {
		if !touched[id] {
			continue
		}
		sum := byMember[id]
		if prof.WageAware {
			estimateWage(sum)
		} else {
			sum.WageType, sum.WageRate, sum.OvertimeRate = "", 0, 0
		}
		out = append(out, *sum)
	}
	return out, nil
}

func bumpStatus(sum *MemberSummary, status string) {
	switch status {
	case StatusPresent:
		sum.Present++
	case StatusAbsent:
		sum.Absent++
	case StatusLate:
		sum.Late++
	case StatusHalfDay:
		sum.HalfDay++
	case StatusPermission:
		sum.Permission++
	case StatusWeekOff:
		sum.WeekOff++
	case StatusHoliday:
		sum.Holiday++
	case StatusCL:
		sum.CL++
	case StatusSL:
		sum.SL++
	case StatusEL:
		sum.EL++
	case StatusCO:
		sum.CO++
	case StatusOD:
		sum.OD++
	}
}

// estimateWage fills the wage projection: half days weigh 0.5, overtime is
// paid at the member's overtime rate.
func estimateWage(sum *MemberSummary) {
	presentEquivalent := float64(sum.Present) + 0.5*float64(sum.HalfDay)

	var base float64
	switch sum.WageType {
	case member.WageTypeMonthly:
		base = float64(sum.WageRate) / 30 * presentEquivalent
	case member.WageTypeDaily:
		base = float64(sum.WageRate) * presentEquivalent
	case member.WageTypeHourly:
		base = float64(sum.WageRate) * sum.HoursWorked
	}
	ot := float64(sum.OvertimeRate) * sum.OvertimeHours

	sum.EstimatedBase = int64(math.Round(base))
	sum.EstimatedOvertime = int64(math.Round(ot))
	sum.EstimatedTotal = sum.EstimatedBase + sum.EstimatedOvertime
}

type recordFields struct {
	ContextID        *string
	Label            *string
	CheckIn          *string
	CheckOut         *string
	TotalHours       *float64
	WorkMode         *string
	Note             *string
	PermissionStart  *string
	PermissionEnd    *string
	PermissionReason *string
	OvertimeHours    *float64
	OvertimeReason   *string
}

func (s *service) buildRecord(
	p principal.Principal,
	prof sector.Profile,
	memberUUID uuid.UUID,
	date time.Time,
	status string,
	f recordFields,
	applyShiftDefaults bool,
) (*Attendance, error) {
	rec := &Attendance{
		ID:               uuid.New(),
		TenantID:         uuid.MustParse(p.TenantID),
		Sector:           prof.Code,
		MemberID:         memberUUID,
		WorkDate:         date,
		Status:           status,
		Label:            prof.DefaultLabel,
		CheckIn:          f.CheckIn,
		CheckOut:         f.CheckOut,
		WorkMode:         f.WorkMode,
		Note:             f.Note,
		PermissionStart:  f.PermissionStart,
		PermissionEnd:    f.PermissionEnd,
		PermissionReason: f.PermissionReason,
		OvertimeReason:   f.OvertimeReason,
		CreatedBy:        uuid.MustParse(p.MemberID),
		UpdatedBy:        uuid.MustParse(p.MemberID),
	}
	if f.Label != nil && *f.Label != "" {
		rec.Label = *f.Label
	}
	if f.ContextID != nil && *f.ContextID != "" {
		ctxUUID, err := uuid.Parse(*f.ContextID)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidMemberID
		}
		rec.ContextID = &ctxUUID
	}

	switch {
	case f.TotalHours != nil:
		// An explicit total wins over the derived duration.
		rec.TotalHours = *f.TotalHours
	case rec.CheckIn != nil && rec.CheckOut != nil:
		hours, err := durationHours(*rec.CheckIn, *rec.CheckOut)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidTimeOfDay
		}
		rec.TotalHours = hours
	case applyShiftDefaults && prof.TracksTime && status == StatusPresent && prof.DefaultShiftStart != "":
		start, end := prof.DefaultShiftStart, prof.DefaultShiftEnd
		hours, err := durationHours(start, end)
		if err != nil {
			return nil, attendanceerrors.ErrInvalidTimeOfDay
		}
		rec.CheckIn = &start
		rec.CheckOut = &end
		rec.TotalHours = hours
	}

	if f.OvertimeHours != nil {
		rec.OvertimeHours = *f.OvertimeHours
	} else if applyShiftDefaults && prof.TracksTime && status == StatusPresent {
		rec.OvertimeHours = math.Max(0, rec.TotalHours-standardShiftHours)
	}

	return rec, nil
}

// mergeQuickMark overlays supplied fields, keeping existing values when the
// new value is absent.
func mergeQuickMark(rec *Attendance, req QuickMarkRequest, status string) error {
	rec.Status = status
	if req.Label != nil && *req.Label != "" {
		rec.Label = *req.Label
	}
	timesChanged := false
	if req.CheckIn != nil {
		rec.CheckIn = req.CheckIn
		timesChanged = true
	}
	if req.CheckOut != nil {
		rec.CheckOut = req.CheckOut
		timesChanged = true
	}
	if req.WorkMode != nil {
		rec.WorkMode = req.WorkMode
	}
	if req.Note != nil {
		rec.Note = req.Note
	}
	if req.PermissionStart != nil {
		rec.PermissionStart = req.PermissionStart
	}
	if req.PermissionEnd != nil {
		rec.PermissionEnd = req.PermissionEnd
	}
	if req.PermissionReason != nil {
		rec.PermissionReason = req.PermissionReason
	}
	if req.OvertimeHours != nil {
		rec.OvertimeHours = *req.OvertimeHours
	}
	if req.OvertimeReason != nil {
		rec.OvertimeReason = req.OvertimeReason
	}

	if req.TotalHours != nil {
		rec.TotalHours = *req.TotalHours
	} else if timesChanged && rec.CheckIn != nil && rec.CheckOut != nil {
		hours, err := durationHours(*rec.CheckIn, *rec.CheckOut)
		if err != nil {
			return attendanceerrors.ErrInvalidTimeOfDay
		}
		rec.TotalHours = hours
	}
	return nil
}

// applyUpdate overlays the partial update and reports whether either time
// endpoint changed.
func applyUpdate(rec *Attendance, req UpdateAttendanceRequest) bool {
	timesChanged := false
	if req.Label != nil {
		rec.Label = *req.Label
	}
	if req.CheckIn != nil {
		rec.CheckIn = req.CheckIn
		timesChanged = true
	}
	if req.CheckOut != nil {
		rec.CheckOut = req.CheckOut
		timesChanged = true
	}
	if req.WorkMode != nil {
		rec.WorkMode = req.WorkMode
	}
	if req.Note != nil {
		rec.Note = req.Note
	}
	if req.PermissionStart != nil {
		rec.PermissionStart = req.PermissionStart
	}
	if req.PermissionEnd != nil {
		rec.PermissionEnd = req.PermissionEnd
	}
	if req.PermissionReason != nil {
		rec.PermissionReason = req.PermissionReason
	}
	if req.OvertimeHours != nil {
		rec.OvertimeHours = *req.OvertimeHours
	}
	if req.OvertimeReason != nil {
		rec.OvertimeReason = req.OvertimeReason
	}
	return timesChanged
}

// checkShiftOverlap rejects a candidate window that overlaps any existing
// record for the same member/date. Records without both endpoints count as
// full-day and conflict with everything.
func checkShiftOverlap(existing []Attendance, checkIn, checkOut *string) error {
	cand, err := newInterval(checkIn, checkOut)
	if err != nil {
		return attendanceerrors.ErrInvalidTimeOfDay
	}
	for _, e := range existing {
		ival, err := newInterval(e.CheckIn, e.CheckOut)
		if err != nil {
			return attendanceerrors.ErrInvalidTimeOfDay
		}
		if cand.overlaps(ival) {
			return attendanceerrors.ErrShiftConflict
		}
	}
	return nil
}

// mapWriteError translates a unique-constraint race into the same conflict
// error the pre-write check raises.
func mapWriteError(err error, prof sector.Profile) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if prof.MultiShift {
			return attendanceerrors.ErrShiftConflict
		}
		return attendanceerrors.ErrDuplicateDay
	}
	return err
}

func strPtr(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:               a.ID.String(),
		MemberID:         a.MemberID.String(),
		Date:             a.WorkDate.Format(dateLayout),
		Status:           a.Status,
		Label:            a.Label,
		CheckIn:          a.CheckIn,
		CheckOut:         a.CheckOut,
		TotalHours:       a.TotalHours,
		WorkMode:         a.WorkMode,
		Note:             a.Note,
		PermissionStart:  a.PermissionStart,
		PermissionEnd:    a.PermissionEnd,
		PermissionReason: a.PermissionReason,
		OvertimeHours:    a.OvertimeHours,
		OvertimeReason:   a.OvertimeReason,
	}
	if a.ContextID != nil {
		v := a.ContextID.String()
		resp.ContextID = &v
	}
	if a.Member != nil {
		resp.MemberName = a.Member.FullName
	}
	return resp
}
