package attendancelock

import (
	"context"
	"time"

	lockerrors "organizerpro/internal/attendancelock/errors"
	"organizerpro/internal/events"
	"organizerpro/internal/messaging/kafka"
	"organizerpro/internal/principal"
	"organizerpro/internal/sector"
	"organizerpro/internal/shared/clock"
	"organizerpro/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=lock_service.go -destination=mock/lock_service_mock.go -package=mock
type Service interface {
	Lock(ctx context.Context, p principal.Principal, req LockRequest) (LockResponse, error)
	Unlock(ctx context.Context, p principal.Principal, req UnlockRequest) (LockResponse, error)
	ListLocked(ctx context.Context, p principal.Principal) ([]LockResponse, error)

	// IsLocked is the read gate the attendance mutation path consults.
	IsLocked(ctx context.Context, tenantID, scopeKey string) (bool, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	clk    clock.Clock
	logger *zap.Logger
}

func NewService(
	db *gorm.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	clk clock.Clock,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("attendancelock.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendancelock.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, clk: clk, logger: l}
}

// scopeKeyLayout is the key shape the attendance gate consults for a sector:
// month-granularity sectors lock "YYYY-MM", the rest lock single dates.
func scopeKeyLayout(prof sector.Profile) string {
	if prof.LockGranularity == sector.LockByMonth {
		return "2006-01"
	}
	return "2006-01-02"
}

func validScopeKey(prof sector.Profile, v string) bool {
	_, err := time.Parse(scopeKeyLayout(prof), v)
	return err == nil
}

// Lock is idempotent: locking an already locked scope returns the current
// state without error.
func (s *service) Lock(ctx context.Context, p principal.Principal, req LockRequest) (LockResponse, error) {
	if !validScopeKey(sector.ByCode(p.Sector), req.ScopeKey) {
		return LockResponse{}, lockerrors.ErrInvalidScopeKey
	}

	var out *Lock
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		existing, err := qtx.FindByScope(ctx, p.TenantID, req.ScopeKey)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.Locked {
				out = existing
				return nil
			}
			existing.Locked = true
			existing.LockedBy = uuid.MustParse(p.MemberID)
			existing.LockedAt = s.clk.Now()
			existing.UnlockedBy = nil
			existing.UnlockedAt = nil
			existing.UnlockReason = nil
			if err := qtx.Update(ctx, existing); err != nil {
				return err
			}
			out = existing
			return nil
		}

		l := &Lock{
			ID:       uuid.New(),
			TenantID: uuid.MustParse(p.TenantID),
			ScopeKey: req.ScopeKey,
			Locked:   true,
			LockedBy: uuid.MustParse(p.MemberID),
			LockedAt: s.clk.Now(),
		}
		if err := qtx.Create(ctx, l); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		return LockResponse{}, err
	}

	s.logger.Info("scope locked",
		zap.String("tenant_id", p.TenantID),
		zap.String("scope_key", req.ScopeKey),
		zap.String("locked_by", p.MemberID),
	)
	return mapToResponse(*out), nil
}

// Unlock reopens a locked scope. The reason is mandatory and the action is
// recorded as an audit event in the same transaction.
func (s *service) Unlock(ctx context.Context, p principal.Principal, req UnlockRequest) (LockResponse, error) {
	if !validScopeKey(sector.ByCode(p.Sector), req.ScopeKey) {
		return LockResponse{}, lockerrors.ErrInvalidScopeKey
	}
	if req.Reason == "" {
		return LockResponse{}, lockerrors.ErrUnlockReasonRequired
	}

	var out *Lock
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)
		otx := s.outbox.WithTx(tx)

		existing, err := qtx.FindByScope(ctx, p.TenantID, req.ScopeKey)
		if err != nil {
			return err
		}
		if existing == nil || !existing.Locked {
			return lockerrors.ErrNotLocked
		}

		now := s.clk.Now()
		actor := uuid.MustParse(p.MemberID)
		existing.Locked = false
		existing.UnlockedBy = &actor
		existing.UnlockedAt = &now
		existing.UnlockReason = &req.Reason
		if err := qtx.Update(ctx, existing); err != nil {
			return err
		}

		event, err := kafka.NewOutboxEvent(
			contextutil.GetRequestID(ctx),
			"attendance_lock",
			existing.ID.String(),
			"attendance.unlocked",
			events.AttendanceUnlockedTopic,
			events.AttendanceUnlockedEvent{
				EventType:  "attendance.unlocked",
				TenantID:   p.TenantID,
				ScopeKey:   req.ScopeKey,
				UnlockedBy: p.MemberID,
				Reason:     req.Reason,
				OccurredAt: now,
			},
		)
		if err != nil {
			return err
		}
		if err := otx.Create(ctx, event); err != nil {
			return err
		}

		out = existing
		return nil
	})
	if err != nil {
		return LockResponse{}, err
	}

	s.logger.Info("scope unlocked",
		zap.String("tenant_id", p.TenantID),
		zap.String("scope_key", req.ScopeKey),
		zap.String("unlocked_by", p.MemberID),
		zap.String("reason", req.Reason),
	)
	return mapToResponse(*out), nil
}

func (s *service) ListLocked(ctx context.Context, p principal.Principal) ([]LockResponse, error) {
	locks, err := s.repo.ListLocked(ctx, p.TenantID)
	if err != nil {
		return nil, err
	}
	out := make([]LockResponse, len(locks))
	for i, l := range locks {
		out[i] = mapToResponse(l)
	}
	return out, nil
}

func (s *service) IsLocked(ctx context.Context, tenantID, scopeKey string) (bool, error) {
	l, err := s.repo.FindByScope(ctx, tenantID, scopeKey)
	if err != nil {
		return false, err
	}
	return l != nil && l.Locked, nil
}

func mapToResponse(l Lock) LockResponse {
	resp := LockResponse{
		ScopeKey: l.ScopeKey,
		Locked:   l.Locked,
		LockedBy: l.LockedBy.String(),
		LockedAt: l.LockedAt,
	}
	if l.UnlockedBy != nil {
		v := l.UnlockedBy.String()
		resp.UnlockedBy = &v
	}
	resp.UnlockedAt = l.UnlockedAt
	resp.UnlockReason = l.UnlockReason
	return resp
}
