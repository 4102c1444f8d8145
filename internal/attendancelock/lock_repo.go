package attendancelock

import (
	"context"
	"errors"

	"organizerpro/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=lock_repo.go -destination=mock/lock_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByScope(ctx context.Context, tenantID, scopeKey string) (*Lock, error)
	Create(ctx context.Context, l *Lock) error
	Update(ctx context.Context, l *Lock) error
	ListLocked(ctx context.Context, tenantID string) ([]Lock, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) FindByScope(ctx context.Context, tenantID, scopeKey string) (*Lock, error) {
	var l Lock
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&l, "scope_key = ?", scopeKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *repository) Create(ctx context.Context, l *Lock) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) Update(ctx context.Context, l *Lock) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *repository) ListLocked(ctx context.Context, tenantID string) ([]Lock, error) {
	var locks []Lock
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("locked = ?", true).
		Order("scope_key DESC").
		Find(&locks).Error
	return locks, err
}
