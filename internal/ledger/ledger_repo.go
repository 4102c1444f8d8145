package ledger

import (
	"context"

	"organizerpro/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=ledger_repo.go -destination=mock/ledger_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, e *Entry) error
	ListByMember(ctx context.Context, tenantID, memberID string) ([]Entry, error)
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

func (r *repository) Create(ctx context.Context, e *Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) ListByMember(ctx context.Context, tenantID, memberID string) ([]Entry, error) {
	var entries []Entry
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("member_id = ?", memberID).
		Order("entry_date DESC").
		Find(&entries).Error
	return entries, err
}
