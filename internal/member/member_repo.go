package member

import (
	"context"
	"errors"

	membererrors "organizerpro/internal/member/errors"
	"organizerpro/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=member_repo.go -destination=mock/member_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Member, error)
	FindActiveByTenant(ctx context.Context, tenantID string, role, department *string) ([]Member, error)
	ChargeLeave(ctx context.Context, tenantID, memberID, leaveType string) error
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

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Member, error) {
	var m Member
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, membererrors.ErrMemberNotFound
	}
	return &m, err
}

func (r *repository) FindActiveByTenant(ctx context.Context, tenantID string, role, department *string) ([]Member, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("active = ?", true)
	if role != nil && *role != "" {
		db = db.Where("role = ?", *role)
	}
	if department != nil && *department != "" {
		db = db.Where("department = ?", *department)
	}

	var members []Member
	err := db.Order("full_name ASC").Find(&members).Error
	return members, err
}

var balanceColumns = map[string]string{
	LeaveCL: "cl_balance",
	LeaveSL: "sl_balance",
	LeaveEL: "el_balance",
}

// ChargeLeave decrements one unit of the member's balance for leaveType. The
// decrement is a single conditional UPDATE so concurrent charges cannot drive
// the balance below zero.
func (r *repository) ChargeLeave(ctx context.Context, tenantID, memberID, leaveType string) error {
	column, ok := balanceColumns[leaveType]
	if !ok {
		return membererrors.ErrUnknownLeaveType
	}

	res := r.db.WithContext(ctx).
		Model(&Member{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", memberID).
		Where(column+" > 0").
		UpdateColumn(column, gorm.Expr(column+" - 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Zero rows: either the member is unknown or the balance is exhausted.
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&Member{}).
		Scopes(tenant.Scope(tenantID)).
		Where("id = ?", memberID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return membererrors.ErrMemberNotFound
	}
	return membererrors.InsufficientBalance(leaveType)
}
