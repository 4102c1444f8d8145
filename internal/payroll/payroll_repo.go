package payroll

import (
	"context"
	"errors"

	"organizerpro/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, p *Payroll) error
	Update(ctx context.Context, p *Payroll) error
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Payroll, error)
	FindByPeriod(ctx context.Context, tenantID, memberID string, month, year int) (*Payroll, error)
	List(ctx context.Context, tenantID string, f ListPayrollFilter) ([]Payroll, error)
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

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) Update(ctx context.Context, p *Payroll) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Preload("Member").
		First(&p, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByPeriod(ctx context.Context, tenantID, memberID string, month, year int) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("member_id = ?", memberID).
		Where("month = ? AND year = ?", month, year).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, tenantID string, f ListPayrollFilter) ([]Payroll, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Preload("Member")

	if f.Month != 0 {
		db = db.Where("month = ?", f.Month)
	}
	if f.Year != 0 {
		db = db.Where("year = ?", f.Year)
	}
	if f.Status != "" {
		db = db.Where("status = ?", f.Status)
	}
	if f.MemberID != "" {
		db = db.Where("member_id = ?", f.MemberID)
	}

	var payrolls []Payroll
	err := db.Order("year DESC, month DESC, created_at DESC").Find(&payrolls).Error
	return payrolls, err
}
