package attendance

import (
	"context"
	"errors"
	"time"

	"organizerpro/internal/tenant"

	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// ListFilter is the resolved repository-level filter: an inclusive date
// range plus optional member/role/department narrowing.
type ListFilter struct {
	From       time.Time
	To         time.Time
	MemberID   string
	Role       string
	Department string
}

type StatusCount struct {
	Status string
	Count  int64
}

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, a *Attendance) error
	FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Attendance, error)
	FindByKey(ctx context.Context, tenantID, memberID string, date time.Time, contextID *string) (*Attendance, error)
	FindAllByMemberAndDate(ctx context.Context, tenantID, memberID string, date time.Time) ([]Attendance, error)
	Update(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, tenantID, id string) error
	List(ctx context.Context, tenantID string, f ListFilter) ([]Attendance, error)
	CountByStatus(ctx context.Context, tenantID string, f ListFilter) ([]StatusCount, error)
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

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *repository) FindByIDAndTenant(ctx context.Context, tenantID, id string) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		First(&a, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByKey(ctx context.Context, tenantID, memberID string, date time.Time, contextID *string) (*Attendance, error) {
	db := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("member_id = ?", memberID).
		Where("work_date = ?", date.Format(dateLayout))
	if contextID != nil && *contextID != "" {
		db = db.Where("context_id = ?", *contextID)
	} else {
		db = db.Where("context_id IS NULL")
	}

	var a Attendance
	err := db.First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindAllByMemberAndDate(ctx context.Context, tenantID, memberID string, date time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Where("member_id = ?", memberID).
		Where("work_date = ?", date.Format(dateLayout)).
		Find(&rows).Error
	return rows, err
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, tenantID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(tenantID)).
		Delete(&Attendance{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) filtered(ctx context.Context, tenantID string, f ListFilter) *gorm.DB {
	db := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(tenant.Scope(tenantID)).
		Where("work_date BETWEEN ? AND ?", f.From.Format(dateLayout), f.To.Format(dateLayout))

	if f.MemberID != "" {
		db = db.Where("member_id = ?", f.MemberID)
	}
	if f.Role != "" || f.Department != "" {
		db = db.Joins("JOIN members ON members.id = attendances.member_id")
		if f.Role != "" {
			db = db.Where("members.role = ?", f.Role)
		}
		if f.Department != "" {
			db = db.Where("members.department = ?", f.Department)
		}
	}
	return db
}

func (r *repository) List(ctx context.Context, tenantID string, f ListFilter) ([]Attendance, error) {
	var rows []Attendance
	err := r.filtered(ctx, tenantID, f).
		Preload("Member").
		Order("work_date DESC, created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) CountByStatus(ctx context.Context, tenantID string, f ListFilter) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.filtered(ctx, tenantID, f).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&counts).Error
	return counts, err
}
