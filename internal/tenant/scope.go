package tenant

import "gorm.io/gorm"

// Scope restricts a query to one tenant. Every repository query goes through
// this; cross-tenant reads are impossible by construction.
func Scope(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}
