package tenant

import "gorm.io/gorm"

// ForTenant limits a query to one app's rows. An empty app id matches nothing.
func ForTenant(appID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if appID == "" {
			return db.Where("1 = 0")
		}
		return db.Where("app_id = ?", appID)
	}
}
