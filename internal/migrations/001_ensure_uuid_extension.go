package migrations

import (
	"gorm.io/gorm"
)

// Migration001EnsureUUIDExtension ensures the uuid-ossp extension is available
func Migration001EnsureUUIDExtension() Migration {
	return Migration{
		ID:   "001_ensure_uuid_extension",
		Name: "Ensure uuid-ossp extension is available",
		Up: func(db *gorm.DB) error {
			return db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error
		},
		Down: func(db *gorm.DB) error {
			// Don't drop the extension, other schemas may depend on it.
			return nil
		},
	}
}
