package migrations

import (
	"gorm.io/gorm"
)

// Migration003AddOpenVisitGuard enforces at most one open care visit
// per carer with a partial unique index, so racing clock-ins are
// settled by the store rather than the handler's pre-check.
func Migration003AddOpenVisitGuard() Migration {
	return Migration{
		ID:   "003_add_open_visit_guard",
		Name: "Add partial unique index for one open care visit per carer",
		Up: func(db *gorm.DB) error {
			return db.Exec(`
				CREATE UNIQUE INDEX IF NOT EXISTS idx_open_visit
				ON care_visits (carer_id)
				WHERE clock_out_at IS NULL
			`).Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec(`DROP INDEX IF EXISTS idx_open_visit`).Error
		},
	}
}
