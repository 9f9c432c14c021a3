package migrations

import (
	"gorm.io/gorm"
)

// Migration002AddMessagingIndexes backs the messaging invariants with
// store-level constraints:
//  1. one fan-out row per (message, carer)
//  2. at most one acknowledgment per (message, carer) — this unique
//     index is the arbiter between concurrent acknowledge calls
//  3. an ordering index for the authored-status listing
//
// AutoMigrate creates these from the model tags too; the explicit
// statements keep existing deployments honest and are idempotent.
func Migration002AddMessagingIndexes() Migration {
	return Migration{
		ID:   "002_add_messaging_indexes",
		Name: "Add unique and ordering indexes for message fan-out and acknowledgments",
		Up: func(db *gorm.DB) error {
			idx1 := `
				CREATE UNIQUE INDEX IF NOT EXISTS idx_recipient_pair
				ON message_recipients (message_id, carer_id)
			`
			if err := db.Exec(idx1).Error; err != nil {
				return err
			}

			idx2 := `
				CREATE UNIQUE INDEX IF NOT EXISTS idx_ack_pair
				ON message_acknowledgments (message_id, carer_id)
			`
			if err := db.Exec(idx2).Error; err != nil {
				return err
			}

			idx3 := `
				CREATE INDEX IF NOT EXISTS idx_messages_sender_created
				ON messages (sender_id, created_at DESC, id DESC)
			`
			return db.Exec(idx3).Error
		},
		Down: func(db *gorm.DB) error {
			if err := db.Exec(`DROP INDEX IF EXISTS idx_messages_sender_created`).Error; err != nil {
				return err
			}
			if err := db.Exec(`DROP INDEX IF EXISTS idx_ack_pair`).Error; err != nil {
				return err
			}
			return db.Exec(`DROP INDEX IF EXISTS idx_recipient_pair`).Error
		},
	}
}
