package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CareVisit records a carer's clock-in/clock-out for one shift. The
// partial unique index permits at most one open visit per carer, so
// concurrent clock-ins are settled by the store like acknowledgments.
type CareVisit struct {
	ID         string     `gorm:"primaryKey;type:text" json:"id"`
	CarerID    string     `gorm:"index;uniqueIndex:idx_open_visit,where:clock_out_at IS NULL;type:text;not null" json:"carerId"`
	ClockInAt  time.Time  `gorm:"not null" json:"clockInAt"`
	ClockOutAt *time.Time `json:"clockOutAt,omitempty"`
	Note       string     `gorm:"type:text" json:"note"`

	Carer User `gorm:"foreignKey:CarerID" json:"-"`
}

func (v *CareVisit) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.ClockInAt.IsZero() {
		v.ClockInAt = time.Now()
	}
	return
}
