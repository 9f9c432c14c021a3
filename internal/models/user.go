package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleCoordinator Role = "COORDINATOR"
	RoleCarer       Role = "CARER"
	RoleSystem      Role = "SYSTEM"
)

// Valid reports whether r is one of the known roles. Access checks
// switch exhaustively over Role; an unknown value never passes.
func (r Role) Valid() bool {
	switch r {
	case RoleCoordinator, RoleCarer, RoleSystem:
		return true
	}
	return false
}

// SystemActorID is the explicit actor recorded on audit events that have
// no authenticated viewer (startup tasks, failed logins). It is always
// passed as a parameter, never assumed as a default.
const SystemActorID = "system"

type User struct {
	ID        string         `gorm:"primaryKey;type:text" json:"id"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName string `gorm:"type:text;not null" json:"fullName"`
	Username string `gorm:"uniqueIndex;type:text;not null" json:"username"`
	Role     Role   `gorm:"type:text;not null" json:"role"`

	// Carers are assigned to exactly one coordinator; nil for other roles.
	CoordinatorID *string `gorm:"index;type:text" json:"coordinatorId,omitempty"`
	Coordinator   *User   `gorm:"foreignKey:CoordinatorID" json:"-"`

	Password string `gorm:"type:text" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}
