package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EventKind string

const (
	EventMessageCreated      EventKind = "MESSAGE_CREATED"
	EventMessageCreateFailed EventKind = "MESSAGE_CREATE_FAILED"
	EventMessageAcknowledged EventKind = "MESSAGE_ACKNOWLEDGED"
	EventLoginSucceeded      EventKind = "LOGIN_SUCCEEDED"
	EventLoginFailed         EventKind = "LOGIN_FAILED"
	EventVisitClockIn        EventKind = "VISIT_CLOCK_IN"
	EventVisitClockOut       EventKind = "VISIT_CLOCK_OUT"
)

// AuditEvent is the fire-and-forget event log. Writes to it never block
// or reverse the operation that emitted them.
type AuditEvent struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	ActorID   string    `gorm:"index;type:text;not null" json:"actorId"`
	Kind      EventKind `gorm:"index;type:text;not null" json:"kind"`
	TargetID  string    `gorm:"type:text" json:"targetId"`
	Detail    string    `gorm:"type:text" json:"detail"`
	CreatedAt time.Time `json:"createdAt"`
}

func (e *AuditEvent) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return
}
