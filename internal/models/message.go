package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageStatus is derived, never stored: a (message, carer) pair is
// acknowledged iff a MessageAcknowledgment row exists for it.
type MessageStatus string

const (
	StatusUnread       MessageStatus = "unread"
	StatusAcknowledged MessageStatus = "acknowledged"
)

// Message is a coordinator-authored broadcast or private message.
// Immutable after creation.
type Message struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	SenderID    string    `gorm:"index;type:text;not null" json:"senderId"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	IsBroadcast bool      `gorm:"not null" json:"isBroadcast"`
	CreatedAt   time.Time `json:"createdAt"`

	Sender User `gorm:"foreignKey:SenderID" json:"-"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	return
}

// MessageRecipient is one fan-out row per addressed carer, written
// together with the message and never added to or removed afterwards.
// Broadcast fan-out snapshots the sender's carer set at creation time.
type MessageRecipient struct {
	ID        string    `gorm:"primaryKey;type:text" json:"id"`
	MessageID string    `gorm:"uniqueIndex:idx_recipient_pair;type:text;not null" json:"messageId"`
	CarerID   string    `gorm:"uniqueIndex:idx_recipient_pair;index;type:text;not null" json:"carerId"`
	CreatedAt time.Time `json:"createdAt"`

	Message Message `gorm:"foreignKey:MessageID" json:"-"`
	Carer   User    `gorm:"foreignKey:CarerID" json:"-"`
}

func (r *MessageRecipient) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// MessageAcknowledgment is the terminal read receipt for one
// (message, carer) pair. The composite unique index is the arbiter for
// concurrent acknowledge calls: exactly one insert wins.
type MessageAcknowledgment struct {
	ID             string    `gorm:"primaryKey;type:text" json:"id"`
	MessageID      string    `gorm:"uniqueIndex:idx_ack_pair;type:text;not null" json:"messageId"`
	CarerID        string    `gorm:"uniqueIndex:idx_ack_pair;index;type:text;not null" json:"carerId"`
	AcknowledgedAt time.Time `gorm:"not null" json:"acknowledgedAt"`

	Message Message `gorm:"foreignKey:MessageID" json:"-"`
	Carer   User    `gorm:"foreignKey:CarerID" json:"-"`
}

func (a *MessageAcknowledgment) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// MessageView is a carer-facing row: one per message addressed to the
// carer, with its derived status.
type MessageView struct {
	ID          string        `json:"id"`
	SenderID    string        `json:"senderId"`
	SenderName  string        `json:"senderName"`
	Title       string        `json:"title"`
	Body        string        `json:"body"`
	IsBroadcast bool          `json:"isBroadcast"`
	CreatedAt   time.Time     `json:"createdAt"`
	Status      MessageStatus `json:"status"`
}

// MessageRecipientView is a coordinator-facing row: one per
// (message, carer) pair, since acknowledgment status is per recipient.
type MessageRecipientView struct {
	MessageID      string        `json:"messageId"`
	Title          string        `json:"title"`
	Body           string        `json:"body"`
	IsBroadcast    bool          `json:"isBroadcast"`
	CreatedAt      time.Time     `json:"createdAt"`
	CarerID        string        `json:"carerId"`
	CarerName      string        `json:"carerName"`
	Status         MessageStatus `json:"status"`
	AcknowledgedAt *time.Time    `json:"acknowledgedAt,omitempty"`
}
