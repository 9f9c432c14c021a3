package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/IlluminoStudio/scribemate-sub000/internal/database"
	"github.com/IlluminoStudio/scribemate-sub000/internal/models"
	"github.com/IlluminoStudio/scribemate-sub000/pkg/apperr"
	"gorm.io/gorm"
)

// Compose-failure reason codes recorded on message_create_failed
// events, alongside the authorization reasons in authorize.go.
const (
	ReasonEmptyTitle   = "empty_title"
	ReasonEmptyBody    = "empty_body"
	ReasonNoRecipients = "no_recipients"
	ReasonStoreFailure = "store_failure"
)

// ComposeMessage validates and creates a message together with its
// recipient fan-out. Broadcast messages snapshot the sender's current
// carer set; private messages go to exactly the given carer ids, each
// of which must be associated with the sender. Message and fan-out are
// written in one transaction so a partial fan-out can never persist.
func ComposeMessage(sender *models.User, title, body string, isBroadcast bool, explicitCarerIDs []string) (*models.Message, error) {
	if err := RequireCoordinator(sender); err != nil {
		LogEvent(sender.ID, models.EventMessageCreateFailed, "", ReasonNotCoordinator)
		return nil, err
	}

	title = strings.TrimSpace(title)
	body = strings.TrimSpace(body)
	if title == "" {
		LogEvent(sender.ID, models.EventMessageCreateFailed, "", ReasonEmptyTitle)
		return nil, apperr.Validation("Title is required")
	}
	if body == "" {
		LogEvent(sender.ID, models.EventMessageCreateFailed, "", ReasonEmptyBody)
		return nil, apperr.Validation("Body is required")
	}

	var recipientIDs []string
	if isBroadcast {
		carers, err := CarersFor(sender.ID)
		if err != nil {
			LogEvent(sender.ID, models.EventMessageCreateFailed, "", ReasonStoreFailure)
			return nil, err
		}
		for _, carer := range carers {
			recipientIDs = append(recipientIDs, carer.ID)
		}
	} else {
		if len(explicitCarerIDs) == 0 {
			LogEvent(sender.ID, models.EventMessageCreateFailed, "", ReasonNoRecipients)
			return nil, apperr.Validation("At least one recipient is required for a private message")
		}
		// Validate one at a time so the first unassociated id is the
		// one reported.
		seen := make(map[string]bool, len(explicitCarerIDs))
		for _, carerID := range explicitCarerIDs {
			if seen[carerID] {
				continue
			}
			ok, err := IsAssociated(carerID, sender.ID)
			if err != nil {
				LogEvent(sender.ID, models.EventMessageCreateFailed, carerID, ReasonStoreFailure)
				return nil, err
			}
			if !ok {
				LogEvent(sender.ID, models.EventMessageCreateFailed, carerID, ReasonNotAssociated)
				return nil, apperr.Validation(fmt.Sprintf("Carer %s is not assigned to you", carerID))
			}
			seen[carerID] = true
			recipientIDs = append(recipientIDs, carerID)
		}
	}

	message := models.Message{
		SenderID:    sender.ID,
		Title:       title,
		Body:        body,
		IsBroadcast: isBroadcast,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&message).Error; err != nil {
			return err
		}
		for _, carerID := range recipientIDs {
			recipient := models.MessageRecipient{
				MessageID: message.ID,
				CarerID:   carerID,
			}
			if err := tx.Create(&recipient).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		LogEvent(sender.ID, models.EventMessageCreateFailed, "", ReasonStoreFailure)
		return nil, apperr.Persistence("Failed to create message")
	}

	LogEvent(sender.ID, models.EventMessageCreated, message.ID,
		fmt.Sprintf("recipients=%d broadcast=%t", len(recipientIDs), isBroadcast))

	for _, carerID := range recipientIDs {
		go database.CacheInvalidate(unreadCountKey(carerID))
	}

	return &message, nil
}

// AcknowledgeMessage performs the one-way unread -> acknowledged
// transition for one (message, carer) pair. The composite unique index
// on message_acknowledgments settles concurrent calls: the loser's
// insert fails with a duplicate key and surfaces as Conflict.
func AcknowledgeMessage(carerID, messageID string) (*models.MessageAcknowledgment, error) {
	var recipient models.MessageRecipient
	err := database.DB.
		Where("message_id = ? AND carer_id = ?", messageID, carerID).
		First(&recipient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Message not found or not assigned to carer")
		}
		return nil, apperr.Persistence("Failed to look up message")
	}

	var existing int64
	err = database.DB.Model(&models.MessageAcknowledgment{}).
		Where("message_id = ? AND carer_id = ?", messageID, carerID).
		Count(&existing).Error
	if err != nil {
		return nil, apperr.Persistence("Failed to check acknowledgment")
	}
	if existing > 0 {
		return nil, apperr.Conflict("Message already acknowledged")
	}

	ack := models.MessageAcknowledgment{
		MessageID:      messageID,
		CarerID:        carerID,
		AcknowledgedAt: time.Now(),
	}
	if err := database.DB.Create(&ack).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Message already acknowledged")
		}
		return nil, apperr.Persistence("Failed to record acknowledgment")
	}

	LogEvent(carerID, models.EventMessageAcknowledged, messageID, "")

	go database.CacheInvalidate(unreadCountKey(carerID))

	return &ack, nil
}

func unreadCountKey(carerID string) string {
	return "unread_count:" + carerID
}

// CountUnread returns how many messages addressed to the carer have no
// acknowledgment yet. The count is cached for a short window; compose
// and acknowledge invalidate it, so staleness is bounded and the
// underlying rows stay the single source of truth.
func CountUnread(carerID string) (int64, error) {
	var cached int64
	if err := database.CacheGet(unreadCountKey(carerID), &cached); err == nil {
		return cached, nil
	}

	var count int64
	err := database.DB.Table("message_recipients AS mr").
		Joins("LEFT JOIN message_acknowledgments a ON a.message_id = mr.message_id AND a.carer_id = mr.carer_id").
		Where("mr.carer_id = ? AND a.id IS NULL", carerID).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Persistence("Failed to count unread messages")
	}

	database.CacheSet(unreadCountKey(carerID), count, 30*time.Second)

	return count, nil
}

const ackStatusExpr = "CASE WHEN a.id IS NULL THEN 'unread' ELSE 'acknowledged' END AS status"

// ListReceivedMessages returns one row per message addressed to the
// carer, newest first, each tagged with its derived status.
func ListReceivedMessages(carerID string) ([]models.MessageView, error) {
	views := []models.MessageView{}
	err := database.DB.Table("message_recipients AS mr").
		Select("m.id, m.sender_id, u.full_name AS sender_name, m.title, m.body, m.is_broadcast, m.created_at, " + ackStatusExpr).
		Joins("JOIN messages m ON m.id = mr.message_id").
		Joins("JOIN users u ON u.id = m.sender_id").
		Joins("LEFT JOIN message_acknowledgments a ON a.message_id = mr.message_id AND a.carer_id = mr.carer_id").
		Where("mr.carer_id = ?", carerID).
		Order("m.created_at DESC, m.id DESC").
		Scan(&views).Error
	if err != nil {
		return nil, apperr.Persistence("Failed to fetch messages")
	}
	return views, nil
}

// ListAuthoredMessages returns one row per (message, carer) pair
// authored by the coordinator; a broadcast yields one row per
// recipient since status is per recipient. statusFilter "unread"
// restricts to unacknowledged pairs; any other value returns all.
// Ordering is created_at descending with message id as the tie-break.
func ListAuthoredMessages(coordinatorID, statusFilter string) ([]models.MessageRecipientView, error) {
	query := database.DB.Table("message_recipients AS mr").
		Select("m.id AS message_id, m.title, m.body, m.is_broadcast, m.created_at, "+
			"mr.carer_id, u.full_name AS carer_name, a.acknowledged_at, "+ackStatusExpr).
		Joins("JOIN messages m ON m.id = mr.message_id").
		Joins("JOIN users u ON u.id = mr.carer_id").
		Joins("LEFT JOIN message_acknowledgments a ON a.message_id = mr.message_id AND a.carer_id = mr.carer_id").
		Where("m.sender_id = ?", coordinatorID)

	if statusFilter == string(models.StatusUnread) {
		query = query.Where("a.id IS NULL")
	}

	views := []models.MessageRecipientView{}
	err := query.Order("m.created_at DESC, m.id DESC").Scan(&views).Error
	if err != nil {
		return nil, apperr.Persistence("Failed to fetch message status")
	}
	return views, nil
}
