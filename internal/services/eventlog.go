package services

import (
	"time"

	"github.com/IlluminoStudio/scribemate-sub000/internal/database"
	"github.com/IlluminoStudio/scribemate-sub000/internal/models"
	"github.com/IlluminoStudio/scribemate-sub000/pkg/logger"
)

// LogEvent appends to the audit event log. Failures are logged and
// swallowed: observability must never change the outcome of the
// operation that emitted the event. Callers with no authenticated
// viewer pass models.SystemActorID explicitly.
func LogEvent(actorID string, kind models.EventKind, targetID string, detail string) {
	event := models.AuditEvent{
		ActorID:   actorID,
		Kind:      kind,
		TargetID:  targetID,
		Detail:    detail,
		CreatedAt: time.Now(),
	}

	if err := database.DB.Create(&event).Error; err != nil {
		logger.Error().Err(err).
			Str("kind", string(kind)).
			Str("actor_id", actorID).
			Msg("Failed to record audit event")
	}
}
