package store

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"github.com/immacora/softdesk/db"
	"github.com/immacora/softdesk/internal/models"
)

// RecordActivity appends an event to the project's activity feed.
// Best-effort: a failed write is logged, never surfaced to the caller.
func RecordActivity(projectID, actorID uuid.UUID, eventType string, payload map[string]any) {
	data, err := json.Marshal(payload)

	if err != nil {
		log.Printf("Failed to marshal activity payload for project %s: %v", projectID, err)
		return
	}

	event := models.ActivityEvent{
		ProjectID: projectID,
		ActorID:   actorID,
		Type:      eventType,
		Payload:   data,
	}

	if err := db.DB.Create(&event).Error; err != nil {
		log.Printf("Failed to record activity for project %s: %v", projectID, err)
	}
}

func ListActivity(projectID uuid.UUID, limit int) ([]models.ActivityEvent, error) {
	var events []models.ActivityEvent

	err := db.DB.Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&events).Error

	return events, err
}
