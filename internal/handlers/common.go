package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/immacora/softdesk/internal/authz"
	"github.com/immacora/softdesk/internal/models"
	"github.com/immacora/softdesk/internal/store"
	"github.com/immacora/softdesk/internal/utils"
)

// forbidden writes the 403 response. Deliberately carries no detail
// about which predicate failed.
func forbidden(ctx *gin.Context) {
	ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
}

// loadProjectContext resolves the project_id path parameter into the
// project and the caller's contributor row for it. Each handler then
// declares its own predicate conjunction against the result. Returns
// false after writing a response when the request cannot proceed.
func loadProjectContext(ctx *gin.Context, caller authz.Caller) (models.Project, *models.Contributor, bool) {
	projectID, err := utils.GetParamID(ctx, "project_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Project{}, nil, false
	}

	project, err := store.GetProject(projectID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		}
		return models.Project{}, nil, false
	}

	membership, err := store.GetMembership(project.ID, caller.ID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return models.Project{}, nil, false
	}

	return project, membership, true
}

// recordAndBroadcast appends to the project's activity feed and pushes
// the event to connected websocket clients.
func recordAndBroadcast(projectID, actorID uuid.UUID, eventType string, payload map[string]any) {
	store.RecordActivity(projectID, actorID, eventType, payload)
	BroadcastActivity(projectID.String(), eventType, payload)
}
