package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/immacora/softdesk/internal/authz"
	"github.com/immacora/softdesk/internal/store"
	"github.com/immacora/softdesk/internal/types"
	"github.com/immacora/softdesk/internal/utils"
)

const activityLimit = 50

func GetActivity(ctx *gin.Context) {
	caller, err := utils.GetCaller(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	project, membership, ok := loadProjectContext(ctx, caller)

	if !ok {
		return
	}

	if err := authz.ContributorOnly(caller, membership); err != nil {
		forbidden(ctx)
		return
	}

	events, err := store.ListActivity(project.ID, activityLimit)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve activity"})
		return
	}

	response := make([]types.ActivityView, 0, len(events))

	for _, event := range events {
		response = append(response, types.ActivityViewOf(event))
	}

	ctx.JSON(http.StatusOK, response)
}
