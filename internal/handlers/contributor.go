package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/immacora/softdesk/internal/authz"
	"github.com/immacora/softdesk/internal/store"
	"github.com/immacora/softdesk/internal/types"
	"github.com/immacora/softdesk/internal/utils"
)

type AddContributorRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required"`
}

func ListContributors(ctx *gin.Context) {
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

	if err := authz.AuthorOrReadOnly(caller, membership, ctx.Request.Method); err != nil {
		forbidden(ctx)
		return
	}

	contributors, err := store.ListContributors(project.ID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contributors"})
		return
	}

	// Unreachable while the AUTHOR invariant holds; kept as a guard.
	if len(contributors) == 0 {
		forbidden(ctx)
		return
	}

	response := make([]types.ContributorView, 0, len(contributors))

	for _, contributor := range contributors {
		response = append(response, types.ContributorViewOf(contributor))
	}

	ctx.JSON(http.StatusOK, response)
}

func AddContributor(ctx *gin.Context) {
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

	if err := authz.AuthorOrReadOnly(caller, membership, ctx.Request.Method); err != nil {
		forbidden(ctx)
		return
	}

	var req AddContributorRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	targetUserID, err := uuid.Parse(req.UserID)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user_id"})
		return
	}

	if _, err := store.GetUserByID(targetUserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	contributor, err := store.AddContributor(project.ID, targetUserID, req.Role)

	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "User is already a contributor of this project"})
			return
		}
		log.Printf("Failed to add contributor: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add contributor"})
		return
	}

	recordAndBroadcast(project.ID, caller.ID, "contributor_added", map[string]any{
		"user_id": targetUserID.String(),
		"role":    req.Role,
	})

	ctx.JSON(http.StatusCreated, types.ContributorViewOf(contributor))
}

func RemoveContributor(ctx *gin.Context) {
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

	// Only the project author (or a superuser) may remove contributors.
	if err := authz.AuthorOrReadOnly(caller, membership, ctx.Request.Method); err != nil {
		forbidden(ctx)
		return
	}

	targetUserID, err := utils.GetParamID(ctx, "user_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	target, err := store.GetMembership(project.ID, targetUserID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contributor"})
		return
	}

	if target == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Contributor not found"})
		return
	}

	// The AUTHOR row is permanent until the project itself is deleted.
	if target.Permission == types.PermissionAuthor {
		forbidden(ctx)
		return
	}

	if err := store.RemoveContributor(target); err != nil {
		log.Printf("Failed to remove contributor: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove contributor"})
		return
	}

	recordAndBroadcast(project.ID, caller.ID, "contributor_removed", map[string]any{
		"user_id": targetUserID.String(),
	})

	ctx.Status(http.StatusNoContent)
}
