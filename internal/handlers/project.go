package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/immacora/softdesk/internal/authz"
	"github.com/immacora/softdesk/internal/models"
	"github.com/immacora/softdesk/internal/store"
	"github.com/immacora/softdesk/internal/types"
	"github.com/immacora/softdesk/internal/utils"
)

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
}

type UpdateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Type        string `json:"type" binding:"required"`
}

func CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	caller, err := utils.GetCaller(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if !types.ValidProjectType(req.Type) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project type"})
		return
	}

	project := models.Project{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
	}

	if _, err := store.CreateProjectWithAuthor(&project, caller.ID); err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create project"})
		return
	}

	recordAndBroadcast(project.ID, caller.ID, "project_created", map[string]any{
		"title": project.Title,
	})

	ctx.JSON(http.StatusCreated, types.ProjectViewOf(project))
}

func ListProjects(ctx *gin.Context) {
	caller, err := utils.GetCaller(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	projects, err := store.ListProjectsFor(caller.ID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve projects"})
		return
	}

	response := make([]types.ProjectView, 0, len(projects))

	for _, project := range projects {
		response = append(response, types.ProjectViewOf(project))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetProject(ctx *gin.Context) {
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

	ctx.JSON(http.StatusOK, types.ProjectViewOf(project))
}

func UpdateProject(ctx *gin.Context) {
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

	var req UpdateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !types.ValidProjectType(req.Type) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project type"})
		return
	}

	project.Title = req.Title
	project.Description = req.Description
	project.Type = req.Type

	if err := store.SaveProject(&project); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update project"})
		return
	}

	recordAndBroadcast(project.ID, caller.ID, "project_updated", map[string]any{
		"title": project.Title,
	})

	ctx.JSON(http.StatusOK, types.ProjectViewOf(project))
}

func DeleteProject(ctx *gin.Context) {
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

	if err := store.DeleteProjectCascade(project.ID); err != nil {
		log.Printf("Failed to delete project %s: %v", project.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete project"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
