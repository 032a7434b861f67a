package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/immacora/softdesk/internal/authz"
	"github.com/immacora/softdesk/internal/models"
	"github.com/immacora/softdesk/internal/store"
	"github.com/immacora/softdesk/internal/types"
	"github.com/immacora/softdesk/internal/utils"
)

type CreateIssueRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	Tag            string `json:"tag" binding:"required"`
	Priority       string `json:"priority" binding:"required"`
	Status         string `json:"status" binding:"required"`
	AssignedUserID string `json:"assigned_user_id"`
}

type UpdateIssueRequest struct {
	Title          string `json:"title" binding:"required"`
	Description    string `json:"description"`
	Tag            string `json:"tag" binding:"required"`
	Priority       string `json:"priority" binding:"required"`
	Status         string `json:"status" binding:"required"`
	AssignedUserID string `json:"assigned_user_id" binding:"required"`
}

func validIssueEnums(ctx *gin.Context, tag, priority, status string) bool {
	if !types.ValidIssueTag(tag) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue tag"})
		return false
	}

	if !types.ValidIssuePriority(priority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue priority"})
		return false
	}

	if !types.ValidIssueStatus(status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid issue status"})
		return false
	}

	return true
}

// resolveAssignee turns the optional assigned_user_id field into a user
// id, defaulting to the caller. The user must exist; whether they are a
// contributor is checked by the store on insert.
func resolveAssignee(ctx *gin.Context, caller authz.Caller, raw string) (uuid.UUID, bool) {
	if raw == "" {
		return caller.ID, true
	}

	assigneeID, err := uuid.Parse(raw)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assigned_user_id"})
		return uuid.Nil, false
	}

	if _, err := store.GetUserByID(assigneeID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Assigned user not found"})
			return uuid.Nil, false
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return uuid.Nil, false
	}

	return assigneeID, true
}

func ListIssues(ctx *gin.Context) {
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

	issues, err := store.ListIssues(project.ID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issues"})
		return
	}

	response := make([]types.IssueView, 0, len(issues))

	for _, issue := range issues {
		response = append(response, types.IssueViewOf(issue))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateIssue(ctx *gin.Context) {
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

	var req CreateIssueRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !validIssueEnums(ctx, req.Tag, req.Priority, req.Status) {
		return
	}

	assigneeID, ok := resolveAssignee(ctx, caller, req.AssignedUserID)

	if !ok {
		return
	}

	issue := models.Issue{
		ProjectID:      project.ID,
		Title:          req.Title,
		Description:    req.Description,
		Tag:            req.Tag,
		Priority:       req.Priority,
		Status:         req.Status,
		AuthorUserID:   caller.ID,
		AssignedUserID: assigneeID,
	}

	if err := store.CreateIssue(&issue); err != nil {
		if errors.Is(err, store.ErrNotContributor) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user is not a contributor of this project"})
			return
		}
		log.Printf("Failed to create issue: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	recordAndBroadcast(project.ID, caller.ID, "issue_created", map[string]any{
		"issue_id": issue.ID.String(),
		"title":    issue.Title,
	})

	ctx.JSON(http.StatusCreated, types.IssueViewOf(issue))
}

func GetIssue(ctx *gin.Context) {
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

	issueID, err := utils.GetParamID(ctx, "issue_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := store.GetIssue(project.ID, issueID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	ctx.JSON(http.StatusOK, types.IssueViewOf(issue))
}

func UpdateIssue(ctx *gin.Context) {
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

	issueID, err := utils.GetParamID(ctx, "issue_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := store.GetIssue(project.ID, issueID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	// Only the issue's original author may update it.
	if err := authz.IssueAuthorOnly(caller, &issue); err != nil {
		forbidden(ctx)
		return
	}

	var req UpdateIssueRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !validIssueEnums(ctx, req.Tag, req.Priority, req.Status) {
		return
	}

	assigneeID, ok := resolveAssignee(ctx, caller, req.AssignedUserID)

	if !ok {
		return
	}

	issue.Title = req.Title
	issue.Description = req.Description
	issue.Tag = req.Tag
	issue.Priority = req.Priority
	issue.Status = req.Status
	issue.AssignedUserID = assigneeID

	if err := store.SaveIssue(&issue); err != nil {
		if errors.Is(err, store.ErrNotContributor) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Assigned user is not a contributor of this project"})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
		return
	}

	recordAndBroadcast(project.ID, caller.ID, "issue_updated", map[string]any{
		"issue_id": issue.ID.String(),
		"status":   issue.Status,
	})

	ctx.JSON(http.StatusOK, types.IssueViewOf(issue))
}

func DeleteIssue(ctx *gin.Context) {
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

	issueID, err := utils.GetParamID(ctx, "issue_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := store.GetIssue(project.ID, issueID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		}
		return
	}

	if err := authz.IssueAuthorOnly(caller, &issue); err != nil {
		forbidden(ctx)
		return
	}

	if err := store.DeleteIssueCascade(issue.ID); err != nil {
		log.Printf("Failed to delete issue %s: %v", issue.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete issue"})
		return
	}

	recordAndBroadcast(project.ID, caller.ID, "issue_deleted", map[string]any{
		"issue_id": issue.ID.String(),
	})

	ctx.Status(http.StatusNoContent)
}
