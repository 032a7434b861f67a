package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/immacora/softdesk/internal/authz"
	"github.com/immacora/softdesk/internal/models"
	"github.com/immacora/softdesk/internal/store"
	"github.com/immacora/softdesk/internal/types"
	"github.com/immacora/softdesk/internal/utils"
)

type CommentRequest struct {
	Description string `json:"description" binding:"required"`
}

func ListComments(ctx *gin.Context) {
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

	comments, err := store.ListComments(issue.ID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comments"})
		return
	}

	if len(comments) == 0 {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "No comments found"})
		return
	}

	response := make([]types.CommentView, 0, len(comments))

	for _, comment := range comments {
		response = append(response, types.CommentViewOf(comment))
	}

	ctx.JSON(http.StatusOK, response)
}

func CreateComment(ctx *gin.Context) {
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

	var req CommentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment := models.Comment{
		IssueID:      issue.ID,
		Description:  req.Description,
		AuthorUserID: caller.ID,
	}

	if err := store.CreateComment(&comment); err != nil {
		log.Printf("Failed to create comment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	recordAndBroadcast(project.ID, caller.ID, "comment_created", map[string]any{
		"issue_id":   issue.ID.String(),
		"comment_id": comment.ID.String(),
	})

	ctx.JSON(http.StatusCreated, types.CommentViewOf(comment))
}

// loadCommentContext resolves a flat comment route: the comment, its
// issue and the caller's membership on the enclosing project. Returns
// false after writing a response when the request cannot proceed.
func loadCommentContext(ctx *gin.Context, caller authz.Caller) (models.Comment, models.Issue, *models.Contributor, bool) {
	commentID, err := utils.GetParamID(ctx, "comment_id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Comment{}, models.Issue{}, nil, false
	}

	comment, err := store.GetComment(commentID)

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve comment"})
		}
		return models.Comment{}, models.Issue{}, nil, false
	}

	issue, err := store.GetIssueByID(comment.IssueID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return models.Comment{}, models.Issue{}, nil, false
	}

	membership, err := store.GetMembership(issue.ProjectID, caller.ID)

	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve project"})
		return models.Comment{}, models.Issue{}, nil, false
	}

	return comment, issue, membership, true
}

func GetComment(ctx *gin.Context) {
	caller, err := utils.GetCaller(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	comment, _, membership, ok := loadCommentContext(ctx, caller)

	if !ok {
		return
	}

	if err := authz.ContributorOnly(caller, membership); err != nil {
		forbidden(ctx)
		return
	}

	ctx.JSON(http.StatusOK, types.CommentViewOf(comment))
}

func UpdateComment(ctx *gin.Context) {
	caller, err := utils.GetCaller(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	comment, issue, membership, ok := loadCommentContext(ctx, caller)

	if !ok {
		return
	}

	if err := authz.ContributorOnly(caller, membership); err != nil {
		forbidden(ctx)
		return
	}

	if err := authz.CommentAuthorOnly(caller, &comment); err != nil {
		forbidden(ctx)
		return
	}

	var req CommentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	comment.Description = req.Description

	if err := store.SaveComment(&comment); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	recordAndBroadcast(issue.ProjectID, caller.ID, "comment_updated", map[string]any{
		"issue_id":   issue.ID.String(),
		"comment_id": comment.ID.String(),
	})

	ctx.JSON(http.StatusOK, types.CommentViewOf(comment))
}

func DeleteComment(ctx *gin.Context) {
	caller, err := utils.GetCaller(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	comment, issue, membership, ok := loadCommentContext(ctx, caller)

	if !ok {
		return
	}

	if err := authz.ContributorOnly(caller, membership); err != nil {
		forbidden(ctx)
		return
	}

	if err := authz.CommentAuthorOnly(caller, &comment); err != nil {
		forbidden(ctx)
		return
	}

	if err := store.DeleteComment(&comment); err != nil {
		log.Printf("Failed to delete comment %s: %v", comment.ID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	recordAndBroadcast(issue.ProjectID, caller.ID, "comment_deleted", map[string]any{
		"issue_id":   issue.ID.String(),
		"comment_id": comment.ID.String(),
	})

	ctx.Status(http.StatusNoContent)
}
