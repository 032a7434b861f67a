package types

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/immacora/softdesk/internal/models"
)

// One canonical view per entity; every handler responds through these
// projections so field visibility is decided in exactly one place.

type UserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	IsActive  bool      `json:"is_active"`
}

type ProjectView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ContributorView struct {
	ID         uuid.UUID `json:"id"`
	ProjectID  uuid.UUID `json:"project_id"`
	UserID     uuid.UUID `json:"user_id"`
	Permission string    `json:"permission"`
	Role       string    `json:"role"`
	CreatedAt  time.Time `json:"created_at"`
}

type IssueView struct {
	ID             uuid.UUID `json:"id"`
	ProjectID      uuid.UUID `json:"project_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Tag            string    `json:"tag"`
	Priority       string    `json:"priority"`
	Status         string    `json:"status"`
	AuthorUserID   uuid.UUID `json:"author_user_id"`
	AssignedUserID uuid.UUID `json:"assigned_user_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type CommentView struct {
	ID           uuid.UUID `json:"id"`
	IssueID      uuid.UUID `json:"issue_id"`
	Description  string    `json:"description"`
	AuthorUserID uuid.UUID `json:"author_user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ActivityView struct {
	ID        uuid.UUID      `json:"id"`
	ProjectID uuid.UUID      `json:"project_id"`
	ActorID   uuid.UUID      `json:"actor_id"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	CreatedAt time.Time      `json:"created_at"`
}

func ActivityViewOf(e models.ActivityEvent) ActivityView {
	var payload map[string]any
	if len(e.Payload) > 0 {
		_ = json.Unmarshal(e.Payload, &payload)
	}
	return ActivityView{
		ID:        e.ID,
		ProjectID: e.ProjectID,
		ActorID:   e.ActorID,
		Type:      e.Type,
		Payload:   payload,
		CreatedAt: e.CreatedAt,
	}
}

func UserViewOf(u models.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		IsActive:  u.IsActive,
	}
}

func ProjectViewOf(p models.Project) ProjectView {
	return ProjectView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Type:        p.Type,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func ContributorViewOf(c models.Contributor) ContributorView {
	return ContributorView{
		ID:         c.ID,
		ProjectID:  c.ProjectID,
		UserID:     c.UserID,
		Permission: c.Permission,
		Role:       c.Role,
		CreatedAt:  c.CreatedAt,
	}
}

func IssueViewOf(i models.Issue) IssueView {
	return IssueView{
		ID:             i.ID,
		ProjectID:      i.ProjectID,
		Title:          i.Title,
		Description:    i.Description,
		Tag:            i.Tag,
		Priority:       i.Priority,
		Status:         i.Status,
		AuthorUserID:   i.AuthorUserID,
		AssignedUserID: i.AssignedUserID,
		CreatedAt:      i.CreatedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func CommentViewOf(c models.Comment) CommentView {
	return CommentView{
		ID:           c.ID,
		IssueID:      c.IssueID,
		Description:  c.Description,
		AuthorUserID: c.AuthorUserID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
