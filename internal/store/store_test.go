package store_test

import (
	"fmt"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/immacora/softdesk/db"
	"github.com/immacora/softdesk/internal/models"
	"github.com/immacora/softdesk/internal/store"
	"github.com/immacora/softdesk/internal/types"
)

// setupDB points the global handle at a fresh in-memory database. The
// DSN is unique per test so parallel tests never share state.
func setupDB(t *testing.T) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	var err error
	db.DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
}

func createUser(t *testing.T, email string) models.User {
	t.Helper()

	user := models.User{
		Email:        email,
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "x",
		IsActive:     true,
	}

	if err := store.CreateUser(&user); err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}

	return user
}

func createProject(t *testing.T, author models.User) models.Project {
	t.Helper()

	project := models.Project{Title: "SoftDesk", Description: "issue tracker", Type: "BACKEND"}

	if _, err := store.CreateProjectWithAuthor(&project, author.ID); err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	return project
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	c := qt.New(t)
	setupDB(t)

	createUser(t, "a@example.com")

	dup := models.User{Email: "a@example.com", FirstName: "B", LastName: "C", PasswordHash: "x"}
	c.Assert(store.CreateUser(&dup), qt.Equals, store.ErrConflict)
}

func TestCreateProjectWithAuthor(t *testing.T) {
	c := qt.New(t)
	setupDB(t)

	author := createUser(t, "a@example.com")
	project := createProject(t, author)

	contributors, err := store.ListContributors(project.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(contributors, qt.HasLen, 1)
	c.Assert(contributors[0].UserID, qt.Equals, author.ID)
	c.Assert(contributors[0].Permission, qt.Equals, types.PermissionAuthor)
	c.Assert(contributors[0].Role, qt.Equals, types.AuthorRole)

	// Exactly one AUTHOR row per project.
	var authorRows int64
	db.DB.Model(&models.Contributor{}).
		Where("project_id = ? AND permission = ?", project.ID, types.PermissionAuthor).
		Count(&authorRows)
	c.Assert(authorRows, qt.Equals, int64(1))
}

func TestContributorUniqueness(t *testing.T) {
	c := qt.New(t)
	setupDB(t)

	author := createUser(t, "a@example.com")
	other := createUser(t, "b@example.com")
	project := createProject(t, author)

	_, err := store.AddContributor(project.ID, other.ID, "Tester")
	c.Assert(err, qt.IsNil)

	// A second row for the same (user, project) pair hits the unique index.
	_, err = store.AddContributor(project.ID, other.ID, "Tester")
	c.Assert(err, qt.Equals, store.ErrConflict)

	// The author's bootstrap row also collides.
	_, err = store.AddContributor(project.ID, author.ID, "Tester")
	c.Assert(err, qt.Equals, store.ErrConflict)
}

func TestRemoveContributorAndReAdd(t *testing.T) {
	c := qt.New(t)
	setupDB(t)

	author := createUser(t, "a@example.com")
	other := createUser(t, "b@example.com")
	project := createProject(t, author)

	contributor, err := store.AddContributor(project.ID, other.ID, "Tester")
	c.Assert(err, qt.IsNil)

	c.Assert(store.RemoveContributor(&contributor), qt.IsNil)

	membership, err := store.GetMembership(project.ID, other.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(membership, qt.IsNil)

	// No residual uniqueness conflict after removal.
	_, err = store.AddContributor(project.ID, other.ID, "Tester")
	c.Assert(err, qt.IsNil)
}

func TestRemoveContributorLeavesAssignedIssues(t *testing.T) {
	c := qt.New(t)
	setupDB(t)

	author := createUser(t, "a@example.com")
	other := createUser(t, "b@example.com")
	project := createProject(t, author)

	contributor, err := store.AddContributor(project.ID, other.ID, "Tester")
	c.Assert(err, qt.IsNil)

	issue := models.Issue{
		ProjectID:      project.ID,
		Title:          "Crash on login",
		Tag:            "BUG",
		Priority:       "HIGH",
		Status:         "TODO",
		AuthorUserID:   author.ID,
		AssignedUserID: other.ID,
	}
	c.Assert(store.CreateIssue(&issue), qt.IsNil)

	c.Assert(store.RemoveContributor(&contributor), qt.IsNil)

	// The issue keeps its assignee; removal does not reassign.
	got, err := store.GetIssue(project.ID, issue.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(got.AssignedUserID, qt.Equals, other.ID)
}

func TestCreateIssueRequiresContributorAssignee(t *testing.T) {
	c := qt.New(t)
	setupDB(t)

	author := createUser(t, "a@example.com")
	outsider := createUser(t, "c@example.com")
	project := createProject(t, author)

	issue := models.Issue{
		ProjectID:      project.ID,
		Title:          "Crash on login",
		Tag:            "BUG",
		Priority:       "HIGH",
		Status:         "TODO",
		AuthorUserID:   author.ID,
		AssignedUserID: outsider.ID,
	}

	c.Assert(store.CreateIssue(&issue), qt.Equals, store.ErrNotContributor)

	// Nothing persisted.
	var count int64
	db.DB.Model(&models.Issue{}).Where("project_id = ?", project.ID).Count(&count)
	c.Assert(count, qt.Equals, int64(0))
}

func TestDeleteProjectCascade(t *testing.T) {
	c := qt.New(t)
	setupDB(t)

	author := createUser(t, "a@example.com")
	other := createUser(t, "b@example.com")
	project := createProject(t, author)

	_, err := store.AddContributor(project.ID, other.ID, "Tester")
	c.Assert(err, qt.IsNil)

	issue := models.Issue{
		ProjectID:      project.ID,
		Title:          "Crash on login",
		Tag:            "BUG",
		Priority:       "HIGH",
		Status:         "TODO",
		AuthorUserID:   author.ID,
		AssignedUserID: author.ID,
	}
	c.Assert(store.CreateIssue(&issue), qt.IsNil)

	comment := models.Comment{IssueID: issue.ID, Description: "On it", AuthorUserID: other.ID}
	c.Assert(store.CreateComment(&comment), qt.IsNil)

	store.RecordActivity(project.ID, author.ID, "issue_created", map[string]any{"issue_id": issue.ID.String()})

	c.Assert(store.DeleteProjectCascade(project.ID), qt.IsNil)

	_, err = store.GetProject(project.ID)
	c.Assert(err, qt.Equals, store.ErrNotFound)

	projects, err := store.ListProjectsFor(author.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(projects, qt.HasLen, 0)

	var contributors, issues, comments, events int64
	db.DB.Model(&models.Contributor{}).Where("project_id = ?", project.ID).Count(&contributors)
	db.DB.Model(&models.Issue{}).Where("project_id = ?", project.ID).Count(&issues)
	db.DB.Model(&models.Comment{}).Where("issue_id = ?", issue.ID).Count(&comments)
	db.DB.Model(&models.ActivityEvent{}).Where("project_id = ?", project.ID).Count(&events)

	c.Assert(contributors, qt.Equals, int64(0))
	c.Assert(issues, qt.Equals, int64(0))
	c.Assert(comments, qt.Equals, int64(0))
	c.Assert(events, qt.Equals, int64(0))
}

func TestDeleteIssueCascade(t *testing.T) {
	c := qt.New(t)
	setupDB(t)

	author := createUser(t, "a@example.com")
	project := createProject(t, author)

	issue := models.Issue{
		ProjectID:      project.ID,
		Title:          "Crash on login",
		Tag:            "BUG",
		Priority:       "HIGH",
		Status:         "TODO",
		AuthorUserID:   author.ID,
		AssignedUserID: author.ID,
	}
	c.Assert(store.CreateIssue(&issue), qt.IsNil)

	comment := models.Comment{IssueID: issue.ID, Description: "On it", AuthorUserID: author.ID}
	c.Assert(store.CreateComment(&comment), qt.IsNil)

	c.Assert(store.DeleteIssueCascade(issue.ID), qt.IsNil)

	_, err := store.GetIssue(project.ID, issue.ID)
	c.Assert(err, qt.Equals, store.ErrNotFound)

	_, err = store.GetComment(comment.ID)
	c.Assert(err, qt.Equals, store.ErrNotFound)
}

func TestListProjectsForContributor(t *testing.T) {
	c := qt.New(t)
	setupDB(t)

	author := createUser(t, "a@example.com")
	other := createUser(t, "b@example.com")
	project := createProject(t, author)

	// Not a contributor yet.
	projects, err := store.ListProjectsFor(other.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(projects, qt.HasLen, 0)

	_, err = store.AddContributor(project.ID, other.ID, "Tester")
	c.Assert(err, qt.IsNil)

	projects, err = store.ListProjectsFor(other.ID)
	c.Assert(err, qt.IsNil)
	c.Assert(projects, qt.HasLen, 1)
	c.Assert(projects[0].ID, qt.Equals, project.ID)
}
