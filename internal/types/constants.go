package types

import (
	"os"
	"strings"
)

const ContextUserKey = "user"

// Contributor permissions.
const (
	PermissionAuthor   = "AUTHOR"
	PermissionAssigned = "ASSIGNED"
)

// AuthorRole is the role given to the contributor row created with a project.
const AuthorRole = "Owner"

var (
	ProjectTypes    = []string{"BACKEND", "FRONTEND", "IOS", "ANDROID"}
	IssueTags       = []string{"BUG", "IMPROVEMENT", "TASK"}
	IssuePriorities = []string{"WEAK", "MEDIUM", "HIGH"}
	IssueStatuses   = []string{"TODO", "ONGOING", "ENDED"}
)

func ValidProjectType(t string) bool { return contains(ProjectTypes, t) }
func ValidIssueTag(t string) bool    { return contains(IssueTags, t) }
func ValidIssuePriority(p string) bool {
	return contains(IssuePriorities, p)
}
func ValidIssueStatus(s string) bool { return contains(IssueStatuses, s) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

var (
	// Default allowed origins for development
	defaultOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}

	AllowedOrigins = initAllowedOrigins()
)

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		envOrigins := strings.Split(allowedOrigins, ",")
		for _, origin := range envOrigins {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
