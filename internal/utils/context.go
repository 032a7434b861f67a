package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/immacora/softdesk/internal/authz"
	"github.com/immacora/softdesk/internal/middleware"
	"github.com/immacora/softdesk/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (middleware.AuthenticatedUser, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return middleware.AuthenticatedUser{}, fmt.Errorf("User not authenticated")
	}

	authenticatedUser, ok := user.(middleware.AuthenticatedUser)

	if !ok {
		return middleware.AuthenticatedUser{}, fmt.Errorf("Invalid user type in context")
	}

	return authenticatedUser, nil
}

// GetCaller projects the authenticated user into the identity the
// authorization predicates evaluate.
func GetCaller(ctx *gin.Context) (authz.Caller, error) {
	user, err := GetCurrentUser(ctx)

	if err != nil {
		return authz.Caller{}, err
	}

	return authz.Caller{ID: user.ID, IsSuperuser: user.IsSuperuser}, nil
}

// GetParamID parses a path parameter as a UUID.
func GetParamID(ctx *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param(name))

	if err != nil {
		return uuid.Nil, fmt.Errorf("Invalid %s", name)
	}

	return id, nil
}
