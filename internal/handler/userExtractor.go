package handler

import (
	"errors"

	"github.com/eventhub-br/eventhub/pkg/model"

	"github.com/gin-gonic/gin"
)

// GetUserFromContext returns the user the authentication middleware resolved
// for the current request.
func GetUserFromContext(c *gin.Context) (*model.User, error) {
	userData, exists := c.Get("user")
	if !exists {
		return nil, errors.New("user not found on context")
	}

	user, ok := userData.(*model.User)
	if !ok {
		return nil, errors.New("failed to parse user data")
	}
	return user, nil
}
