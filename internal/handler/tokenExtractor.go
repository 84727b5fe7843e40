package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
)

// GetTokenFromHttpAuthHeader returns the bearer token of the Authorization
// header, stripped of its scheme prefix.
func GetTokenFromHttpAuthHeader(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")

	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" {
		return "", errors.New("no bearer token in Authorization header")
	}

	return token, nil
}
