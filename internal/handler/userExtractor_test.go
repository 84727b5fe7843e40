package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/eventhub-br/eventhub/pkg/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestGetUserFromContext(t *testing.T) {
	user := &model.User{
		ID:     123,
		Email:  "someone@eventhub.br",
		Role:   model.RoleAdmin,
		Active: true,
	}

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Set("user", user)

	actual, err := GetUserFromContext(ctx)
	assert.NoError(t, err)
	assert.Equal(t, user, actual)
}

func TestGetUserFromContext_NoUser(t *testing.T) {
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	_, err := GetUserFromContext(ctx)
	assert.EqualError(t, err, "user not found on context")
}
