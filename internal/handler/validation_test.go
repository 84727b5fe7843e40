package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Document string `binding:"omitempty,cpfcnpj"`
	Phone    string `binding:"omitempty,brphone"`
}

func TestRegisterValidation(t *testing.T) {
	err := RegisterValidation()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	request, err := http.NewRequest("GET", "/", nil)
	assert.NoError(t, err)
	ctx.Request = request

	err = ctx.ShouldBind(&payload{Document: "123.456.789-00"})
	assert.NoError(t, err)

	err = ctx.ShouldBind(&payload{Document: "12.345.678/0001-90"})
	assert.NoError(t, err)

	err = ctx.ShouldBind(&payload{Document: ""})
	assert.NoError(t, err)

	err = ctx.ShouldBind(&payload{Document: "1234"})
	assert.Error(t, err)

	err = ctx.ShouldBind(&payload{Phone: "(11) 99999-9999"})
	assert.NoError(t, err)

	err = ctx.ShouldBind(&payload{Phone: "999"})
	assert.Error(t, err)
}
