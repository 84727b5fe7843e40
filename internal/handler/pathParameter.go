package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetPathParameter parses the named path parameter as an unsigned id. A
// malformed value aborts the request with a 400 and returns ok false.
func GetPathParameter(c *gin.Context, parameter string) (uint, bool) {
	value := c.Param(parameter)
	id, err := strconv.ParseUint(value, 10, 32)
	if err != nil {
		_ = c.AbortWithError(http.StatusBadRequest, fmt.Errorf("path parameter %q is not a valid id: %v", parameter, err))
		return 0, false
	}
	return uint(id), true
}
