package handler

import (
	"fmt"

	"github.com/eventhub-br/eventhub/internal/errdef"

	"github.com/gin-gonic/gin"
)

func DataBinder(c *gin.Context, req any) error {
	if c.ContentType() != "application/json" {
		reason := fmt.Sprintf("%s only accepts content of type application/json", c.FullPath())
		err := errdef.NewUnsupportedMediaType("%s", reason)
		_ = c.Error(err)
		return err
	}

	if err := c.ShouldBind(req); err != nil {
		bindErr := errdef.NewBadRequest("error binding data: %v", err)
		_ = c.Error(bindErr)
		return bindErr
	}

	return nil
}
