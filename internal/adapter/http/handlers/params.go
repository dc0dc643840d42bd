package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func versionParam(c *gin.Context) (int, bool) {
	v, err := strconv.Atoi(c.Param("version"))
	if err != nil || v < 1 {
		return 0, false
	}
	return v, true
}

func trimmedParam(c *gin.Context, name string) string {
	return strings.TrimSpace(c.Param(name))
}

// bindOptionalJSON binds the body when there is one.
func bindOptionalJSON(c *gin.Context, dst any) error {
	if c.Request.ContentLength == 0 {
		return nil
	}
	return c.ShouldBindJSON(dst)
}
