package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Stats returns the dashboard rollup. Admin only.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.Grievances.Stats()
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, stats)
}
