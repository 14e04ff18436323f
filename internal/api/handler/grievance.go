package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"grievgo/backend/internal/grievance"
	"grievgo/backend/internal/models"
)

// grievanceWithLogs is the detail payload: the record plus its audit
// trail, newest entries first.
type grievanceWithLogs struct {
	models.Grievance
	Logs []models.GrievanceLog `json:"logs"`
}

// ListGrievances returns grievances visible to the caller, optionally
// narrowed by ?status= and ?category=.
func (h *Handler) ListGrievances(c *gin.Context) {
	user := currentUser(c)

	grievances, err := h.Grievances.List(user, c.Query("status"), c.Query("category"))
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, grievances)
}

// GetGrievance returns one grievance with its logs.
func (h *Handler) GetGrievance(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	user := currentUser(c)

	g, logs, err := h.Grievances.Get(user, id)
	switch {
	case errors.Is(err, grievance.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Grievance not found"})
		return
	case errors.Is(err, grievance.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	case err != nil:
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, grievanceWithLogs{Grievance: *g, Logs: logs})
}

// CreateGrievance files a new submission for the authenticated user.
func (h *Handler) CreateGrievance(c *gin.Context) {
	var input grievance.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}
	user := currentUser(c)

	g, err := h.Grievances.Create(c.Request.Context(), user, input)
	if err != nil {
		internalError(c)
		return
	}
	c.JSON(http.StatusCreated, g)
}

// UpdateGrievance applies a staff/admin triage action.
func (h *Handler) UpdateGrievance(c *gin.Context) {
	user := currentUser(c)
	// Role gate comes first: a student gets 403 no matter what the
	// payload or id look like.
	if user.Role == models.RoleStudent {
		c.JSON(http.StatusForbidden, gin.H{"error": "Students cannot update status"})
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	var input grievance.UpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}

	g, err := h.Grievances.Update(user, id, input)
	switch {
	case errors.Is(err, grievance.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Students cannot update status"})
		return
	case errors.Is(err, grievance.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Grievance not found"})
		return
	case err != nil:
		internalError(c)
		return
	}

	c.JSON(http.StatusOK, g)
}

// parseID reads the :id route parameter. A malformed id can never match
// a grievance, so it reports 404 like any other miss.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Grievance not found"})
		return 0, false
	}
	return uint(id), true
}
