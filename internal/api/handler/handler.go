package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"grievgo/backend/internal/grievance"
	"grievgo/backend/internal/storage"
)

// Handler wires the HTTP surface to the grievance service and storage.
type Handler struct {
	Storage    storage.Storage
	Grievances *grievance.Service
}

func NewHandler(s storage.Storage, g *grievance.Service) *Handler {
	return &Handler{Storage: s, Grievances: g}
}

// RegisterRoutes attaches the API surface to the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/login", h.Login)
	api.POST("/logout", h.Logout)
	api.POST("/register", h.Register)

	authed := api.Group("", h.RequireAuth())
	authed.GET("/user", h.CurrentUser)
	authed.GET("/grievances", h.ListGrievances)
	authed.GET("/grievances/:id", h.GetGrievance)
	authed.POST("/grievances", h.CreateGrievance)
	authed.PATCH("/grievances/:id", h.UpdateGrievance)

	admin := api.Group("/admin", h.RequireAuth(), h.RequireAdmin())
	admin.GET("/stats", h.Stats)
}

// bindError reduces a binding failure to the first violation, the only
// one the API reports.
func bindError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return fe.Field() + " is required"
		case "oneof":
			return fe.Field() + " must be one of: " + fe.Param()
		case "email":
			return fe.Field() + " must be a valid email address"
		}
		return fe.Field() + " is invalid"
	}
	return "Invalid request body"
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}
