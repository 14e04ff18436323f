package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"grievgo/backend/internal/config"
	"grievgo/backend/internal/models"
)

const userContextKey = "currentUser"

// RequireAuth resolves the session cookie to a user and stores it in the
// request context. Handlers downstream read the identity from the context
// and never touch the session store themselves.
func (h *Handler) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(config.SessionCookie)
		if err != nil || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, ok, err := h.Storage.GetSessionUserID(sessionID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		user, err := h.Storage.GetUserByID(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		if user == nil {
			// Session outlived the account.
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireAdmin restricts a route to the admin role.
// It MUST be used AFTER RequireAuth.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Username   string  `json:"username" binding:"required"`
	Password   string  `json:"password" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Role       string  `json:"role" binding:"omitempty,oneof=student staff admin"`
	Department *string `json:"department"`
	FullName   string  `json:"fullName" binding:"required"`
}

// Login checks the credentials and opens a session.
// Unknown usernames and wrong passwords are indistinguishable.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}

	user, err := h.Storage.GetUserByUsername(req.Username)
	if err != nil {
		internalError(c)
		return
	}
	if user == nil || !user.CheckPassword(req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	sessionID, err := h.Storage.CreateSession(user.ID)
	if err != nil {
		internalError(c)
		return
	}

	h.setSessionCookie(c, sessionID)
	c.JSON(http.StatusOK, user)
}

// Logout destroys the session, if any.
func (h *Handler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(config.SessionCookie); err == nil && sessionID != "" {
		if err := h.Storage.DeleteSession(sessionID); err != nil {
			internalError(c)
			return
		}
	}
	c.SetCookie(config.SessionCookie, "", -1, "/", "", false, true)
	c.Status(http.StatusOK)
}

// Register creates an account and logs it in, like the original portal.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindError(err)})
		return
	}

	existing, err := h.Storage.GetUserByUsername(req.Username)
	if err != nil {
		internalError(c)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username already exists"})
		return
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}
	user := &models.User{
		Username:   req.Username,
		Email:      req.Email,
		Role:       role,
		Department: req.Department,
		FullName:   req.FullName,
	}
	if err := user.SetPassword(req.Password); err != nil {
		internalError(c)
		return
	}
	if err := h.Storage.CreateUser(user); err != nil {
		internalError(c)
		return
	}

	sessionID, err := h.Storage.CreateSession(user.ID)
	if err != nil {
		internalError(c)
		return
	}

	h.setSessionCookie(c, sessionID)
	c.JSON(http.StatusCreated, user)
}

// CurrentUser returns the authenticated user's record.
func (h *Handler) CurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (h *Handler) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetCookie(config.SessionCookie, sessionID,
		int(config.SessionTTL.Seconds()), "/", "", false, true)
}
