package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/trackside/internal/auth"
	"github.com/zulandar/trackside/internal/faults"
	"github.com/zulandar/trackside/internal/models"
	"gorm.io/gorm"
)

const identityKey = "identity"

// authenticate resolves the bearer token and stores the identity on the
// request context.
func (h *handlers) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := h.gate.Resolve(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// requireRole rejects callers whose resolved role does not match.
func requireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if identity(c).Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}

// identity returns the resolved caller. Only valid on routes behind
// authenticate.
func identity(c *gin.Context) auth.Identity {
	v, _ := c.Get(identityKey)
	id, _ := v.(auth.Identity)
	return id
}

// controllerFor loads the controller record bound to a user.
func (h *handlers) controllerFor(userID string) (*models.Controller, error) {
	var ctl models.Controller
	if err := h.db.Where("user_id = ?", userID).First(&ctl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("controller", "")
		}
		return nil, faults.Dependency("api: load controller", err)
	}
	return &ctl, nil
}

// fail writes the JSON error response for an engine failure, mapping
// each error kind to its stable status code.
func fail(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// statusFor maps the engine error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case faults.IsUnauthenticated(err):
		return http.StatusUnauthorized
	case faults.IsForbidden(err):
		return http.StatusForbidden
	case faults.IsNotFound(err):
		return http.StatusNotFound
	case faults.IsConflict(err):
		return http.StatusConflict
	case faults.IsInvalidInput(err), faults.IsInvalidTransition(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
