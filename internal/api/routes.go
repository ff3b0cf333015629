package api

import (
	"github.com/gin-gonic/gin"
	"github.com/zulandar/trackside/internal/auth"
	"github.com/zulandar/trackside/internal/models"
	"github.com/zulandar/trackside/internal/section"
	"github.com/zulandar/trackside/internal/train"
	"gorm.io/gorm"
)

// handlers bundles the collaborators every route needs.
type handlers struct {
	db       *gorm.DB
	sections *section.Registry
	trains   *train.Registry
	gate     *auth.Gate
}

// registerRoutes sets up the operation surface on the Gin router.
func registerRoutes(router *gin.Engine, h *handlers) {
	api := router.Group("/api", h.authenticate())

	admin := api.Group("/admin", requireRole(models.RoleAdmin))
	admin.POST("/trains", h.handleCreateTrain)
	admin.GET("/trains", h.handleAdminTrains)
	admin.POST("/trains/:id/complete", h.handleCompleteTrain)
	admin.POST("/trains/:id/cancel", h.handleCancelTrain)
	admin.GET("/kpi", h.handleKPI)
	admin.GET("/users", h.handleUsers)
	admin.GET("/logs", h.handleLogs)

	controller := api.Group("/controller", requireRole(models.RoleController))
	controller.GET("/trains", h.handleControllerTrains)
	controller.POST("/trains/:id/action", h.handleTrainAction)
	controller.GET("/sections", h.handleSections)
	controller.GET("/suggestions", h.handleSuggestions)
	controller.GET("/profile", h.handleProfile)
}
