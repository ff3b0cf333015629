package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/trackside/internal/audit"
	"github.com/zulandar/trackside/internal/faults"
	"github.com/zulandar/trackside/internal/kpi"
	"github.com/zulandar/trackside/internal/models"
	"github.com/zulandar/trackside/internal/train"
)

// createTrainRequest mirrors the administrative create payload.
type createTrainRequest struct {
	Number      string    `json:"trainId"`
	Type        string    `json:"type"`
	ScheduledAt time.Time `json:"schedule"`
	Section     string    `json:"section"`
	Platform    string    `json:"platform"`
	Priority    string    `json:"priority"`
}

func (h *handlers) handleCreateTrain(c *gin.Context) {
	var req createTrainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, faults.InvalidInput("malformed request body"))
		return
	}

	t, err := h.trains.Create(train.CreateOpts{
		Number:      req.Number,
		Type:        req.Type,
		ScheduledAt: req.ScheduledAt,
		Section:     req.Section,
		Platform:    req.Platform,
		Priority:    req.Priority,
		CreatorID:   identity(c).UserID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"train": t})
}

func (h *handlers) handleAdminTrains(c *gin.Context) {
	trains, err := h.trains.List(train.ListFilters{Order: train.OrderCreatedDesc})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trains": trains})
}

func (h *handlers) handleCompleteTrain(c *gin.Context) {
	t, err := h.trains.Complete(c.Param("id"), train.Actor{UserID: identity(c).UserID})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"train": t})
}

func (h *handlers) handleCancelTrain(c *gin.Context) {
	t, err := h.trains.Cancel(c.Param("id"), train.Actor{UserID: identity(c).UserID})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"train": t})
}

func (h *handlers) handleKPI(c *gin.Context) {
	trains, err := h.trains.List(train.ListFilters{})
	if err != nil {
		fail(c, err)
		return
	}
	var users int64
	if err := h.db.Model(&models.User{}).Count(&users).Error; err != nil {
		fail(c, faults.Dependency("api: count users", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"kpi": kpi.Compute(trains, int(users))})
}

func (h *handlers) handleUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Preload("Controller").Order("created_at DESC").Find(&users).Error; err != nil {
		fail(c, faults.Dependency("api: list users", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *handlers) handleLogs(c *gin.Context) {
	logs, err := audit.Recent(h.db, 100)
	if err != nil {
		fail(c, faults.Dependency("api: recent logs", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
