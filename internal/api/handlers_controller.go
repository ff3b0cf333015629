package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/trackside/internal/faults"
	"github.com/zulandar/trackside/internal/models"
	"github.com/zulandar/trackside/internal/section"
	"github.com/zulandar/trackside/internal/suggest"
	"github.com/zulandar/trackside/internal/train"
)

func (h *handlers) handleControllerTrains(c *gin.Context) {
	ctl, err := h.controllerFor(identity(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	trains, err := h.trains.List(train.ListFilters{
		Section: ctl.AssignedSection,
		Order:   train.OrderScheduledAsc,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trains": trains})
}

type trainActionRequest struct {
	Action string `json:"action"`
}

func (h *handlers) handleTrainAction(c *gin.Context) {
	var req trainActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Action == "" {
		fail(c, faults.Required("action"))
		return
	}

	ctl, err := h.controllerFor(identity(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}

	t, err := h.trains.Apply(c.Param("id"), req.Action, ctl.AssignedSection, train.Actor{
		UserID:       identity(c).UserID,
		ControllerID: ctl.ID,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Action completed successfully",
		"train":   t,
	})
}

func (h *handlers) handleSections(c *gin.Context) {
	trains, err := h.trains.List(train.ListFilters{
		Statuses: []string{models.StatusScheduled, models.StatusRunning},
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sections": section.ClassifyAll(h.sections, trains)})
}

func (h *handlers) handleSuggestions(c *gin.Context) {
	ctl, err := h.controllerFor(identity(c).UserID)
	if err != nil {
		fail(c, err)
		return
	}
	trains, err := h.trains.List(train.ListFilters{
		Section:  ctl.AssignedSection,
		Statuses: []string{models.StatusScheduled, models.StatusRunning},
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggest.Generate(trains, time.Now())})
}

func (h *handlers) handleProfile(c *gin.Context) {
	var ctl models.Controller
	err := h.db.Preload("User").Where("user_id = ?", identity(c).UserID).First(&ctl).Error
	if err != nil {
		fail(c, faults.NotFound("controller", ""))
		return
	}
	c.JSON(http.StatusOK, gin.H{"controller": ctl})
}
