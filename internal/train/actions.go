package train

import (
	"errors"
	"fmt"

	"github.com/zulandar/trackside/internal/audit"
	"github.com/zulandar/trackside/internal/faults"
	"github.com/zulandar/trackside/internal/models"
	"gorm.io/gorm"
)

// Controller actions. These are the only controller-initiated mutations
// on a train.
const (
	ActionStart   = "START"
	ActionHalt    = "HALT"
	ActionReroute = "REROUTE"
)

// Delay accrued by each action, in minutes.
const (
	haltDelay    = 5
	rerouteDelay = 10
)

// Actor identifies who performed an operation, for the audit trail.
type Actor struct {
	UserID       string
	ControllerID string
}

// Apply executes a controller action against a train. Calls for the
// same train are serialized; checks precede mutation so a rejected call
// leaves no partial state.
func (r *Registry) Apply(trainID, action, controllerSection string, actor Actor) (*models.Train, error) {
	lock := r.idLocks.acquire(trainID)
	defer lock.Unlock()

	var t models.Train
	if err := r.db.Where("id = ?", trainID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("train", trainID)
		}
		return nil, faults.Dependency("train: get for action", err)
	}

	if t.Section != controllerSection {
		return nil, faults.Forbidden(fmt.Sprintf("train %s is not in your section", t.Number))
	}

	updates := map[string]interface{}{}
	var details string

	switch action {
	case ActionStart:
		if t.Status != models.StatusScheduled {
			return nil, faults.InvalidTransition(action, t.Status)
		}
		updates["status"] = models.StatusRunning
		details = fmt.Sprintf("Started train %s", t.Number)

	case ActionHalt:
		if t.Status != models.StatusRunning {
			return nil, faults.InvalidTransition(action, t.Status)
		}
		updates["status"] = models.StatusScheduled
		updates["delay_min"] = t.DelayMin + haltDelay
		details = fmt.Sprintf("Halted train %s", t.Number)

	case ActionReroute:
		if t.Terminal() {
			return nil, faults.InvalidTransition(action, t.Status)
		}
		alt, ok := r.sections.Alternate(controllerSection)
		if !ok {
			return nil, faults.NotFound("section", controllerSection)
		}
		updates["section"] = alt
		updates["delay_min"] = t.DelayMin + rerouteDelay
		updates["status"] = models.StatusScheduled
		details = fmt.Sprintf("Rerouted train %s to %s", t.Number, alt)

	default:
		return nil, faults.InvalidInput(fmt.Sprintf("action %q is not one of START, HALT, REROUTE", action))
	}

	if err := r.db.Model(&models.Train{}).Where("id = ?", trainID).Updates(updates).Error; err != nil {
		return nil, faults.Dependency("train: apply "+action, err)
	}

	r.record(audit.Entry{
		Action:       action,
		UserID:       actor.UserID,
		TrainID:      t.ID,
		ControllerID: actor.ControllerID,
		Details:      details,
	})

	return r.Get(trainID)
}

// Complete marks a running train COMPLETED. Administrative operation;
// COMPLETED is terminal.
func (r *Registry) Complete(trainID string, actor Actor) (*models.Train, error) {
	return r.finish(trainID, models.StatusCompleted, "COMPLETE_TRAIN", actor)
}

// Cancel marks a non-terminal train CANCELLED. Administrative
// operation; CANCELLED is terminal.
func (r *Registry) Cancel(trainID string, actor Actor) (*models.Train, error) {
	return r.finish(trainID, models.StatusCancelled, "CANCEL_TRAIN", actor)
}

func (r *Registry) finish(trainID, status, action string, actor Actor) (*models.Train, error) {
	lock := r.idLocks.acquire(trainID)
	defer lock.Unlock()

	var t models.Train
	if err := r.db.Where("id = ?", trainID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("train", trainID)
		}
		return nil, faults.Dependency("train: get for "+action, err)
	}

	if status == models.StatusCompleted && t.Status != models.StatusRunning {
		return nil, faults.InvalidTransition(action, t.Status)
	}
	if t.Terminal() {
		return nil, faults.InvalidTransition(action, t.Status)
	}

	if err := r.db.Model(&models.Train{}).Where("id = ?", trainID).
		Update("status", status).Error; err != nil {
		return nil, faults.Dependency("train: "+action, err)
	}

	r.record(audit.Entry{
		Action:  action,
		UserID:  actor.UserID,
		TrainID: t.ID,
		Details: fmt.Sprintf("Train %s marked %s", t.Number, status),
	})

	return r.Get(trainID)
}
