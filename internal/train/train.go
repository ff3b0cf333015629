// Package train owns train records and the lifecycle state machine.
package train

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/zulandar/trackside/internal/audit"
	"github.com/zulandar/trackside/internal/faults"
	"github.com/zulandar/trackside/internal/models"
	"github.com/zulandar/trackside/internal/section"
	"gorm.io/gorm"
)

// List orderings.
const (
	OrderCreatedDesc  = "created_desc"  // administrative views
	OrderScheduledAsc = "scheduled_asc" // operational views
)

// Registry is the single writer for train records. All mutations go
// through it; reads return snapshots of current store state.
type Registry struct {
	db       *gorm.DB
	sections *section.Registry
	numLocks *keyedLocks
	idLocks  *keyedLocks
}

// New builds a Registry over the given store and section configuration.
func New(db *gorm.DB, sections *section.Registry) *Registry {
	return &Registry{
		db:       db,
		sections: sections,
		numLocks: newKeyedLocks(),
		idLocks:  newKeyedLocks(),
	}
}

// CreateOpts holds parameters for registering a new train.
type CreateOpts struct {
	Number      string // business reporting number, globally unique
	Type        string
	ScheduledAt time.Time
	Section     string
	Platform    string // optional
	Priority    string
	CreatorID   string
}

// ListFilters holds optional filters and ordering for listing trains.
type ListFilters struct {
	Section  string
	Statuses []string
	Order    string // OrderCreatedDesc (default) or OrderScheduledAsc
}

// Create registers a new train in SCHEDULED status with zero delay.
// The number uniqueness check is serialized per number so concurrent
// creates cannot both pass it.
func (r *Registry) Create(opts CreateOpts) (*models.Train, error) {
	if opts.Number == "" {
		return nil, faults.Required("number")
	}
	if opts.Type == "" {
		return nil, faults.Required("type")
	}
	if !models.ValidType(opts.Type) {
		return nil, faults.InvalidInput(fmt.Sprintf("type %q is not one of PASSENGER, EXPRESS, FREIGHT, LOCAL", opts.Type))
	}
	if opts.ScheduledAt.IsZero() {
		return nil, faults.Required("scheduledAt")
	}
	if opts.Section == "" {
		return nil, faults.Required("section")
	}
	if !r.sections.Has(opts.Section) {
		return nil, faults.InvalidInput(fmt.Sprintf("section %q is not configured", opts.Section))
	}
	if opts.Priority == "" {
		return nil, faults.Required("priority")
	}
	if !models.ValidPriority(opts.Priority) {
		return nil, faults.InvalidInput(fmt.Sprintf("priority %q is not one of LOW, MEDIUM, HIGH, URGENT", opts.Priority))
	}

	lock := r.numLocks.acquire(opts.Number)
	defer lock.Unlock()

	var count int64
	if err := r.db.Model(&models.Train{}).Where("number = ?", opts.Number).Count(&count).Error; err != nil {
		return nil, faults.Dependency("train: check number", err)
	}
	if count > 0 {
		return nil, faults.Conflict(fmt.Sprintf("train %s already exists", opts.Number))
	}

	t := models.Train{
		ID:          uuid.NewString(),
		Number:      opts.Number,
		Type:        opts.Type,
		ScheduledAt: opts.ScheduledAt,
		Section:     opts.Section,
		Platform:    opts.Platform,
		Priority:    opts.Priority,
		Status:      models.StatusScheduled,
		DelayMin:    0,
		CreatorID:   opts.CreatorID,
	}
	if err := r.db.Create(&t).Error; err != nil {
		return nil, faults.Dependency("train: create", err)
	}

	r.record(audit.Entry{
		Action:  "CREATE_TRAIN",
		UserID:  opts.CreatorID,
		TrainID: t.ID,
		Details: fmt.Sprintf("Created new train %s (%s)", t.Number, t.Type),
	})

	return &t, nil
}

// Get retrieves a train by record ID.
func (r *Registry) Get(id string) (*models.Train, error) {
	var t models.Train
	if err := r.db.Where("id = ?", id).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, faults.NotFound("train", id)
		}
		return nil, faults.Dependency("train: get", err)
	}
	return &t, nil
}

// List returns trains matching the given filters, as one consistent
// snapshot for the read-side views.
func (r *Registry) List(filters ListFilters) ([]models.Train, error) {
	q := r.db.Model(&models.Train{}).Preload("Creator")

	if filters.Section != "" {
		q = q.Where("section = ?", filters.Section)
	}
	if len(filters.Statuses) > 0 {
		q = q.Where("status IN ?", filters.Statuses)
	}

	switch filters.Order {
	case OrderScheduledAsc:
		q = q.Order("scheduled_at ASC")
	default:
		q = q.Order("created_at DESC")
	}

	var trains []models.Train
	if err := q.Find(&trains).Error; err != nil {
		return nil, faults.Dependency("train: list", err)
	}
	return trains, nil
}

// record appends an audit entry, best-effort. A failed append never
// affects the mutation it describes.
func (r *Registry) record(e audit.Entry) {
	if _, err := audit.Record(r.db, e); err != nil {
		log.Printf("train: audit %s: %v", e.Action, err)
	}
}
