package section

import (
	"math"

	"github.com/zulandar/trackside/internal/faults"
	"github.com/zulandar/trackside/internal/models"
)

// Section status values.
const (
	StatusActive    = "ACTIVE"
	StatusCongested = "CONGESTED"
)

// Utilization above this percentage marks a section congested.
const congestionThreshold = 80

// Classification is the derived state of one section at a point in time.
type Classification struct {
	Name        string `json:"name"`
	Status      string `json:"status"`
	TrainCount  int    `json:"trainCount"`
	Capacity    int    `json:"capacity"`
	Utilization int    `json:"utilization"`
}

// Classify computes the classification for one section from a train
// snapshot. Only SCHEDULED and RUNNING trains occupy capacity. The
// snapshot must come from a single read so the count and status agree.
func Classify(reg *Registry, name string, trains []models.Train) (Classification, error) {
	sec, ok := reg.Get(name)
	if !ok {
		return Classification{}, faults.NotFound("section", name)
	}
	count := 0
	for i := range trains {
		if trains[i].Section == name && trains[i].Active() {
			count++
		}
	}
	utilization := int(math.Round(float64(count) / float64(sec.Capacity) * 100))
	status := StatusActive
	if utilization > congestionThreshold {
		status = StatusCongested
	}
	return Classification{
		Name:        name,
		Status:      status,
		TrainCount:  count,
		Capacity:    sec.Capacity,
		Utilization: utilization,
	}, nil
}

// ClassifyAll classifies every configured section, in configured order,
// against the same snapshot.
func ClassifyAll(reg *Registry, trains []models.Train) []Classification {
	out := make([]Classification, 0, len(reg.sections))
	for _, sec := range reg.sections {
		c, _ := Classify(reg, sec.Name, trains)
		out = append(out, c)
	}
	return out
}
