// Package kpi computes system-wide operational metrics from a full
// train snapshot. Snapshots are ephemeral: recomputed per query, never
// persisted.
package kpi

import (
	"math"

	"github.com/zulandar/trackside/internal/models"
)

// Snapshot is one aggregate reading of the whole system.
type Snapshot struct {
	TotalTrains   int `json:"totalTrains"`
	ActiveTrains  int `json:"activeTrains"`
	DelayedTrains int `json:"delayedTrains"`
	TotalUsers    int `json:"totalUsers"`
	AverageDelay  int `json:"averageDelay"` // minutes, mean over delayed trains
	Throughput    int `json:"throughput"`   // percent of all trains that completed
}

// Compute reduces the full train set and a user count to a Snapshot.
// Rounding is half-away-from-zero on the final mean and percentage;
// both are 0 when their denominator is 0.
func Compute(trains []models.Train, totalUsers int) Snapshot {
	s := Snapshot{
		TotalTrains: len(trains),
		TotalUsers:  totalUsers,
	}

	completed := 0
	delaySum := 0
	for i := range trains {
		t := &trains[i]
		if t.Active() {
			s.ActiveTrains++
		}
		if t.DelayMin > 0 {
			s.DelayedTrains++
			delaySum += t.DelayMin
		}
		if t.Status == models.StatusCompleted {
			completed++
		}
	}

	if s.DelayedTrains > 0 {
		s.AverageDelay = int(math.Round(float64(delaySum) / float64(s.DelayedTrains)))
	}
	if s.TotalTrains > 0 {
		s.Throughput = int(math.Round(float64(completed) / float64(s.TotalTrains) * 100))
	}
	return s
}
