// Package suggest generates rule-based operational recommendations for
// a section's active trains. Suggestions are ephemeral: recomputed on
// every query and never stored.
package suggest

import (
	"fmt"
	"time"

	"github.com/zulandar/trackside/internal/models"
)

// Thresholds for the fixed rule set.
const (
	delayThresholdMin   = 15  // rule 1: delay that flags a high-priority train
	congestionTrainMin  = 5   // rule 3: section train count that defers freight
	sectionDelayRateMax = 0.3 // system rule: tolerable fraction of delayed trains
)

// Suggestion is one recommendation for a controller. IDs are derived
// from the train record and rule index, so the same snapshot always
// produces the same IDs.
type Suggestion struct {
	ID          string    `json:"id"`
	TrainID     string    `json:"trainId"` // business number, or "SYSTEM"
	Text        string    `json:"suggestion"`
	Priority    string    `json:"priority"`
	Confidence  float64   `json:"confidence"`
	GeneratedAt time.Time `json:"timestamp"`
}

// Generate evaluates the rule set against one section's train snapshot.
// Rules run per train in fixed order, each contributing at most one
// suggestion, followed by one section-wide delay-rate rule. Only
// SCHEDULED and RUNNING trains are considered.
func Generate(trains []models.Train, now time.Time) []Suggestion {
	active := make([]models.Train, 0, len(trains))
	for i := range trains {
		if trains[i].Active() {
			active = append(active, trains[i])
		}
	}

	suggestions := []Suggestion{}
	for i := range active {
		t := &active[i]

		if t.DelayMin > delayThresholdMin && t.Priority == models.PriorityHigh {
			suggestions = append(suggestions, Suggestion{
				ID:          fmt.Sprintf("suggestion_%s_1", t.ID),
				TrainID:     t.Number,
				Text:        fmt.Sprintf("High-priority train %s is delayed by %d minutes. Consider rerouting or priority adjustment.", t.Number, t.DelayMin),
				Priority:    models.PriorityHigh,
				Confidence:  0.85,
				GeneratedAt: now,
			})
		}

		if t.Status == models.StatusScheduled && t.Priority == models.PriorityUrgent {
			suggestions = append(suggestions, Suggestion{
				ID:          fmt.Sprintf("suggestion_%s_2", t.ID),
				TrainID:     t.Number,
				Text:        fmt.Sprintf("Urgent train %s is scheduled but not yet started. Recommend immediate departure.", t.Number),
				Priority:    models.PriorityUrgent,
				Confidence:  0.95,
				GeneratedAt: now,
			})
		}

		if len(active) > congestionTrainMin && t.Type == models.TypeFreight {
			suggestions = append(suggestions, Suggestion{
				ID:          fmt.Sprintf("suggestion_%s_3", t.ID),
				TrainID:     t.Number,
				Text:        fmt.Sprintf("Section congestion detected. Consider delaying freight train %s to prioritize passenger trains.", t.Number),
				Priority:    models.PriorityMedium,
				Confidence:  0.70,
				GeneratedAt: now,
			})
		}
	}

	if delayRateExceeded(active) {
		suggestions = append(suggestions, Suggestion{
			ID:          "system_suggestion_1",
			TrainID:     "SYSTEM",
			Text:        "High delay rate detected in your section. Consider reviewing scheduling and optimizing train intervals.",
			Priority:    models.PriorityHigh,
			Confidence:  0.90,
			GeneratedAt: now,
		})
	}

	return suggestions
}

// delayRateExceeded reports whether the fraction of delayed trains
// exceeds the section-wide tolerance.
func delayRateExceeded(active []models.Train) bool {
	if len(active) == 0 {
		return false
	}
	delayed := 0
	for i := range active {
		if active[i].DelayMin > 0 {
			delayed++
		}
	}
	return float64(delayed) > float64(len(active))*sectionDelayRateMax
}
