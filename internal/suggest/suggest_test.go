package suggest

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/zulandar/trackside/internal/models"
)

var testNow = time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

func train(id, number string) models.Train {
	return models.Train{
		ID:       id,
		Number:   number,
		Type:     models.TypePassenger,
		Section:  "Section A",
		Priority: models.PriorityMedium,
		Status:   models.StatusScheduled,
	}
}

func TestGenerate_DelayedHighPriority(t *testing.T) {
	tr := train("t-1", "12301")
	tr.Priority = models.PriorityHigh
	tr.DelayMin = 20

	// A single delayed train is also 100% of the section, so the
	// delay rate rule fires alongside the per-train rule.
	got := Generate([]models.Train{tr}, testNow)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	s := got[0]
	if s.ID != "suggestion_t-1_1" {
		t.Errorf("ID = %q, want suggestion_t-1_1", s.ID)
	}
	if s.TrainID != "12301" {
		t.Errorf("TrainID = %q, want 12301", s.TrainID)
	}
	if s.Priority != models.PriorityHigh {
		t.Errorf("Priority = %q, want HIGH", s.Priority)
	}
	if s.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want 0.85", s.Confidence)
	}
	want := "High-priority train 12301 is delayed by 20 minutes. Consider rerouting or priority adjustment."
	if s.Text != want {
		t.Errorf("Text = %q, want %q", s.Text, want)
	}
	if !s.GeneratedAt.Equal(testNow) {
		t.Errorf("GeneratedAt = %v, want %v", s.GeneratedAt, testNow)
	}
	if got[1].ID != "system_suggestion_1" || got[1].TrainID != "SYSTEM" {
		t.Errorf("got ID %q TrainID %q, want system_suggestion_1 SYSTEM", got[1].ID, got[1].TrainID)
	}
}

func TestGenerate_DelayRuleBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		delay    int
		priority string
		want     int
	}{
		{"delay at threshold", 15, models.PriorityHigh, 0},
		{"delay above threshold", 16, models.PriorityHigh, 1},
		{"delayed but medium priority", 30, models.PriorityMedium, 0},
		{"delayed but urgent priority", 30, models.PriorityUrgent, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := train("t-1", "12301")
			tr.Status = models.StatusRunning // keep rule 2 out of the picture
			tr.DelayMin = tt.delay
			tr.Priority = tt.priority

			got := Generate([]models.Train{tr}, testNow)
			// The delayed train alone always trips the section delay
			// rate rule; count only per-train suggestions.
			perTrain := 0
			for _, s := range got {
				if s.TrainID != "SYSTEM" {
					perTrain++
				}
			}
			if perTrain != tt.want {
				t.Errorf("per-train suggestions = %d, want %d", perTrain, tt.want)
			}
		})
	}
}

func TestGenerate_UrgentScheduled(t *testing.T) {
	tr := train("t-2", "12625")
	tr.Priority = models.PriorityUrgent

	got := Generate([]models.Train{tr}, testNow)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	s := got[0]
	if s.ID != "suggestion_t-2_2" {
		t.Errorf("ID = %q, want suggestion_t-2_2", s.ID)
	}
	if s.Priority != models.PriorityUrgent || s.Confidence != 0.95 {
		t.Errorf("got priority %q confidence %v, want URGENT 0.95", s.Priority, s.Confidence)
	}
	want := "Urgent train 12625 is scheduled but not yet started. Recommend immediate departure."
	if s.Text != want {
		t.Errorf("Text = %q, want %q", s.Text, want)
	}

	// A running urgent train does not trigger the rule.
	tr.Status = models.StatusRunning
	if got := Generate([]models.Train{tr}, testNow); len(got) != 0 {
		t.Errorf("running urgent train produced %d suggestions, want 0", len(got))
	}
}

func TestGenerate_FreightInBusySection(t *testing.T) {
	trains := make([]models.Train, 0, 6)
	for i := 0; i < 5; i++ {
		trains = append(trains, train(fmt.Sprintf("t-%d", i), fmt.Sprintf("11%03d", i)))
	}
	freight := train("t-f", "54321")
	freight.Type = models.TypeFreight
	trains = append(trains, freight)

	got := Generate(trains, testNow)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	s := got[0]
	if s.ID != "suggestion_t-f_3" {
		t.Errorf("ID = %q, want suggestion_t-f_3", s.ID)
	}
	if s.Priority != models.PriorityMedium || s.Confidence != 0.70 {
		t.Errorf("got priority %q confidence %v, want MEDIUM 0.70", s.Priority, s.Confidence)
	}
	want := "Section congestion detected. Consider delaying freight train 54321 to prioritize passenger trains."
	if s.Text != want {
		t.Errorf("Text = %q, want %q", s.Text, want)
	}

	// Five trains total (not more than five): rule stays quiet.
	if got := Generate(trains[1:], testNow); len(got) != 0 {
		t.Errorf("5-train section produced %d suggestions, want 0", len(got))
	}
}

func TestGenerate_SectionDelayRate(t *testing.T) {
	// 10 trains, 3 delayed: 0.3 does not exceed the 0.3 threshold.
	trains := make([]models.Train, 0, 10)
	for i := 0; i < 10; i++ {
		tr := train(fmt.Sprintf("t-%d", i), fmt.Sprintf("13%03d", i))
		if i < 3 {
			tr.DelayMin = 5
		}
		trains = append(trains, tr)
	}
	if got := Generate(trains, testNow); len(got) != 0 {
		t.Errorf("delay rate 0.3 produced %d suggestions, want 0", len(got))
	}

	// A fourth delayed train pushes the rate over the threshold.
	trains[3].DelayMin = 5
	got := Generate(trains, testNow)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	s := got[0]
	if s.ID != "system_suggestion_1" || s.TrainID != "SYSTEM" {
		t.Errorf("got ID %q TrainID %q, want system_suggestion_1 SYSTEM", s.ID, s.TrainID)
	}
	if s.Priority != models.PriorityHigh || s.Confidence != 0.90 {
		t.Errorf("got priority %q confidence %v, want HIGH 0.90", s.Priority, s.Confidence)
	}
}

func TestGenerate_MultipleRulesPerTrain(t *testing.T) {
	// One freight train that is delayed, high priority, in a busy section:
	// rules 1 and 3 both fire for it.
	trains := make([]models.Train, 0, 6)
	for i := 0; i < 5; i++ {
		trains = append(trains, train(fmt.Sprintf("t-%d", i), fmt.Sprintf("14%03d", i)))
	}
	busy := train("t-x", "54000")
	busy.Type = models.TypeFreight
	busy.Priority = models.PriorityHigh
	busy.DelayMin = 25
	trains = append(trains, busy)

	got := Generate(trains, testNow)

	var ids []string
	for _, s := range got {
		if s.TrainID == "54000" {
			ids = append(ids, s.ID)
		}
	}
	want := []string{"suggestion_t-x_1", "suggestion_t-x_3"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("rule order/IDs = %v, want %v", ids, want)
	}
}

func TestGenerate_IgnoresTerminalTrains(t *testing.T) {
	tr := train("t-1", "12301")
	tr.Priority = models.PriorityHigh
	tr.DelayMin = 20
	tr.Status = models.StatusCompleted

	if got := Generate([]models.Train{tr}, testNow); len(got) != 0 {
		t.Errorf("terminal train produced %d suggestions, want 0", len(got))
	}
}

func TestGenerate_EmptySnapshot(t *testing.T) {
	got := Generate(nil, testNow)
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	trains := []models.Train{}
	for i := 0; i < 8; i++ {
		tr := train(fmt.Sprintf("t-%d", i), fmt.Sprintf("15%03d", i))
		tr.DelayMin = i * 4
		if i%2 == 0 {
			tr.Priority = models.PriorityHigh
		}
		if i == 3 {
			tr.Type = models.TypeFreight
		}
		trains = append(trains, tr)
	}

	first := Generate(trains, testNow)
	second := Generate(trains, testNow)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated generation differs:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}
