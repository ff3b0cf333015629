package section

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/zulandar/trackside/internal/config"
	"github.com/zulandar/trackside/internal/faults"
	"github.com/zulandar/trackside/internal/models"
)

func testRegistry() *Registry {
	return NewRegistry(config.DefaultSections())
}

func activeTrains(section string, n int) []models.Train {
	trains := make([]models.Train, n)
	for i := range trains {
		status := models.StatusScheduled
		if i%2 == 1 {
			status = models.StatusRunning
		}
		trains[i] = models.Train{
			ID:      fmt.Sprintf("t-%s-%d", section, i),
			Number:  fmt.Sprintf("12%03d", i),
			Section: section,
			Status:  status,
		}
	}
	return trains
}

func TestRegistry_Lookups(t *testing.T) {
	reg := testRegistry()

	if !reg.Has("Section A") {
		t.Error(`Has("Section A") = false, want true`)
	}
	if reg.Has("Section Z") {
		t.Error(`Has("Section Z") = true, want false`)
	}

	alt, ok := reg.Alternate("Section A")
	if !ok || alt != "Section B" {
		t.Errorf(`Alternate("Section A") = %q, %v; want "Section B", true`, alt, ok)
	}
	alt, ok = reg.Alternate("Section D")
	if !ok || alt != "Section C" {
		t.Errorf(`Alternate("Section D") = %q, %v; want "Section C", true`, alt, ok)
	}
	if _, ok := reg.Alternate("Section Z"); ok {
		t.Error(`Alternate("Section Z") ok = true, want false`)
	}

	names := make([]string, 0, 4)
	for _, s := range reg.Sections() {
		names = append(names, s.Name)
	}
	want := []string{"Section A", "Section B", "Section C", "Section D"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Sections() order = %v, want %v", names, want)
	}
}

func TestClassify_Utilization(t *testing.T) {
	reg := testRegistry()
	tests := []struct {
		name            string
		activeCount     int
		wantUtilization int
		wantStatus      string
	}{
		{"empty section", 0, 0, StatusActive},
		{"half full", 5, 50, StatusActive},
		{"at threshold", 8, 80, StatusActive},
		{"nine of ten congested", 9, 90, StatusCongested},
		{"full", 10, 100, StatusCongested},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trains := activeTrains("Section A", tt.activeCount)
			c, err := Classify(reg, "Section A", trains)
			if err != nil {
				t.Fatalf("Classify() error: %v", err)
			}
			if c.TrainCount != tt.activeCount {
				t.Errorf("TrainCount = %d, want %d", c.TrainCount, tt.activeCount)
			}
			if c.Utilization != tt.wantUtilization {
				t.Errorf("Utilization = %d, want %d", c.Utilization, tt.wantUtilization)
			}
			if c.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", c.Status, tt.wantStatus)
			}
			if c.Capacity != 10 {
				t.Errorf("Capacity = %d, want 10", c.Capacity)
			}
		})
	}
}

func TestClassify_IgnoresTerminalAndOtherSections(t *testing.T) {
	reg := testRegistry()
	trains := []models.Train{
		{ID: "t-1", Section: "Section A", Status: models.StatusScheduled},
		{ID: "t-2", Section: "Section A", Status: models.StatusRunning},
		{ID: "t-3", Section: "Section A", Status: models.StatusCompleted},
		{ID: "t-4", Section: "Section A", Status: models.StatusCancelled},
		{ID: "t-5", Section: "Section B", Status: models.StatusRunning},
	}

	c, err := Classify(reg, "Section A", trains)
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if c.TrainCount != 2 {
		t.Errorf("TrainCount = %d, want 2 (terminal and foreign trains excluded)", c.TrainCount)
	}
}

func TestClassify_OddCapacityRounding(t *testing.T) {
	reg := NewRegistry([]config.SectionConfig{
		{Name: "Branch", Capacity: 3, Alternate: "Yard"},
		{Name: "Yard", Capacity: 3, Alternate: "Branch"},
	})

	// 1/3 = 33.33 rounds to 33, 2/3 = 66.67 rounds to 67.
	c, err := Classify(reg, "Branch", activeTrains("Branch", 1))
	if err != nil {
		t.Fatalf("Classify() error: %v", err)
	}
	if c.Utilization != 33 {
		t.Errorf("Utilization = %d, want 33", c.Utilization)
	}
	c, _ = Classify(reg, "Branch", activeTrains("Branch", 2))
	if c.Utilization != 67 {
		t.Errorf("Utilization = %d, want 67", c.Utilization)
	}
}

func TestClassify_UnknownSection(t *testing.T) {
	reg := testRegistry()
	_, err := Classify(reg, "Section Z", nil)
	if err == nil {
		t.Fatal("expected error for unknown section")
	}
	if !faults.IsNotFound(err) {
		t.Errorf("error kind = %v, want NotFound", err)
	}
}

func TestClassifyAll_OrderAndIdempotence(t *testing.T) {
	reg := testRegistry()
	trains := append(activeTrains("Section B", 9), activeTrains("Section C", 2)...)

	first := ClassifyAll(reg, trains)
	if len(first) != 4 {
		t.Fatalf("len = %d, want 4", len(first))
	}
	if first[0].Name != "Section A" || first[3].Name != "Section D" {
		t.Errorf("order = %q..%q, want Section A..Section D", first[0].Name, first[3].Name)
	}
	if first[1].Status != StatusCongested {
		t.Errorf("Section B status = %q, want CONGESTED", first[1].Status)
	}

	// Same snapshot, identical output.
	second := ClassifyAll(reg, trains)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated classification differs:\nfirst  = %+v\nsecond = %+v", first, second)
	}
}
