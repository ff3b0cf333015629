package kpi

import (
	"fmt"
	"testing"

	"github.com/zulandar/trackside/internal/models"
)

func train(status string, delay int) models.Train {
	return models.Train{Status: status, DelayMin: delay}
}

func TestCompute_Empty(t *testing.T) {
	s := Compute(nil, 0)
	want := Snapshot{}
	if s != want {
		t.Errorf("Compute(nil, 0) = %+v, want zero snapshot", s)
	}
}

func TestCompute_ZeroTrainsWithUsers(t *testing.T) {
	s := Compute(nil, 7)
	if s.TotalUsers != 7 {
		t.Errorf("TotalUsers = %d, want 7", s.TotalUsers)
	}
	if s.Throughput != 0 {
		t.Errorf("Throughput = %d, want 0 when no trains exist", s.Throughput)
	}
	if s.AverageDelay != 0 {
		t.Errorf("AverageDelay = %d, want 0 when no trains exist", s.AverageDelay)
	}
}

func TestCompute_Counts(t *testing.T) {
	trains := []models.Train{
		train(models.StatusScheduled, 0),
		train(models.StatusScheduled, 10),
		train(models.StatusRunning, 0),
		train(models.StatusRunning, 5),
		train(models.StatusCompleted, 20),
		train(models.StatusCancelled, 0),
	}

	s := Compute(trains, 12)
	if s.TotalTrains != 6 {
		t.Errorf("TotalTrains = %d, want 6", s.TotalTrains)
	}
	if s.ActiveTrains != 4 {
		t.Errorf("ActiveTrains = %d, want 4", s.ActiveTrains)
	}
	if s.DelayedTrains != 3 {
		t.Errorf("DelayedTrains = %d, want 3", s.DelayedTrains)
	}
	if s.TotalUsers != 12 {
		t.Errorf("TotalUsers = %d, want 12", s.TotalUsers)
	}
}

func TestCompute_AverageDelay(t *testing.T) {
	tests := []struct {
		name   string
		delays []int
		want   int
	}{
		{"single delayed", []int{10}, 10},
		{"mean over delayed only", []int{10, 0, 0, 20}, 15},
		{"rounds half up", []int{5, 10}, 8}, // 7.5 → 8
		{"rounds to nearest", []int{10, 11, 11}, 11}, // 10.67 → 11
		{"no delays", []int{0, 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			trains := make([]models.Train, len(tt.delays))
			for i, d := range tt.delays {
				trains[i] = train(models.StatusScheduled, d)
			}
			s := Compute(trains, 0)
			if s.AverageDelay != tt.want {
				t.Errorf("AverageDelay = %d, want %d", s.AverageDelay, tt.want)
			}
		})
	}
}

func TestCompute_Throughput(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		other     int
		want      int
	}{
		{"none completed", 0, 4, 0},
		{"all completed", 3, 0, 100},
		{"one of three", 1, 2, 33},
		{"two of three", 2, 1, 67},
		{"one of eight", 1, 7, 13}, // 12.5 → 13
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var trains []models.Train
			for i := 0; i < tt.completed; i++ {
				trains = append(trains, train(models.StatusCompleted, 0))
			}
			for i := 0; i < tt.other; i++ {
				trains = append(trains, train(models.StatusScheduled, 0))
			}
			s := Compute(trains, 0)
			if s.Throughput != tt.want {
				t.Errorf("Throughput = %d, want %d", s.Throughput, tt.want)
			}
		})
	}
}

func TestCompute_Deterministic(t *testing.T) {
	trains := make([]models.Train, 0, 20)
	for i := 0; i < 20; i++ {
		st := models.StatusScheduled
		switch i % 4 {
		case 1:
			st = models.StatusRunning
		case 2:
			st = models.StatusCompleted
		case 3:
			st = models.StatusCancelled
		}
		tr := train(st, i%7)
		tr.Number = fmt.Sprintf("16%03d", i)
		trains = append(trains, tr)
	}

	first := Compute(trains, 9)
	second := Compute(trains, 9)
	if first != second {
		t.Errorf("repeated computation differs: %+v vs %+v", first, second)
	}
}
