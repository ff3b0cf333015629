package alert

import (
	"fmt"
	"strings"
	"time"

	"github.com/zulandar/trackside/internal/models"
	"github.com/zulandar/trackside/internal/section"
)

// Report holds the computed section state for one digest period.
type Report struct {
	GeneratedAt   time.Time
	Sections      []section.Classification
	ActiveTrains  int
	DelayedTrains int
	DelayRate     float64 // delayed fraction of active trains
}

// BuildReport computes a Report over the current train population.
func BuildReport(reg *section.Registry, trains []models.Train, now time.Time) *Report {
	report := &Report{
		GeneratedAt: now,
		Sections:    section.ClassifyAll(reg, trains),
	}

	for _, t := range trains {
		if !t.Active() {
			continue
		}
		report.ActiveTrains++
		if t.DelayMin > 0 {
			report.DelayedTrains++
		}
	}
	if report.ActiveTrains > 0 {
		report.DelayRate = float64(report.DelayedTrains) / float64(report.ActiveTrains)
	}

	return report
}

// Congested returns the congested subset of the report's sections.
func (r *Report) Congested() []section.Classification {
	var out []section.Classification
	for _, c := range r.Sections {
		if c.Status == section.StatusCongested {
			out = append(out, c)
		}
	}
	return out
}

// BuildDigest formats a report as a digest Message. Returns nil when no
// section is congested and the delay rate is at or under delayRateMax,
// suppressing quiet-period noise.
func BuildDigest(report *Report, delayRateMax float64) *Message {
	congested := report.Congested()
	delayAlert := report.DelayRate > delayRateMax

	if len(congested) == 0 && !delayAlert {
		return nil
	}

	var bodyLines []string
	bodyLines = append(bodyLines, fmt.Sprintf("**Generated**: %s",
		report.GeneratedAt.Format("Jan 2 15:04")))
	bodyLines = append(bodyLines, fmt.Sprintf("**Trains**: %d active, %d delayed",
		report.ActiveTrains, report.DelayedTrains))
	if delayAlert {
		bodyLines = append(bodyLines, fmt.Sprintf("**Delay Rate**: %.0f%% of active trains (above %.0f%% threshold)",
			report.DelayRate*100, delayRateMax*100))
	}

	if len(congested) > 0 {
		bodyLines = append(bodyLines, "")
		bodyLines = append(bodyLines, "**Congested Sections**:")
		for _, c := range congested {
			bodyLines = append(bodyLines, fmt.Sprintf("  %s: %d/%d trains (%d%% utilization)",
				c.Name, c.TrainCount, c.Capacity, c.Utilization))
		}
	}

	fields := []Field{
		{Name: "Active", Value: fmt.Sprintf("%d", report.ActiveTrains), Short: true},
		{Name: "Delayed", Value: fmt.Sprintf("%d", report.DelayedTrains), Short: true},
		{Name: "Congested", Value: fmt.Sprintf("%d", len(congested)), Short: true},
	}
	if delayAlert {
		fields = append(fields, Field{Name: "Delay Rate", Value: fmt.Sprintf("%.0f%%", report.DelayRate*100), Short: true})
	}

	severity := "info"
	color := ColorInfo
	if len(congested) > 0 {
		severity = "warning"
		color = ColorWarning
	}

	return &Message{
		Title:    "Section Congestion Digest",
		Body:     strings.Join(bodyLines, "\n"),
		Severity: severity,
		Color:    color,
		Fields:   fields,
	}
}
