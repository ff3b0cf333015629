package alert

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/zulandar/trackside/internal/config"
	"github.com/zulandar/trackside/internal/models"
	"github.com/zulandar/trackside/internal/section"
	"gorm.io/gorm"
)

// digestCronParser accepts standard 5-field expressions (minute, hour, dom, month, dow).
var digestCronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// Runner posts congestion digests on a cron schedule. It queries the
// store each tick, builds a report, and sends a digest when the report
// is not quiet.
type Runner struct {
	db           *gorm.DB
	sections     *section.Registry
	notifier     Notifier
	sched        cron.Schedule
	delayRateMax float64
}

// RunnerOpts holds parameters for creating a Runner.
type RunnerOpts struct {
	DB       *gorm.DB
	Sections *section.Registry
	Notifier Notifier
	Alerts   config.AlertsConfig
}

// NewRunner creates a digest Runner.
func NewRunner(opts RunnerOpts) (*Runner, error) {
	if opts.DB == nil {
		return nil, fmt.Errorf("alert: db is required")
	}
	if opts.Sections == nil {
		return nil, fmt.Errorf("alert: section registry is required")
	}
	if opts.Notifier == nil {
		return nil, fmt.Errorf("alert: notifier is required")
	}
	sched, err := digestCronParser.Parse(opts.Alerts.DigestCron)
	if err != nil {
		return nil, fmt.Errorf("alert: digest cron %q: %w", opts.Alerts.DigestCron, err)
	}
	return &Runner{
		db:           opts.DB,
		sections:     opts.Sections,
		notifier:     opts.Notifier,
		sched:        sched,
		delayRateMax: opts.Alerts.DelayRateAlert,
	}, nil
}

// Run blocks, firing a digest at each cron tick until the context is
// cancelled. On shutdown it closes the notifier.
func (r *Runner) Run(ctx context.Context) error {
	defer r.notifier.Close()

	timer := time.NewTimer(r.nextWait(time.Now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			r.fire(ctx)
			timer.Reset(r.nextWait(time.Now()))
		}
	}
}

// nextWait returns the wait until the schedule's next fire after now,
// clamped to zero.
func (r *Runner) nextWait(now time.Time) time.Duration {
	d := r.sched.Next(now).Sub(now)
	if d < 0 {
		return 0
	}
	return d
}

// fire builds and sends a single digest (best-effort).
func (r *Runner) fire(ctx context.Context) {
	var trains []models.Train
	if err := r.db.Find(&trains).Error; err != nil {
		log.Printf("alert: load trains: %v", err)
		return
	}

	msg := BuildDigest(BuildReport(r.sections, trains, time.Now()), r.delayRateMax)
	if msg == nil {
		// Quiet period — suppress digest.
		return
	}

	if err := r.notifier.Send(ctx, *msg); err != nil {
		log.Printf("alert: send digest: %v", err)
	}
}
