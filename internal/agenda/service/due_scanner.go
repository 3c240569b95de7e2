package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tenrocafes/agenda/internal/agenda/datefmt"
	"github.com/tenrocafes/agenda/internal/agenda/recurrence"
	"github.com/tenrocafes/agenda/internal/agenda/store"
)

// DueScanner periodically backfills missing next-due dates (legacy rows
// predate the derived column) and logs the visits coming due within the
// lookahead window. It runs as a background goroutine and is safe to stop
// via its context or the Stop method.
//
// A lookahead of 0 disables the scanner entirely.
type DueScanner struct {
	records   store.RecordStore
	lookahead time.Duration
	interval  time.Duration
	log       zerolog.Logger
	cancel    context.CancelFunc
	done      chan struct{}
}

// ScannerConfig holds the parameters for NewDueScanner.
type ScannerConfig struct {
	// LookaheadDays is how far ahead to report upcoming visits.
	// 0 disables the scanner.
	LookaheadDays int

	// IntervalHours is how often the scanner runs. Defaults to 6.
	IntervalHours int
}

// NewDueScanner creates a scanner but does not start it.
func NewDueScanner(records store.RecordStore, cfg ScannerConfig, log zerolog.Logger) *DueScanner {
	interval := time.Duration(cfg.IntervalHours) * time.Hour
	if interval <= 0 {
		interval = 6 * time.Hour
	}

	return &DueScanner{
		records:   records,
		lookahead: time.Duration(cfg.LookaheadDays) * 24 * time.Hour,
		interval:  interval,
		log:       log,
		done:      make(chan struct{}),
	}
}

// Start begins the background loop: an immediate scan on startup, then one
// per interval, until ctx is cancelled or Stop is called.
func (d *DueScanner) Start(ctx context.Context) {
	if d.lookahead <= 0 {
		d.log.Info().Msg("due scanner disabled (lookahead=0)")
		close(d.done)
		return
	}

	ctx, d.cancel = context.WithCancel(ctx)

	go d.loop(ctx)

	d.log.Info().
		Int("lookahead_days", int(d.lookahead.Hours()/24)).
		Int("interval_hours", int(d.interval.Hours())).
		Msg("due scanner started")
}

// Stop signals the scanner to exit and waits for it to finish. Calling Stop
// on a scanner that was never started is a no-op.
func (d *DueScanner) Stop() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	<-d.done
}

func (d *DueScanner) loop(ctx context.Context) {
	defer close(d.done)

	d.scan(ctx)

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.scan(ctx)
		}
	}
}

// Scan runs one pass: persist any backfilled next-due dates and log how
// many records fall due inside the lookahead window. Exported so one-shot
// callers (and tests) can run it without the loop.
func (d *DueScanner) Scan(ctx context.Context) error {
	records, err := d.records.LoadAll(ctx)
	if err != nil {
		return err
	}

	changed := false
	for i := range records {
		if records[i].NextDue != "" {
			continue
		}
		date := datefmt.NormalizeDate(records[i].ServiceDate)
		clock := datefmt.NormalizeTime(records[i].ServiceTime)
		if due := recurrence.NextDue(date, clock, records[i].Recurrence); due != "" {
			records[i].ServiceDate = date
			records[i].ServiceTime = clock
			records[i].NextDue = due
			changed = true
		}
	}
	if changed {
		if err := d.records.SaveAll(ctx, records); err != nil {
			return err
		}
	}

	now := time.Now()
	horizon := now.Add(d.lookahead)
	upcoming := 0
	for _, r := range records {
		due, err := datefmt.ParseDate(r.NextDue)
		if err != nil {
			continue
		}
		if !due.Before(now.Truncate(24*time.Hour)) && !due.After(horizon) {
			upcoming++
			d.log.Debug().
				Str("store", r.Store).
				Str("supplier", r.Supplier).
				Str("due", r.NextDue).
				Msg("visit due soon")
		}
	}
	if upcoming > 0 {
		d.log.Info().Int("count", upcoming).Msg("visits due within lookahead")
	}
	return nil
}

func (d *DueScanner) scan(ctx context.Context) {
	if err := d.Scan(ctx); err != nil {
		d.log.Error().Err(err).Msg("due scan failed")
	}
}
