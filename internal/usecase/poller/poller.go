package poller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/timebg/background-changer/internal/domain"
	"github.com/timebg/background-changer/internal/metrics"
	"github.com/timebg/background-changer/internal/port"
	"github.com/timebg/background-changer/internal/state"
)

const (
	defaultInterval     = time.Minute
	defaultChangeCheck  = time.Second
	defaultErrorBackoff = 5 * time.Second
	maxBackoff          = 60 * time.Second
)

var errReload = errors.New("reload image config")

type Options struct {
	Interval        time.Duration
	ChangeCheck     time.Duration
	ErrorBackoff    time.Duration
	Clock           port.Clock
	Metrics         *metrics.Poller
	MetricsTextfile string
}

// Poller re-resolves the active time range and applies its image whenever it
// differs from the one currently shown.
type Poller struct {
	store     port.ConfigStore
	wallpaper port.WallpaperSetter
	assets    port.AssetChecker
	state     *state.Runtime
	opts      Options

	ranges []domain.TimeRange
}

func New(store port.ConfigStore, wallpaper port.WallpaperSetter, assets port.AssetChecker, rt *state.Runtime, ranges []domain.TimeRange, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.ChangeCheck <= 0 {
		opts.ChangeCheck = defaultChangeCheck
	}
	if opts.ChangeCheck > opts.Interval {
		opts.ChangeCheck = opts.Interval
	}
	if opts.ErrorBackoff <= 0 {
		opts.ErrorBackoff = defaultErrorBackoff
	}
	if opts.Clock == nil {
		opts.Clock = port.SystemClock{}
	}
	if rt == nil {
		rt = &state.Runtime{}
	}
	return &Poller{
		store:     store,
		wallpaper: wallpaper,
		assets:    assets,
		state:     rt,
		opts:      opts,
		ranges:    append([]domain.TimeRange(nil), ranges...),
	}
}

// Start runs the loop in a new goroutine. The returned channel is closed when
// the loop exits.
func (p *Poller) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(ctx)
	}()
	return done
}

// Run ticks immediately, then on every interval, until ctx is cancelled or a
// stop is requested on the runtime state.
func (p *Poller) Run(ctx context.Context) {
	log.Printf("Poller started (interval %v, change check %v)", p.opts.Interval, p.opts.ChangeCheck)
	defer log.Printf("Poller stopped")

	for {
		if p.stopped(ctx) {
			return
		}
		started := time.Now()
		err := p.Tick(ctx)
		p.state.RecordTick(err)
		failures := p.state.Snapshot().ConsecutiveFailures
		p.opts.Metrics.ObserveTick(err, time.Since(started), failures)
		if werr := p.opts.Metrics.WriteTextfile(p.opts.MetricsTextfile); werr != nil {
			log.Printf("Metrics: %v", werr)
		}

		wait := p.opts.Interval
		if err != nil {
			wait = calculateBackoff(failures-1, p.opts.ErrorBackoff)
			log.Printf("Poller iteration failed (%d in a row), retrying in %v: %v", failures, wait, err)
		}
		if !p.sleep(ctx, wait) {
			return
		}
	}
}

// Tick runs one iteration: reload on external change, resolve, apply if the
// image differs from the current one.
func (p *Poller) Tick(ctx context.Context) error {
	if p.store.HasExternalChange(ctx) {
		if err := p.reload(ctx); err != nil {
			return err
		}
	}

	now := p.opts.Clock.Now()
	r := domain.ResolveAt(now, p.ranges)
	if r == nil {
		p.opts.Metrics.IncGap()
		log.Printf("No time range matches %s", now.Format("15:04:05"))
		return nil
	}
	if r.Image == "" || r.Image == p.state.CurrentAsset() {
		return nil
	}
	if !p.assets.Usable(r.Image) {
		log.Printf("Image for %s is not usable: %s", r.Label(), r.Image)
		return nil
	}
	if err := p.wallpaper.SetWallpaper(r.Image); err != nil {
		p.opts.Metrics.IncApplyError()
		return fmt.Errorf("apply %s: %w", r.Image, err)
	}
	p.state.SetApplied(*r)
	p.opts.Metrics.IncChange(now)
	log.Printf("Background changed to %s (%s)", r.Image, r.Label())
	return nil
}

func (p *Poller) reload(ctx context.Context) error {
	log.Printf("Image config changed on disk, reloading")
	ranges, ok := p.store.LoadImageConfig(ctx)
	if !ok {
		return errReload
	}
	if points, ok := p.store.LoadTimePoints(ctx); ok && !domain.DerivedFrom(ranges, points) {
		log.Printf("Reloaded image config does not match the time points document")
	}
	p.ranges = ranges
	p.state.RecordReload()
	p.opts.Metrics.IncReload()
	return nil
}

// sleep waits for d, checking for stop and external change every
// ChangeCheck. Returns false when the loop should exit.
func (p *Poller) sleep(ctx context.Context, d time.Duration) bool {
	deadline := time.NewTimer(d)
	defer deadline.Stop()
	check := time.NewTicker(p.opts.ChangeCheck)
	defer check.Stop()

	for {
		select {
		case <-ctx.Done():
			return false
		case <-p.state.Done():
			return false
		case <-deadline.C:
			return true
		case <-check.C:
			if p.store.HasExternalChange(ctx) {
				return true
			}
		}
	}
}

func (p *Poller) stopped(ctx context.Context) bool {
	return ctx.Err() != nil || p.state.StopRequested()
}

// calculateBackoff doubles base per consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return min(base, maxBackoff)
	}
	backoff := base
	for i := 0; i < failures; i++ {
		backoff *= 2
		if backoff >= maxBackoff {
			return maxBackoff
		}
	}
	return backoff
}
