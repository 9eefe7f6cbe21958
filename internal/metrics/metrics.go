package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "timebg_"

	resultSuccess = "success"
	resultError   = "error"
)

// Poller counts what the background poller does. A nil *Poller is valid and
// records nothing.
type Poller struct {
	registry *prometheus.Registry

	ticks        *prometheus.CounterVec
	tickLatency  prometheus.Histogram
	changes      prometheus.Counter
	applyErrors  prometheus.Counter
	gaps         prometheus.Counter
	reloads      prometheus.Counter
	lastChange   prometheus.Gauge
	consecFailed prometheus.Gauge
}

func NewPoller() *Poller {
	p := &Poller{
		registry: prometheus.NewRegistry(),
		ticks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "poller_ticks_total",
				Help: "Total poller iterations by result",
			},
			[]string{"result"},
		),
		tickLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "poller_tick_latency_seconds",
				Help:    "Poller iteration latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		changes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "wallpaper_changes_total",
			Help: "Total successful wallpaper changes",
		}),
		applyErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "wallpaper_apply_errors_total",
			Help: "Total failed wallpaper changes",
		}),
		gaps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "resolution_gaps_total",
			Help: "Total iterations where no time range matched",
		}),
		reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricPrefix + "config_reloads_total",
			Help: "Total reloads after an external configuration change",
		}),
		lastChange: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "last_change_timestamp_seconds",
			Help: "Unix time of the last successful wallpaper change",
		}),
		consecFailed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricPrefix + "poller_consecutive_failures",
			Help: "Current streak of failed poller iterations",
		}),
	}
	p.registry.MustRegister(
		p.ticks,
		p.tickLatency,
		p.changes,
		p.applyErrors,
		p.gaps,
		p.reloads,
		p.lastChange,
		p.consecFailed,
	)
	return p
}

// ObserveTick records one iteration and its duration.
func (p *Poller) ObserveTick(err error, duration time.Duration, consecutiveFailures int) {
	if p == nil {
		return
	}
	result := resultSuccess
	if err != nil {
		result = resultError
	}
	p.ticks.WithLabelValues(result).Inc()
	p.tickLatency.Observe(duration.Seconds())
	p.consecFailed.Set(float64(consecutiveFailures))
}

func (p *Poller) IncChange(at time.Time) {
	if p == nil {
		return
	}
	p.changes.Inc()
	p.lastChange.Set(float64(at.Unix()))
}

func (p *Poller) IncApplyError() {
	if p != nil {
		p.applyErrors.Inc()
	}
}

func (p *Poller) IncGap() {
	if p != nil {
		p.gaps.Inc()
	}
}

func (p *Poller) IncReload() {
	if p != nil {
		p.reloads.Inc()
	}
}

// Registry exposes the underlying registry for tests and exporters.
func (p *Poller) Registry() *prometheus.Registry {
	if p == nil {
		return nil
	}
	return p.registry
}

// WriteTextfile writes the current values in the node_exporter textfile format.
func (p *Poller) WriteTextfile(path string) error {
	if p == nil || path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("metrics dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
