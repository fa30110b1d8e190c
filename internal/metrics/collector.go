// Package metrics exports Prometheus metrics for a blockpop engine.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/blockpop/internal/games/blockpop/core"
)

const namespace = "blockpop"

// Collector turns bus notifications and cascade reports into metrics.
// Metrics live in the collector's own registry so several collectors can
// coexist in one process.
//
// Metrics:
//   - blockpop_pops_total{category} counter
//   - blockpop_pops_finished_total{category} counter
//   - blockpop_replacements_total{kind} counter (kind is "replace" or "refill")
//   - blockpop_score_total counter
//   - blockpop_cascade_waves histogram
//   - blockpop_cascade_popped histogram
type Collector struct {
	registry *prometheus.Registry

	pops         *prometheus.CounterVec
	finished     *prometheus.CounterVec
	replacements *prometheus.CounterVec
	score        prometheus.Counter
	waves        prometheus.Histogram
	popped       prometheus.Histogram
}

// NewCollector creates a collector with a fresh registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		pops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pops_total",
			Help:      "Blocks that started popping.",
		}, []string{"category"}),
		finished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pops_finished_total",
			Help:      "Blocks whose pop completed.",
		}, []string{"category"}),
		replacements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replacements_total",
			Help:      "Blocks swapped in place or refilled after a pop.",
		}, []string{"kind"}),
		score: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_total",
			Help:      "Score gained through resolution passes.",
		}),
		waves: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cascade_waves",
			Help:      "Waves per resolution pass.",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12},
		}),
		popped: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cascade_popped",
			Help:      "Blocks popped per resolution pass.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 7),
		}),
	}
	c.registry.MustRegister(c.pops, c.finished, c.replacements, c.score, c.waves, c.popped)
	return c
}

// Registry exposes the collector's registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Attach subscribes to bus and returns a function that detaches again.
func (c *Collector) Attach(bus *core.Bus) func() {
	offs := []func(){
		bus.OnPopBegan(func(e core.PopEvent) {
			c.pops.WithLabelValues(e.Block.Descriptor().Category.String()).Inc()
		}),
		bus.OnPopFinished(func(e core.PopEvent) {
			c.finished.WithLabelValues(e.Block.Descriptor().Category.String()).Inc()
			if e.Replacement != nil {
				c.replacements.WithLabelValues("refill").Inc()
			}
		}),
		bus.OnReplaceRequested(func(core.ReplaceEvent) {
			c.replacements.WithLabelValues("replace").Inc()
		}),
	}
	return func() {
		for _, off := range offs {
			off()
		}
	}
}

// ObserveCascade records one resolution pass.
func (c *Collector) ObserveCascade(r core.CascadeReport) {
	if r.Waves == 0 {
		return
	}
	c.waves.Observe(float64(r.Waves))
	c.popped.Observe(float64(len(r.Popped)))
	if r.Score > 0 {
		c.score.Add(float64(r.Score))
	}
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve runs a /metrics endpoint on addr until ctx is cancelled.
func (c *Collector) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("metrics endpoint listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
