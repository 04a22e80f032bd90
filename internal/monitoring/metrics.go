// Package monitoring exposes prometheus metrics for long-running screener
// batches: how many symbols were simulated, how many trades the runs
// produced, and how long a batch took.
package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	symbolsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "screener_symbols_total",
			Help: "Symbols simulated, by outcome",
		},
		[]string{"status"},
	)

	tradesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "screener_trades_total",
			Help: "Closed trades produced across all simulations",
		},
	)

	batchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "screener_batch_duration_seconds",
			Help:    "Wall-clock duration of screener batches",
			Buckets: prometheus.DefBuckets,
		},
	)

	lastBatchSymbols = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "screener_last_batch_symbols",
			Help: "Symbol count of the most recent batch",
		},
	)
)

func init() {
	prometheus.MustRegister(symbolsTotal)
	prometheus.MustRegister(tradesTotal)
	prometheus.MustRegister(batchDuration)
	prometheus.MustRegister(lastBatchSymbols)
}

// RecordSymbol counts one finished simulation.
func RecordSymbol(err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	symbolsTotal.WithLabelValues(status).Inc()
}

// RecordTrades counts the closed trades of one simulation.
func RecordTrades(n int) {
	tradesTotal.Add(float64(n))
}

// RecordBatch records one batch's size and duration.
func RecordBatch(symbols int, d time.Duration) {
	lastBatchSymbols.Set(float64(symbols))
	batchDuration.Observe(d.Seconds())
}

// Handler returns the prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr in the background.
func Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
