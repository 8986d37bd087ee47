package cmd

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/canteen-sim/canteen-sim/sim/stats"
)

var (
	// Prometheus metrics exposed by the serve command. Gauges hold the
	// values of the most recently completed run.
	promMetrics = struct {
		runsTotal   prometheus.Counter
		totalServed prometheus.Gauge
		meanWait    prometheus.Gauge
		maxWait     prometheus.Gauge
		meanService prometheus.Gauge
		maxQueueLen prometheus.Gauge
		endClock    prometheus.Gauge
	}{
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canteen_runs_total",
			Help: "Number of simulation runs completed since startup",
		}),
		totalServed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "canteen_total_served",
			Help: "Entities served in the last run",
		}),
		meanWait: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "canteen_mean_wait_minutes",
			Help: "Mean main-queue wait in the last run (simulated minutes)",
		}),
		maxWait: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "canteen_max_wait_minutes",
			Help: "Longest main-queue wait in the last run (simulated minutes)",
		}),
		meanService: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "canteen_mean_service_minutes",
			Help: "Mean service duration in the last run (simulated minutes)",
		}),
		maxQueueLen: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "canteen_max_queue_length",
			Help: "Peak main-queue length in the last run",
		}),
		endClock: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "canteen_end_clock_minutes",
			Help: "Simulated minutes elapsed when the last run finished",
		}),
	}
)

func initPrometheusMetrics() {
	prometheus.MustRegister(
		promMetrics.runsTotal,
		promMetrics.totalServed,
		promMetrics.meanWait,
		promMetrics.maxWait,
		promMetrics.meanService,
		promMetrics.maxQueueLen,
		promMetrics.endClock,
	)
}

func updatePrometheusMetrics(summary *stats.Summary) {
	promMetrics.runsTotal.Inc()
	promMetrics.totalServed.Set(float64(summary.TotalServed))
	promMetrics.meanWait.Set(summary.MeanWait)
	promMetrics.maxWait.Set(summary.MaxWait)
	promMetrics.meanService.Set(summary.MeanService)
	promMetrics.maxQueueLen.Set(float64(summary.MaxQueueLength))
	promMetrics.endClock.Set(summary.EndClock)
}
