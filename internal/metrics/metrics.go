// Package metrics holds the process-wide Prometheus collectors for the
// streaming fabric and hybrid transport, scraped via /metrics on the gin
// router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BackpressurePending reports the in-flight publish count across all
	// jobs, set by the streaming fabric's backpressure governor.
	BackpressurePending = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "qcore_backpressure_pending",
		Help: "Number of in-flight PublishMeasurement calls awaiting backpressure release.",
	})

	// ReplayDroppedTotal counts replay-buffer entries evicted to stay
	// within a job's bounded history.
	ReplayDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qcore_replay_dropped_total",
		Help: "Total replay-buffer entries evicted across all jobs.",
	})

	// TransportLossRate reports the hybrid transport's most recently
	// observed datagram loss rate.
	TransportLossRate = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "qcore_transport_loss_rate",
		Help: "Most recently observed datagram channel loss rate.",
	})

	// JobsByStatus tracks job counts by lifecycle status (active,
	// completed).
	JobsByStatus = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "qcore_jobs_by_status",
		Help: "Number of streaming-fabric jobs by lifecycle status.",
	}, []string{"status"})
)
