package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeAccepted   = "accepted"
	OutcomeIncomplete = "incomplete"
	OutcomeNoQR       = "qr_missing"
	OutcomeBadPhoto   = "invalid_photo"
	OutcomeError      = "error"
)

var (
	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "idcard",
		Name:      "submissions_total",
		Help:      "Generate requests by outcome.",
	}, []string{"outcome"})

	RenderSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "idcard",
		Name:      "render_seconds",
		Help:      "Time spent compositing and encoding a card.",
		Buckets:   prometheus.DefBuckets,
	})
)
