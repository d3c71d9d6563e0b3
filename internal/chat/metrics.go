package chat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	repliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "portfolio",
			Name:      "chat_replies_total",
			Help:      "Assistant replies by resolver and outcome (ok or fallback).",
		},
		[]string{"resolver", "outcome"},
	)

	replyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "portfolio",
			Name:      "chat_resolve_seconds",
			Help:      "Time spent resolving one reply.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"resolver"},
	)
)
