package contact

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var submissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "portfolio",
		Name:      "contact_submissions_total",
		Help:      "Contact form submissions by outcome (sent, failed, invalid).",
	},
	[]string{"outcome"},
)
