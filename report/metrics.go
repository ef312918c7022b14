package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oadr",
		Subsystem: "report",
		Name:      "sent_total",
		Help:      "Update-report messages delivered to the VTN.",
	})
	renderFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oadr",
		Subsystem: "report",
		Name:      "render_failures_total",
		Help:      "Reports that could not be rendered to schema-conformant XML.",
	})
	pushFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oadr",
		Subsystem: "report",
		Name:      "push_failures_total",
		Help:      "Report deliveries rejected or unreachable at the VTN.",
	})
	samplesCollected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oadr",
		Subsystem: "report",
		Name:      "samples_collected_total",
		Help:      "Measurement samples read from data sources.",
	})
	sampleErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "oadr",
		Subsystem: "report",
		Name:      "sample_errors_total",
		Help:      "Data source reads that returned an error.",
	})
)
