package sink

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	framesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "datalogger",
		Name:      "frames_total",
		Help:      "Frames emitted to the sink layer, by sensor class.",
	}, []string{"sensor"})

	writeFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "datalogger",
		Name:      "sink_write_failures_total",
		Help:      "Frame writes dropped by a sink.",
	}, []string{"sink"})

	flushFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "datalogger",
		Name:      "sink_flush_failures_total",
		Help:      "Failed storage flushes.",
	}, []string{"sink"})
)
