package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricPrefix = "alarm_"

	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultFailed   = "failed"

	OpTrigger = "trigger"
	OpClear   = "clear"
)

var (
	registerOnce sync.Once

	readingsTotal      *prometheus.CounterVec
	eventsTotal        *prometheus.CounterVec
	sinkErrorsTotal    *prometheus.CounterVec
	publishErrorsTotal prometheus.Counter
)

// Init registers the collectors on the default registry. Safe to call many times.
func Init() {
	registerOnce.Do(func() {
		readingsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "readings_total",
				Help: "Sensor readings evaluated by result",
			},
			[]string{"result"},
		)
		eventsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "events_total",
				Help: "Alarm lifecycle events by type",
			},
			[]string{"event"},
		)
		sinkErrorsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "sink_errors_total",
				Help: "Alarm persistence failures by operation",
			},
			[]string{"op"},
		)
		publishErrorsTotal = prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "publish_errors_total",
				Help: "Alarm notifications that could not be delivered",
			},
		)

		prometheus.MustRegister(readingsTotal, eventsTotal, sinkErrorsTotal, publishErrorsTotal)
	})
}

func IncReading(result string) {
	Init()
	readingsTotal.WithLabelValues(result).Inc()
}

func IncAlarmEvent(event string) {
	Init()
	eventsTotal.WithLabelValues(event).Inc()
}

func IncSinkError(op string) {
	Init()
	sinkErrorsTotal.WithLabelValues(op).Inc()
}

func IncPublishError() {
	Init()
	publishErrorsTotal.Inc()
}

func Handler() http.Handler {
	Init()
	return promhttp.Handler()
}
