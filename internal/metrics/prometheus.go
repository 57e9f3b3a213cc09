package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	promhttp "github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tilecore"

// PrometheusRecorder implements Recorder with Prometheus collectors.
type PrometheusRecorder struct {
	reg             *prom.Registry
	commands        *prom.CounterVec
	commandDuration *prom.HistogramVec
	managed         prom.Gauge
	visible         prom.Gauge
	minimised       prom.Gauge
	sinkErrors      *prom.CounterVec
}

// NewPrometheusRecorder registers the engine collectors on reg. A nil reg
// gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		commands: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Engine commands by operation and result",
		}, []string{"op", "result"}),
		commandDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "command_duration_seconds",
			Help:      "Time spent executing engine commands, sinks included",
			Buckets:   prom.ExponentialBuckets(0.00005, 4, 8),
		}, []string{"op"}),
		managed: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "managed_windows",
			Help:      "Windows managed on the current workspace",
		}),
		visible: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "visible_windows",
			Help:      "Windows present in the current layout",
		}),
		minimised: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "minimised_windows",
			Help:      "Windows hidden in the minimised bucket",
		}),
		sinkErrors: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Failures pushing a layout to a sink",
		}, []string{"sink"}),
	}
	reg.MustRegister(pr.commands, pr.commandDuration, pr.managed, pr.visible, pr.minimised, pr.sinkErrors)
	return pr
}

func (p *PrometheusRecorder) ObserveCommand(op, result string, d time.Duration) {
	if p == nil {
		return
	}
	p.commands.WithLabelValues(op, result).Inc()
	p.commandDuration.WithLabelValues(op).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetWindows(managed, visible, minimised int) {
	if p == nil {
		return
	}
	p.managed.Set(float64(managed))
	p.visible.Set(float64(visible))
	p.minimised.Set(float64(minimised))
}

func (p *PrometheusRecorder) IncSinkError(sink string) {
	if p == nil {
		return
	}
	p.sinkErrors.WithLabelValues(sink).Inc()
}

// Registry returns the registry the collectors live in.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

// Handler serves the recorder's registry in the Prometheus exposition format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
