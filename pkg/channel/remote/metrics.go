package remote

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics counts transfers executed by a Server.
type Metrics struct {
	Transfers *prometheus.CounterVec // labels: op, result=ok|short|error
	Bytes     *prometheus.CounterVec // labels: op
	Clients   prometheus.Gauge
}

// NewRegistry creates a registry with the Go and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// MetricsHandler serves the metrics in reg.
func MetricsHandler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}

// NewMetrics registers transfer metrics in reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_transfers_total",
			Help: "Channel transfers by op and result.",
		}, []string{"op", "result"}),
		Bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bridge_transfer_bytes_total",
			Help: "Bytes moved over the channel by op.",
		}, []string{"op"}),
		Clients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bridge_clients",
			Help: "Currently connected clients.",
		}),
	}
	reg.MustRegister(m.Transfers, m.Bytes, m.Clients)
	return m
}

func (m *Metrics) observe(req *Request, rep *Reply) {
	if m == nil || req.Op == OpStatus {
		return
	}
	want := len(req.Data)
	if req.Op == OpRead {
		want = req.Length
	}
	result := "ok"
	switch {
	case rep.Error != "" && rep.Count == 0:
		result = "error"
	case rep.Count != want:
		result = "short"
	}
	op := req.Op.String()
	m.Transfers.WithLabelValues(op, result).Inc()
	m.Bytes.WithLabelValues(op).Add(float64(rep.Count))
}

func (m *Metrics) connected(delta float64) {
	if m != nil {
		m.Clients.Add(delta)
	}
}
