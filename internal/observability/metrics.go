package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danmuck/netstring/internal/netstring"
)

var (
	registerOnce sync.Once

	codecFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netstring",
			Subsystem: "codec",
			Name:      "frames_total",
			Help:      "Frames decoded or encoded.",
		},
		[]string{"op"},
	)
	codecBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netstring",
			Subsystem: "codec",
			Name:      "payload_bytes_total",
			Help:      "Payload bytes decoded or encoded.",
		},
		[]string{"op"},
	)
	codecDecodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netstring",
			Subsystem: "codec",
			Name:      "decode_errors_total",
			Help:      "Fatal decode errors by kind.",
		},
		[]string{"kind"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netstring",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "netstring",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
	transportConns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "netstring",
			Subsystem: "transport",
			Name:      "connections_total",
			Help:      "Accepted connections by close reason.",
		},
		[]string{"reason"},
	)
)

const (
	opDecode = "decode"
	opEncode = "encode"
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(codecFrames, codecBytes, codecDecodeErrors, transportConns, httpRequests, httpDuration)
	})
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordDecoded(payloadLen int) {
	RegisterMetrics()
	codecFrames.WithLabelValues(opDecode).Inc()
	codecBytes.WithLabelValues(opDecode).Add(float64(payloadLen))
}

func RecordEncoded(payloadLen int) {
	RegisterMetrics()
	codecFrames.WithLabelValues(opEncode).Inc()
	codecBytes.WithLabelValues(opEncode).Add(float64(payloadLen))
}

func RecordDecodeError(err error) {
	RegisterMetrics()
	codecDecodeErrors.WithLabelValues(netstring.Kind(err)).Inc()
}

// RecordConnClosed counts a finished connection. reason is "eof",
// a netstring error kind, or "io".
func RecordConnClosed(reason string) {
	RegisterMetrics()
	transportConns.WithLabelValues(reason).Inc()
}

// Metrics is a netstring.Observer backed by the process registry.
type Metrics struct{}

func (Metrics) FrameDecoded(n int)     { RecordDecoded(n) }
func (Metrics) FrameEncoded(n int)     { RecordEncoded(n) }
func (Metrics) DecodeFailed(err error) { RecordDecodeError(err) }

var _ netstring.Observer = Metrics{}
