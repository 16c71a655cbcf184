package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ListDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cms_list_query_duration_seconds",
		Help:    "Latency of admin table list queries",
		Buckets: prometheus.DefBuckets,
	}, []string{"table"})

	ListTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_list_query_total",
		Help: "Total admin table list queries served",
	}, []string{"table", "outcome"})

	UploadBytes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cms_upload_bytes_total",
		Help: "Bytes written to the upload store",
	}, []string{"bucket"})

	initOnce sync.Once
)

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(ListDuration, ListTotal, UploadBytes)
	})
}

// ObserveList records one list query for table.
func ObserveList(table string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	ListDuration.WithLabelValues(table).Observe(time.Since(start).Seconds())
	ListTotal.WithLabelValues(table, outcome).Inc()
}

// Recorder feeds the entity services' list and upload measurements into the
// collectors above.
type Recorder struct{}

func (Recorder) ObserveList(table string, start time.Time, err error) {
	ObserveList(table, start, err)
}

func (Recorder) ObserveUpload(bucket string, size int64) {
	UploadBytes.WithLabelValues(bucket).Add(float64(size))
}
