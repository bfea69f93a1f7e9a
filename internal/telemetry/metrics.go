package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метрики пайплайна.
//
// Долгие запуски (часы на flow cell) наблюдаются через /metrics:
// сколько образцов в работе, какие стадии сколько занимают,
// чем завершаются образцы.
var (
	// SamplesInFlight — количество образцов, выполняющихся прямо сейчас.
	// Не превышает потолок пула воркеров.
	SamplesInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "metatrimx_samples_in_flight",
		Help: "Number of sample pipelines currently executing.",
	})

	// SampleOutcomes — счётчик завершённых образцов по статусу.
	SampleOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metatrimx_sample_outcomes_total",
		Help: "Completed sample pipelines by terminal status.",
	}, []string{"status"})

	// StageDuration — гистограмма длительности стадий по имени стадии.
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "metatrimx_stage_duration_seconds",
		Help:    "Wall time of external tool invocations by stage.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 14),
	}, []string{"stage"})

	// StageFailures — счётчик упавших стадий по имени стадии.
	StageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "metatrimx_stage_failures_total",
		Help: "Stage gate failures by stage name.",
	}, []string{"stage"})
)

// NewMetricsMux возвращает HTTP mux с /metrics и /healthz.
// Подключается в cmd при указании --metrics-addr.
func NewMetricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}
