package prometheus

import (
	"strconv"
	"time"
)

// Outcome label values.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// FingerprintMetrics holds the service's metrics.
type FingerprintMetrics struct {
	// Fingerprint layer
	CalculationsTotal   CounterVec
	CalculationDuration HistogramVec
	BatchSize           HistogramVec
	ValidationFailures  CounterVec
	CompatibilityChecks CounterVec
	ParseFailuresTotal  CounterVec
	SimilarityDuration  HistogramVec

	// Settings store
	StoreHitsTotal   CounterVec
	StoreMissesTotal CounterVec
	StoreOpDuration  HistogramVec

	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec
}

var (
	DefaultHTTPDurationBuckets        = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}
	DefaultCalculationDurationBuckets = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}
	DefaultStoreDurationBuckets       = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1}
	DefaultBatchSizeBuckets           = []float64{1, 5, 10, 50, 100, 500, 1000}
)

// NewFingerprintMetrics registers every metric with collector.
func NewFingerprintMetrics(collector MetricsCollector) *FingerprintMetrics {
	m := &FingerprintMetrics{}

	m.CalculationsTotal = collector.RegisterCounter("fingerprint_calculations_total", "Fingerprint calculations", "family", "status")
	m.CalculationDuration = collector.RegisterHistogram("fingerprint_calculation_duration_seconds", "Fingerprint calculation duration", DefaultCalculationDurationBuckets, "family")
	m.BatchSize = collector.RegisterHistogram("fingerprint_batch_size", "Molecules per batch calculation", DefaultBatchSizeBuckets, "family")
	m.ValidationFailures = collector.RegisterCounter("fingerprint_validation_failures_total", "Settings rejected by validation", "family")
	m.CompatibilityChecks = collector.RegisterCounter("fingerprint_compatibility_checks_total", "Settings compatibility checks", "result")
	m.ParseFailuresTotal = collector.RegisterCounter("molecule_parse_failures_total", "SMILES inputs that failed to parse")
	m.SimilarityDuration = collector.RegisterHistogram("fingerprint_similarity_duration_seconds", "Similarity computation duration", DefaultCalculationDurationBuckets, "family")

	m.StoreHitsTotal = collector.RegisterCounter("settings_store_hits_total", "Settings store lookups that found a descriptor")
	m.StoreMissesTotal = collector.RegisterCounter("settings_store_misses_total", "Settings store lookups that found nothing")
	m.StoreOpDuration = collector.RegisterHistogram("settings_store_operation_duration_seconds", "Settings store operation duration", DefaultStoreDurationBuckets, "operation")

	m.HTTPRequestsTotal = collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "path", "status_code")
	m.HTTPRequestDuration = collector.RegisterHistogram("http_request_duration_seconds", "HTTP request duration", DefaultHTTPDurationBuckets, "method", "path")
	m.HTTPActiveRequests = collector.RegisterGauge("http_active_requests", "Active HTTP requests", "method")

	return m
}

func status(err error) string {
	if err != nil {
		return StatusFailure
	}
	return StatusSuccess
}

// RecordCalculation counts one calculation and its latency.
func RecordCalculation(m *FingerprintMetrics, family string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.CalculationsTotal.WithLabelValues(family, status(err)).Inc()
	m.CalculationDuration.WithLabelValues(family).Observe(duration.Seconds())
}

func RecordBatch(m *FingerprintMetrics, family string, size int) {
	if m == nil {
		return
	}
	m.BatchSize.WithLabelValues(family).Observe(float64(size))
}

func RecordValidationFailure(m *FingerprintMetrics, family string) {
	if m == nil {
		return
	}
	m.ValidationFailures.WithLabelValues(family).Inc()
}

func RecordCompatibility(m *FingerprintMetrics, compatible bool) {
	if m == nil {
		return
	}
	result := "compatible"
	if !compatible {
		result = "incompatible"
	}
	m.CompatibilityChecks.WithLabelValues(result).Inc()
}

func RecordParseFailure(m *FingerprintMetrics) {
	if m == nil {
		return
	}
	m.ParseFailuresTotal.WithLabelValues().Inc()
}

func RecordSimilarity(m *FingerprintMetrics, family string, duration time.Duration) {
	if m == nil {
		return
	}
	m.SimilarityDuration.WithLabelValues(family).Observe(duration.Seconds())
}

// RecordStoreAccess counts a settings lookup as a hit or a miss.
func RecordStoreAccess(m *FingerprintMetrics, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.StoreHitsTotal.WithLabelValues().Inc()
	} else {
		m.StoreMissesTotal.WithLabelValues().Inc()
	}
}

func RecordStoreOp(m *FingerprintMetrics, operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.StoreOpDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func RecordHTTPRequest(m *FingerprintMetrics, method, path string, statusCode int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

//Personal.AI order the ending
