package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts storage outcomes. A nil *Metrics is valid and records nothing.
type Metrics struct {
	StoreWrites         *prometheus.CounterVec
	StoreSchemaDiscards *prometheus.CounterVec
	StoreDecodeFailures *prometheus.CounterVec
	CacheEntries        *prometheus.GaugeVec
}

// New registers the storage metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		StoreWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "udwallet_store_writes_total",
			Help: "Total number of whole-container writes by store and result",
		}, []string{"store", "result"}),
		StoreSchemaDiscards: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "udwallet_store_schema_discards_total",
			Help: "Total number of persisted collections discarded because of a schema version mismatch",
		}, []string{"store"}),
		StoreDecodeFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "udwallet_store_decode_failures_total",
			Help: "Total number of persisted values that could not be decoded",
		}, []string{"store"}),
		CacheEntries: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "udwallet_cache_entries",
			Help: "Number of entries in a cache after its last write",
		}, []string{"cache"}),
	}
}

// ObserveWrite counts one write of store, labelled by outcome.
func (m *Metrics) ObserveWrite(store string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.StoreWrites.WithLabelValues(store, result).Inc()
}

// IncrementSchemaDiscards counts a collection discarded for its schema version.
func (m *Metrics) IncrementSchemaDiscards(store string) {
	if m == nil {
		return
	}
	m.StoreSchemaDiscards.WithLabelValues(store).Inc()
}

// IncrementDecodeFailures counts a persisted value that failed to decode.
func (m *Metrics) IncrementDecodeFailures(store string) {
	if m == nil {
		return
	}
	m.StoreDecodeFailures.WithLabelValues(store).Inc()
}

// SetCacheEntries records the size of cache after a write.
func (m *Metrics) SetCacheEntries(cache string, count int) {
	if m == nil {
		return
	}
	m.CacheEntries.WithLabelValues(cache).Set(float64(count))
}
