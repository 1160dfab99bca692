package models

import "time"

// SystemMetrics is a lightweight aggregate of runtime counters exposed on
// the health surface.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	UpstreamSearchCount      uint64    `json:"upstream_search_count"`
	AverageUpstreamLatencyMs float64   `json:"average_upstream_latency_ms"`
	UpstreamFailures         uint64    `json:"upstream_failures"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
