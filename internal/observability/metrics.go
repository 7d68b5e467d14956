package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters.
type Metrics struct {
	mu              sync.Mutex
	requestCount    map[string]int64
	requestDuration map[string]time.Duration
	errorCount      map[string]int64
	submissions     map[string]int64
	statusUpdates   map[string]int64
}

// Snapshot is a point-in-time copy of every counter.
type Snapshot struct {
	Requests         map[string]int64 `json:"requests"`
	AvgLatencyMillis map[string]int64 `json:"avg_latency_ms"`
	Errors           map[string]int64 `json:"errors"`
	Submissions      map[string]int64 `json:"submissions_by_agency"`
	StatusUpdates    map[string]int64 `json:"status_updates_by_status"`
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:    make(map[string]int64),
		requestDuration: make(map[string]time.Duration),
		errorCount:      make(map[string]int64),
		submissions:     make(map[string]int64),
		statusUpdates:   make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
	m.requestDuration[key] += duration
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordSubmission counts a new complaint routed to agency.
func (m *Metrics) RecordSubmission(agency string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[agency]++
}

// RecordStatusUpdate counts an applied status update by its new status.
func (m *Metrics) RecordStatusUpdate(status string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statusUpdates[status]++
}

// Snapshot copies the counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	avg := make(map[string]int64, len(m.requestCount))
	for key, count := range m.requestCount {
		if count > 0 {
			avg[key] = (m.requestDuration[key] / time.Duration(count)).Milliseconds()
		}
	}
	return Snapshot{
		Requests:         copyCounts(m.requestCount),
		AvgLatencyMillis: avg,
		Errors:           copyCounts(m.errorCount),
		Submissions:      copyCounts(m.submissions),
		StatusUpdates:    copyCounts(m.statusUpdates),
	}
}

func copyCounts(src map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
