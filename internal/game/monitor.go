package game

import (
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"
)

const (
	monitorSampleCap      = 1000
	monitorActiveTimeout  = 300 * time.Second
	monitorReportInterval = 60 * time.Second
)

// Monitor collects operational counters: request and error totals,
// response-time percentiles over a rolling sample window, and which users
// were active in the last five minutes.
type Monitor struct {
	mu         sync.Mutex
	started    time.Time
	requests   int64
	messages   int64
	commands   int64
	errors     int64
	samples    []time.Duration
	lastActive map[string]time.Time
	now        func() time.Time
}

func NewMonitor() *Monitor {
	return &Monitor{
		started:    time.Now(),
		lastActive: make(map[string]time.Time),
		now:        time.Now,
	}
}

// Request records one handled request and its duration.
func (m *Monitor) Request(elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++
	m.samples = append(m.samples, elapsed)
	if len(m.samples) > monitorSampleCap {
		m.samples = m.samples[len(m.samples)-monitorSampleCap:]
	}
}

// Message records one chat message.
func (m *Monitor) Message() {
	m.mu.Lock()
	m.messages++
	m.mu.Unlock()
}

// Command records one dispatched command.
func (m *Monitor) Command() {
	m.mu.Lock()
	m.commands++
	m.mu.Unlock()
}

// Error records one failed request.
func (m *Monitor) Error() {
	m.mu.Lock()
	m.errors++
	m.mu.Unlock()
}

// Touch marks a user as active now.
func (m *Monitor) Touch(user string) {
	if user == "" {
		return
	}
	m.mu.Lock()
	m.lastActive[user] = m.now()
	m.mu.Unlock()
}

func (m *Monitor) activeLocked() int {
	cutoff := m.now().Add(-monitorActiveTimeout)
	n := 0
	for user, seen := range m.lastActive {
		if seen.Before(cutoff) {
			delete(m.lastActive, user)
			continue
		}
		n++
	}
	return n
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

// MonitorSnapshot is the JSON shape served by the stats endpoint.
type MonitorSnapshot struct {
	UptimeSeconds  int64   `json:"uptime_seconds"`
	Requests       int64   `json:"requests"`
	Messages       int64   `json:"messages"`
	Commands       int64   `json:"commands"`
	Errors         int64   `json:"errors"`
	ActiveUsers    int     `json:"active_users"`
	ResponseP50Ms  float64 `json:"response_p50_ms"`
	ResponseP95Ms  float64 `json:"response_p95_ms"`
	ResponseP99Ms  float64 `json:"response_p99_ms"`
	GoroutineCount int     `json:"goroutines"`
	HeapAllocBytes uint64  `json:"heap_alloc_bytes"`
}

// Snapshot returns the current counters.
func (m *Monitor) Snapshot() MonitorSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	sorted := make([]time.Duration, len(m.samples))
	copy(sorted, m.samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return MonitorSnapshot{
		UptimeSeconds:  int64(m.now().Sub(m.started).Seconds()),
		Requests:       m.requests,
		Messages:       m.messages,
		Commands:       m.commands,
		Errors:         m.errors,
		ActiveUsers:    m.activeLocked(),
		ResponseP50Ms:  float64(percentile(sorted, 0.50)) / float64(time.Millisecond),
		ResponseP95Ms:  float64(percentile(sorted, 0.95)) / float64(time.Millisecond),
		ResponseP99Ms:  float64(percentile(sorted, 0.99)) / float64(time.Millisecond),
		GoroutineCount: runtime.NumGoroutine(),
		HeapAllocBytes: mem.HeapAlloc,
	}
}

// Report formats a one-line summary for the operational log.
func (m *Monitor) Report() string {
	snap := m.Snapshot()
	return fmt.Sprintf(
		"up %ds: %d requests (%d errors), %d messages, %d commands, %d active users, p95 %.1fms",
		snap.UptimeSeconds, snap.Requests, snap.Errors, snap.Messages,
		snap.Commands, snap.ActiveUsers, snap.ResponseP95Ms,
	)
}

// ReportLoop prints a report every interval until stop is closed.
func (m *Monitor) ReportLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(monitorReportInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			fmt.Println(m.Report())
		case <-stop:
			return
		}
	}
}
