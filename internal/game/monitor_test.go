package game

import (
	"strings"
	"testing"
	"time"
)

func TestMonitorCountersAndPercentiles(t *testing.T) {
	monitor := NewMonitor()
	for i := 1; i <= 100; i++ {
		monitor.Request(time.Duration(i) * time.Millisecond)
	}
	monitor.Message()
	monitor.Command()
	monitor.Error()

	snap := monitor.Snapshot()
	if snap.Requests != 100 || snap.Messages != 1 || snap.Commands != 1 || snap.Errors != 1 {
		t.Fatalf("unexpected counters: %+v", snap)
	}
	if snap.ResponseP50Ms < 49 || snap.ResponseP50Ms > 52 {
		t.Fatalf("p50 = %v, want about 50ms", snap.ResponseP50Ms)
	}
	if snap.ResponseP95Ms < 94 || snap.ResponseP95Ms > 97 {
		t.Fatalf("p95 = %v, want about 95ms", snap.ResponseP95Ms)
	}
	if snap.ResponseP99Ms < snap.ResponseP95Ms {
		t.Fatalf("p99 below p95: %+v", snap)
	}
}

func TestMonitorActiveUserTimeout(t *testing.T) {
	monitor := NewMonitor()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	monitor.now = func() time.Time { return now }

	monitor.Touch("alice")
	monitor.Touch("bob")
	if snap := monitor.Snapshot(); snap.ActiveUsers != 2 {
		t.Fatalf("active users = %d, want 2", snap.ActiveUsers)
	}

	now = now.Add(monitorActiveTimeout + time.Second)
	monitor.Touch("alice")
	if snap := monitor.Snapshot(); snap.ActiveUsers != 1 {
		t.Fatalf("active users = %d, want 1 after timeout", snap.ActiveUsers)
	}
}

func TestMonitorReport(t *testing.T) {
	monitor := NewMonitor()
	monitor.Request(5 * time.Millisecond)
	report := monitor.Report()
	if !strings.Contains(report, "1 requests") {
		t.Fatalf("report missing request count: %q", report)
	}
}
