package game

import (
	"testing"
	"time"
)

func newTestShield() (*Shield, *time.Time) {
	shield := NewShield()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	shield.now = func() time.Time { return now }
	return shield, &now
}

func TestShieldPerSecondLimit(t *testing.T) {
	shield, now := newTestShield()
	for i := 0; i < shieldMaxPerSecond; i++ {
		if ok, _ := shield.Check("1.2.3.4", "poll"); !ok {
			t.Fatalf("request %d blocked below the limit", i)
		}
	}
	ok, reason := shield.Check("1.2.3.4", "poll")
	if ok || reason == "" {
		t.Fatalf("expected block past the per-second limit")
	}
	// Other addresses are unaffected.
	if ok, _ := shield.Check("5.6.7.8", "poll"); !ok {
		t.Fatalf("unrelated address was blocked")
	}
	// Still blocked while the soft block holds, clear afterwards.
	*now = now.Add(10 * time.Second)
	if ok, _ := shield.Check("1.2.3.4", "poll"); ok {
		t.Fatalf("expected the soft block to persist")
	}
	*now = now.Add(shieldSoftBlock)
	if ok, _ := shield.Check("1.2.3.4", "poll"); !ok {
		t.Fatalf("expected the block to expire")
	}
}

func TestShieldRegisterWindow(t *testing.T) {
	shield, now := newTestShield()
	for i := 0; i < shieldMaxRegisterPerHour; i++ {
		if ok, _ := shield.Check("1.2.3.4", "register"); !ok {
			t.Fatalf("register %d blocked below the limit", i)
		}
		*now = now.Add(2 * time.Second)
	}
	if ok, _ := shield.Check("1.2.3.4", "register"); ok {
		t.Fatalf("expected register rate limit after %d attempts", shieldMaxRegisterPerHour)
	}
}

func TestShieldLists(t *testing.T) {
	shield, _ := newTestShield()
	shield.Blacklist("bad.addr")
	if ok, reason := shield.Check("bad.addr", "poll"); ok || reason == "" {
		t.Fatalf("blacklisted address must be refused")
	}

	shield.Whitelist("good.addr")
	for i := 0; i < shieldMaxPerSecond*3; i++ {
		if ok, _ := shield.Check("good.addr", "poll"); !ok {
			t.Fatalf("whitelisted address was limited")
		}
	}

	stats := shield.Stats()
	if stats.Blacklisted != 1 || stats.Allowed != int64(shieldMaxPerSecond*3) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestShieldEscalatesRepeatOffenders(t *testing.T) {
	shield, now := newTestShield()
	flood := func() {
		for i := 0; i <= shieldMaxPerSecond; i++ {
			shield.Check("1.2.3.4", "poll")
		}
	}
	flood() // violation 1: soft block
	*now = now.Add(shieldSoftBlock + time.Second)
	flood() // violation 2: still soft
	*now = now.Add(shieldSoftBlock + time.Second)
	flood() // violation 3: hard block
	*now = now.Add(shieldSoftBlock + time.Second)
	if ok, _ := shield.Check("1.2.3.4", "poll"); ok {
		t.Fatalf("expected a hard block outlasting the soft duration")
	}
	stats := shield.Stats()
	if stats.Violations < 3 {
		t.Fatalf("violations = %d, want at least 3", stats.Violations)
	}
}
