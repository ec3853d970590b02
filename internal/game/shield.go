package game

import (
	"sync"
	"time"
)

// Shield rate-limits clients by address. Limits apply per second and per
// minute overall, with tighter per-endpoint windows for the chatty paths.
// Repeat offenders are blocked for escalating durations.
const (
	shieldMaxPerSecond       = 10
	shieldMaxPerMinute       = 300
	shieldMaxPollPerMinute   = 200
	shieldMaxSendPerMinute   = 100
	shieldMaxRegisterPerHour = 5

	shieldSoftBlock = 60 * time.Second
	shieldHardBlock = 600 * time.Second
	shieldPermaBan  = 86400 * time.Second

	shieldHardAfter  = 3
	shieldPermaAfter = 10
)

type shieldClient struct {
	requests   []time.Time
	byEndpoint map[string][]time.Time
	blockedTo  time.Time
	violations int
}

// ShieldStats counts what the shield has seen since startup.
type ShieldStats struct {
	Allowed     int64 `json:"allowed"`
	Blocked     int64 `json:"blocked"`
	Violations  int64 `json:"violations"`
	Blacklisted int64 `json:"blacklisted"`
}

// Shield tracks request rates per client address.
type Shield struct {
	mu        sync.Mutex
	clients   map[string]*shieldClient
	blacklist map[string]bool
	whitelist map[string]bool
	stats     ShieldStats
	now       func() time.Time
}

func NewShield() *Shield {
	return &Shield{
		clients:   make(map[string]*shieldClient),
		blacklist: make(map[string]bool),
		whitelist: make(map[string]bool),
		now:       time.Now,
	}
}

// Blacklist permanently refuses an address.
func (s *Shield) Blacklist(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blacklist[addr] = true
}

// Whitelist exempts an address from every limit.
func (s *Shield) Whitelist(addr string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.whitelist[addr] = true
}

func prune(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(stamps) && stamps[i].Before(cutoff) {
		i++
	}
	return stamps[i:]
}

func countSince(stamps []time.Time, cutoff time.Time) int {
	n := 0
	for i := len(stamps) - 1; i >= 0; i-- {
		if stamps[i].Before(cutoff) {
			break
		}
		n++
	}
	return n
}

func endpointLimit(endpoint string) (int, time.Duration) {
	switch endpoint {
	case "poll":
		return shieldMaxPollPerMinute, time.Minute
	case "send":
		return shieldMaxSendPerMinute, time.Minute
	case "register":
		return shieldMaxRegisterPerHour, time.Hour
	}
	return 0, 0
}

// Check records one request from addr against endpoint and reports whether
// it may proceed. The reason is suitable for a client-facing error.
func (s *Shield) Check(addr, endpoint string) (bool, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.whitelist[addr] {
		s.stats.Allowed++
		return true, ""
	}
	if s.blacklist[addr] {
		s.stats.Blacklisted++
		return false, "You are banned from this server."
	}

	now := s.now()
	client, ok := s.clients[addr]
	if !ok {
		client = &shieldClient{byEndpoint: make(map[string][]time.Time)}
		s.clients[addr] = client
	}

	if now.Before(client.blockedTo) {
		s.stats.Blocked++
		return false, "Too many requests. Try again later."
	}

	client.requests = prune(client.requests, now.Add(-time.Hour))
	client.requests = append(client.requests, now)

	violated := countSince(client.requests, now.Add(-time.Second)) > shieldMaxPerSecond ||
		countSince(client.requests, now.Add(-time.Minute)) > shieldMaxPerMinute

	if limit, window := endpointLimit(endpoint); limit > 0 {
		stamps := prune(client.byEndpoint[endpoint], now.Add(-window))
		stamps = append(stamps, now)
		client.byEndpoint[endpoint] = stamps
		if len(stamps) > limit {
			violated = true
		}
	}

	if violated {
		client.violations++
		s.stats.Violations++
		s.stats.Blocked++
		switch {
		case client.violations >= shieldPermaAfter:
			client.blockedTo = now.Add(shieldPermaBan)
		case client.violations >= shieldHardAfter:
			client.blockedTo = now.Add(shieldHardBlock)
		default:
			client.blockedTo = now.Add(shieldSoftBlock)
		}
		return false, "Too many requests. Slow down."
	}

	s.stats.Allowed++
	return true, ""
}

// Stats returns a copy of the counters.
func (s *Shield) Stats() ShieldStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Sweep drops tracking state for clients idle past the horizon. Called
// periodically so the table cannot grow without bound.
func (s *Shield) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	horizon := s.now().Add(-time.Hour)
	for addr, client := range s.clients {
		if len(client.requests) == 0 && client.blockedTo.Before(horizon) {
			delete(s.clients, addr)
			continue
		}
		if len(client.requests) > 0 && client.requests[len(client.requests)-1].Before(horizon) && client.blockedTo.Before(s.now()) {
			delete(s.clients, addr)
		}
	}
}
