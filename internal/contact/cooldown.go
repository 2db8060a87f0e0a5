package contact

import (
	"strings"
	"sync"
	"time"
)

// DefaultCooldown is the resubmission window applied when none is configured.
const DefaultCooldown = 60 * time.Second

// cooldownTracker remembers the last accepted submission per client key.
// It is in-memory only: restarts clear it, which is acceptable because the
// window is a UX nicety, not a security control.
type cooldownTracker struct {
	mu       sync.Mutex
	window   time.Duration
	lastSeen map[string]time.Time
}

func newCooldownTracker(window time.Duration) *cooldownTracker {
	if window <= 0 {
		window = DefaultCooldown
	}
	return &cooldownTracker{
		window:   window,
		lastSeen: make(map[string]time.Time),
	}
}

// check reports the time remaining in the window for key. A zero duration
// means the client may submit.
func (t *cooldownTracker) check(key string, now time.Time) time.Duration {
	if key == "" {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	last, ok := t.lastSeen[key]
	if !ok {
		return 0
	}
	elapsed := now.Sub(last)
	if elapsed >= t.window {
		delete(t.lastSeen, key)
		return 0
	}
	return t.window - elapsed
}

// mark records an accepted submission for key.
func (t *cooldownTracker) mark(key string, now time.Time) {
	if key == "" {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSeen[key] = now
}

// cooldownKey identifies the submitting client. The normalized email wins;
// the remote address is the fallback for senders who mistyped theirs.
func cooldownKey(email, remoteAddr string) string {
	if normalized := strings.ToLower(strings.TrimSpace(email)); normalized != "" {
		return "email:" + normalized
	}
	if addr := strings.TrimSpace(remoteAddr); addr != "" {
		return "addr:" + addr
	}
	return ""
}
