package contact

import (
	"testing"
	"time"
)

func TestCooldownTrackerWindow(t *testing.T) {
	tracker := newCooldownTracker(time.Minute)
	start := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

	if remaining := tracker.check("email:jess@example.com", start); remaining != 0 {
		t.Fatalf("expected fresh key to pass, got %v", remaining)
	}
	tracker.mark("email:jess@example.com", start)

	remaining := tracker.check("email:jess@example.com", start.Add(15*time.Second))
	if remaining != 45*time.Second {
		t.Fatalf("expected 45s remaining, got %v", remaining)
	}

	if remaining := tracker.check("email:jess@example.com", start.Add(time.Minute)); remaining != 0 {
		t.Fatalf("expected expired window to pass, got %v", remaining)
	}
}

func TestCooldownTrackerDefaultsWindow(t *testing.T) {
	tracker := newCooldownTracker(0)
	if tracker.window != DefaultCooldown {
		t.Fatalf("expected default window, got %v", tracker.window)
	}
}

func TestCooldownKey(t *testing.T) {
	if key := cooldownKey(" Jess@Example.COM ", "203.0.113.7:51234"); key != "email:jess@example.com" {
		t.Fatalf("expected email key, got %q", key)
	}
	if key := cooldownKey("", "203.0.113.7:51234"); key != "addr:203.0.113.7:51234" {
		t.Fatalf("expected address fallback, got %q", key)
	}
	if key := cooldownKey("", ""); key != "" {
		t.Fatalf("expected empty key, got %q", key)
	}

	tracker := newCooldownTracker(time.Minute)
	now := time.Now()
	tracker.mark("", now)
	if remaining := tracker.check("", now); remaining != 0 {
		t.Fatalf("expected anonymous clients to skip cooldown, got %v", remaining)
	}
}
