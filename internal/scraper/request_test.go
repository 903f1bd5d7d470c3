package scraper

import (
	"context"
	"testing"
	"time"
)

func TestSeasonURL(t *testing.T) {
	tests := []struct {
		season string
		want   string
	}{
		{"", CompsURL},
		{"1986", "https://fbref.com/en/comps/season/1986"},
		{"2003-2004", "https://fbref.com/en/comps/season/2003-2004"},
		{"03-04", CompsURL},
		{"2003/2004", CompsURL},
		{"season", CompsURL},
	}

	for _, tt := range tests {
		t.Run(tt.season, func(t *testing.T) {
			if got := SeasonURL(tt.season); got != tt.want {
				t.Errorf("SeasonURL(%q) = %q, want %q", tt.season, got, tt.want)
			}
		})
	}
}

func TestDelayPolicy_Duration(t *testing.T) {
	tests := []struct {
		name   string
		policy DelayPolicy
		r      float64
		want   time.Duration
	}{
		{"lower bound", DefaultDelay, 0, 2 * time.Second},
		{"midpoint", DefaultDelay, 0.5, 3500 * time.Millisecond},
		{"three quarters", DefaultDelay, 0.75, 4250 * time.Millisecond},
		{"zero policy", DelayPolicy{}, 0.7, 0},
		{"fixed", DelayPolicy{Min: time.Second, Max: time.Second}, 0.3, time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.Duration(tt.r); got != tt.want {
				t.Errorf("Duration(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestDelayPolicy_Validate(t *testing.T) {
	tests := []struct {
		name    string
		policy  DelayPolicy
		wantErr bool
	}{
		{"default", DefaultDelay, false},
		{"zero", DelayPolicy{}, false},
		{"inverted", DelayPolicy{Min: 3 * time.Second, Max: time.Second}, true},
		{"negative", DelayPolicy{Min: -time.Second, Max: time.Second}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.policy.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSleepContext(t *testing.T) {
	if err := SleepContext(context.Background(), 0); err != nil {
		t.Errorf("SleepContext(0) = %v, want nil", err)
	}

	start := time.Now()
	if err := SleepContext(context.Background(), 10*time.Millisecond); err != nil {
		t.Errorf("SleepContext() = %v, want nil", err)
	}
	if elapsed := time.Since(start); elapsed < 10*time.Millisecond {
		t.Errorf("SleepContext returned after %v", elapsed)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := SleepContext(ctx, time.Hour); err != context.Canceled {
		t.Errorf("SleepContext(cancelled) = %v, want context.Canceled", err)
	}
}

func TestDefaultHeaders(t *testing.T) {
	h := DefaultHeaders()
	for _, key := range []string{
		"User-Agent", "Accept", "Accept-Language", "Accept-Encoding", "DNT",
		"Connection", "Upgrade-Insecure-Requests", "Sec-Fetch-Dest",
		"Sec-Fetch-Mode", "Sec-Fetch-Site", "Sec-Fetch-User", "Cache-Control",
	} {
		if h[key] == "" {
			t.Errorf("header %s missing", key)
		}
	}

	h["User-Agent"] = "changed"
	if DefaultHeaders()["User-Agent"] != UserAgent {
		t.Error("DefaultHeaders() shares state between calls")
	}
}
