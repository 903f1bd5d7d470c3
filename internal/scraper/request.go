package scraper

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/pfrederiksen/fbref-comps/internal/logger"
)

// CompsURL is the FBref competitions listing
const CompsURL = "https://fbref.com/en/comps/"

// DefaultTableID identifies the club competitions table
const DefaultTableID = "comps_club"

const (
	Timeout   = 30 * time.Second
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// DefaultDelay is the pause taken before the request
var DefaultDelay = DelayPolicy{Min: 2 * time.Second, Max: 5 * time.Second}

// DefaultHeaders returns the browser-like header set sent with the request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":                UserAgent,
		"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
		"Accept-Language":           "en-US,en;q=0.5",
		"Accept-Encoding":           "gzip, deflate, br",
		"DNT":                       "1",
		"Connection":                "keep-alive",
		"Upgrade-Insecure-Requests": "1",
		"Sec-Fetch-Dest":            "document",
		"Sec-Fetch-Mode":            "navigate",
		"Sec-Fetch-Site":            "none",
		"Sec-Fetch-User":            "?1",
		"Cache-Control":             "max-age=0",
	}
}

var seasonPattern = regexp.MustCompile(`^\d{4}(-\d{4})?$`)

// SeasonURL returns the competitions URL for a season such as "1986" or
// "2003-2004". An empty season gives CompsURL; a malformed one logs a warning
// and also gives CompsURL.
func SeasonURL(season string) string {
	if season == "" {
		return CompsURL
	}
	if !seasonPattern.MatchString(season) {
		logger.Warn("invalid season format, using default URL", logger.Fields{
			"season": season,
		})
		return CompsURL
	}
	return CompsURL + "season/" + season
}

// DelayPolicy bounds the randomized pause before the request
type DelayPolicy struct {
	Min time.Duration
	Max time.Duration
}

// Validate checks that the bounds are usable
func (p DelayPolicy) Validate() error {
	if p.Min < 0 || p.Max < 0 {
		return fmt.Errorf("delay bounds must not be negative (min %s, max %s)", p.Min, p.Max)
	}
	if p.Max < p.Min {
		return fmt.Errorf("max delay %s is below min delay %s", p.Max, p.Min)
	}
	return nil
}

// Duration maps r in [0,1) uniformly onto [Min, Max)
func (p DelayPolicy) Duration(r float64) time.Duration {
	if p.Max <= p.Min {
		return p.Min
	}
	return p.Min + time.Duration(r*float64(p.Max-p.Min))
}

// SleepFunc blocks for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// SleepContext is the default SleepFunc
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
