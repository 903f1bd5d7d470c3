package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/pfrederiksen/fbref-comps/internal/logger"
	"github.com/pfrederiksen/fbref-comps/internal/report"
	"github.com/pfrederiksen/fbref-comps/internal/scraper"
	"github.com/titanous/json5"
)

// Duration decodes from a Go duration string such as "2.5s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json5.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string like \"2s\": %w", err)
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Config is the full run configuration
type Config struct {
	URL              string            `json:"url"`
	Season           *string           `json:"season"`
	TableID          string            `json:"table"`
	MinDelay         *Duration         `json:"min_delay"`
	MaxDelay         *Duration         `json:"max_delay"`
	Timeout          Duration          `json:"timeout"`
	Headers          map[string]string `json:"headers"`
	Format           string            `json:"format"`
	DetectCountry    *bool             `json:"detect_country"`
	CloudflareBypass *bool             `json:"cloudflare_bypass"`
	DataDir          *string           `json:"data_dir"`
	NewOnly          *bool             `json:"new_only"`
	Verbose          *bool             `json:"verbose"`
}

// Ptr returns a pointer to v, for setting optional fields
func Ptr[T any](v T) *T {
	return &v
}

// ToBool returns the value of an optional flag, false when unset
func ToBool(p *bool) bool {
	return p != nil && *p
}

// ToString returns the value of an optional string, "" when unset
func ToString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func durationPtr(d time.Duration) *Duration {
	v := Duration(d)
	return &v
}

// Default returns the configuration of a plain run
func Default() *Config {
	return &Config{
		URL:      scraper.CompsURL,
		TableID:  scraper.DefaultTableID,
		MinDelay: durationPtr(scraper.DefaultDelay.Min),
		MaxDelay: durationPtr(scraper.DefaultDelay.Max),
		Timeout:  Duration(scraper.Timeout),
		Headers:  scraper.DefaultHeaders(),
		Format:   string(report.FormatText),
	}
}

// mergeOpts lets pointer fields that are set override earlier values even
// when they hold false, "" or zero
var mergeOpts = []func(*mergo.Config){mergo.WithOverride, mergo.WithoutDereference}

// Load returns the defaults merged with the file at path and its local
// override. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	file, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if err := mergo.Merge(cfg, file, mergeOpts...); err != nil {
		return nil, fmt.Errorf("merging config: %w", err)
	}

	return cfg, nil
}

// readFile reads <name>.<ext> and merges <name>.local.<ext> over it.
// The main file must exist; the local one is optional.
func readFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var out Config
	if err := json5.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	localPath := localName(path)
	localData, err := os.ReadFile(localPath)
	if os.IsNotExist(err) {
		return &out, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading local config: %w", err)
	}

	var override Config
	if err := json5.Unmarshal(localData, &override); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", localPath, err)
	}
	if err := mergo.Merge(&out, override, mergeOpts...); err != nil {
		return nil, fmt.Errorf("merging local config: %w", err)
	}
	logger.Debug("merging config with local overrides", logger.Fields{"local": localPath})

	return &out, nil
}

// localName maps "dir/fbref.json5" to "dir/fbref.local.json5"
func localName(path string) string {
	dir, base := filepath.Split(path)
	ext := filepath.Ext(base)
	return filepath.Join(dir, strings.TrimSuffix(base, ext)+".local"+ext)
}

// Delay returns the delay policy described by the config
func (c *Config) Delay() scraper.DelayPolicy {
	var p scraper.DelayPolicy
	if c.MinDelay != nil {
		p.Min = time.Duration(*c.MinDelay)
	}
	if c.MaxDelay != nil {
		p.Max = time.Duration(*c.MaxDelay)
	}
	return p
}

// RequestURL returns the page to fetch, preferring the season page when a
// season is set.
func (c *Config) RequestURL() string {
	if season := ToString(c.Season); season != "" {
		return scraper.SeasonURL(season)
	}
	return c.URL
}

// Validate checks the configuration before a run
func (c *Config) Validate() error {
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid url: %q", c.URL)
	}
	if strings.TrimSpace(c.TableID) == "" {
		return fmt.Errorf("table id must not be empty")
	}
	if err := c.Delay().Validate(); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if _, err := report.ParseFormat(c.Format); err != nil {
		return err
	}
	if ToBool(c.NewOnly) && ToString(c.DataDir) == "" {
		return fmt.Errorf("new_only needs a data directory")
	}
	return nil
}

// ScraperOptions converts the config to scraper options
func (c *Config) ScraperOptions() scraper.Options {
	return scraper.Options{
		URL:              c.RequestURL(),
		TableID:          c.TableID,
		Headers:          c.Headers,
		Delay:            c.Delay(),
		Timeout:          time.Duration(c.Timeout),
		CloudflareBypass: ToBool(c.CloudflareBypass),
	}
}
