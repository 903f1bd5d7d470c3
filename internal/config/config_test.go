package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pfrederiksen/fbref-comps/internal/scraper"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, scraper.CompsURL, cfg.URL)
	require.Equal(t, scraper.CompsURL, cfg.RequestURL())
	require.Equal(t, scraper.DefaultTableID, cfg.TableID)
	require.Equal(t, scraper.DefaultDelay, cfg.Delay())
	require.Equal(t, scraper.UserAgent, cfg.Headers["User-Agent"])
	require.NoError(t, cfg.Validate())
}

func TestLoad_NoPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fbref.json5", `{
		// women's and international tables live on the same page
		table: 'comps_intl',
		min_delay: '0s',
		max_delay: '1s',
		headers: {
			'Accept-Language': 'de-DE',
		},
		format: 'json',
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "comps_intl", cfg.TableID)
	require.Equal(t, scraper.DelayPolicy{Min: 0, Max: time.Second}, cfg.Delay())
	require.Equal(t, "de-DE", cfg.Headers["Accept-Language"])
	require.Equal(t, scraper.UserAgent, cfg.Headers["User-Agent"], "unset headers keep their defaults")
	require.Equal(t, "json", cfg.Format)
	require.Equal(t, scraper.CompsURL, cfg.URL)
	require.NoError(t, cfg.Validate())
}

func TestLoad_LocalOverride(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fbref.json5", `{ table: 'comps_intl', season: '2003-2004' }`)
	writeFile(t, dir, "fbref.local.json5", `{ season: '1986', detect_country: true }`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "comps_intl", cfg.TableID)
	require.Equal(t, "1986", ToString(cfg.Season))
	require.True(t, ToBool(cfg.DetectCountry))
	require.Equal(t, "https://fbref.com/en/comps/season/1986", cfg.RequestURL())
}

func TestLoad_LocalResetsValues(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fbref.json5", `{
		season: '2003-2004',
		detect_country: true,
		cloudflare_bypass: true,
		min_delay: '1s',
	}`)
	writeFile(t, dir, "fbref.local.json5", `{
		season: '',
		detect_country: false,
		cloudflare_bypass: false,
		min_delay: '0s',
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.False(t, ToBool(cfg.DetectCountry))
	require.False(t, ToBool(cfg.CloudflareBypass))
	require.Equal(t, "", ToString(cfg.Season))
	require.Equal(t, scraper.CompsURL, cfg.RequestURL())
	require.Equal(t, time.Duration(0), cfg.Delay().Min)
}

func TestLoad_UnsetKeepsFileValues(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fbref.json5", `{ detect_country: true, data_dir: '/srv/fbref' }`)
	writeFile(t, dir, "fbref.local.json5", `{ format: 'csv' }`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.True(t, ToBool(cfg.DetectCountry))
	require.Equal(t, "/srv/fbref", ToString(cfg.DataDir))
	require.Equal(t, "csv", cfg.Format)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json5"))
	require.Error(t, err)

	bad := writeFile(t, dir, "bad.json5", `{ table: `)
	_, err = Load(bad)
	require.Error(t, err)

	badDuration := writeFile(t, dir, "delay.json5", `{ min_delay: 'soon' }`)
	_, err = Load(badDuration)
	require.Error(t, err)
}

func TestLocalName(t *testing.T) {
	require.Equal(t, filepath.Join("conf", "fbref.local.json5"), localName(filepath.Join("conf", "fbref.json5")))
	require.Equal(t, "fbref.local", localName("fbref"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"bad scheme", func(c *Config) { c.URL = "ftp://fbref.com" }, true},
		{"no host", func(c *Config) { c.URL = "https://" }, true},
		{"empty table", func(c *Config) { c.TableID = " " }, true},
		{"inverted delay", func(c *Config) {
			c.MinDelay = durationPtr(5 * time.Second)
			c.MaxDelay = durationPtr(time.Second)
		}, true},
		{"negative timeout", func(c *Config) { c.Timeout = Duration(-time.Second) }, true},
		{"unknown format", func(c *Config) { c.Format = "xml" }, true},
		{"new only without data dir", func(c *Config) { c.NewOnly = Ptr(true) }, true},
		{"new only with data dir", func(c *Config) {
			c.NewOnly = Ptr(true)
			c.DataDir = Ptr("/tmp/fbref")
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestScraperOptions(t *testing.T) {
	cfg := Default()
	cfg.Season = Ptr("2020-2021")
	cfg.CloudflareBypass = Ptr(true)

	opts := cfg.ScraperOptions()
	require.Equal(t, "https://fbref.com/en/comps/season/2020-2021", opts.URL)
	require.Equal(t, scraper.DefaultTableID, opts.TableID)
	require.Equal(t, scraper.DefaultDelay, opts.Delay)
	require.Equal(t, scraper.Timeout, opts.Timeout)
	require.True(t, opts.CloudflareBypass)
}
