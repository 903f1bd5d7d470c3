package scraper

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"compress/zlib"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/andybalholm/brotli"
	"github.com/go-resty/resty/v2"
	"github.com/pfrederiksen/fbref-comps/internal/competition"
	"github.com/pfrederiksen/fbref-comps/internal/logger"
)

// Options configures a Scraper. Zero values mean: CompsURL, DefaultTableID,
// DefaultHeaders, no delay, Timeout, a fresh session, math/rand and
// SleepContext.
type Options struct {
	URL              string
	TableID          string
	Headers          map[string]string
	Delay            DelayPolicy
	Timeout          time.Duration
	CloudflareBypass bool

	// Session replaces the HTTP session. Headers and timeout are applied to it.
	Session *resty.Client
	Sleep   SleepFunc
	Rand    func() float64
	Now     func() time.Time
}

// DefaultOptions returns the options of a plain run against FBref
func DefaultOptions() Options {
	return Options{
		URL:     CompsURL,
		TableID: DefaultTableID,
		Headers: DefaultHeaders(),
		Delay:   DefaultDelay,
		Timeout: Timeout,
	}
}

// Scraper handles fetching and parsing the FBref competitions page
type Scraper struct {
	http    *resty.Client
	url     string
	tableID string
	delay   DelayPolicy
	sleep   SleepFunc
	rand    func() float64
	now     func() time.Time
}

// New creates a new Scraper
func New(opts Options) (*Scraper, error) {
	if err := opts.Delay.Validate(); err != nil {
		return nil, err
	}

	s := &Scraper{
		http:    opts.Session,
		url:     opts.URL,
		tableID: opts.TableID,
		delay:   opts.Delay,
		sleep:   opts.Sleep,
		rand:    opts.Rand,
		now:     opts.Now,
	}
	if s.url == "" {
		s.url = CompsURL
	}
	if s.tableID == "" {
		s.tableID = DefaultTableID
	}
	if s.sleep == nil {
		s.sleep = SleepContext
	}
	if s.rand == nil {
		s.rand = rand.Float64
	}
	if s.now == nil {
		s.now = time.Now
	}

	if s.http == nil {
		session, err := newSession()
		if err != nil {
			return nil, err
		}
		s.http = session
	}

	headers := opts.Headers
	if len(headers) == 0 {
		headers = DefaultHeaders()
	}
	s.http.SetHeaders(headers)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = Timeout
	}
	s.http.SetTimeout(timeout)

	if opts.CloudflareBypass {
		s.http.SetTransport(cloudflarebp.AddCloudFlareByPass(s.http.GetClient().Transport))
	}

	return s, nil
}

// newSession creates a resty client holding cookies for the run
func newSession() (*resty.Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	client := resty.New()
	client.SetCookieJar(jar)
	return client, nil
}

// URL returns the page the scraper requests
func (s *Scraper) URL() string {
	return s.url
}

// TableID returns the id of the table the scraper extracts
func (s *Scraper) TableID() string {
	return s.tableID
}

// Page is a fetched response. Body holds the bytes as received, still
// compressed when Encoding names a content encoding.
type Page struct {
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
	Encoding   string

	res *resty.Response
}

// Decode returns the body with its content encoding undone
func (p *Page) Decode() ([]byte, error) {
	return decodeBody(bytes.NewReader(p.Body), p.Encoding)
}

// Fetch waits the configured delay and then requests the page once.
// Only transport failures are returned as errors; the status code is left
// for CheckStatus and the body is decoded by Parse.
func (s *Scraper) Fetch(ctx context.Context) (*Page, error) {
	wait := s.delay.Duration(s.rand())
	logger.Debug("waiting before request", logger.Fields{"delay": wait.String()})
	if err := s.sleep(ctx, wait); err != nil {
		return nil, fmt.Errorf("waiting before request: %w", err)
	}

	start := s.now()
	res, err := s.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(s.url)
	if err != nil {
		logger.RecordTiming("http.fetch", s.now().Sub(start))
		if isTimeout(err) {
			return nil, fmt.Errorf("fetching page: %w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("fetching page: %w", err)
	}

	body := res.RawBody()
	defer body.Close()

	data, err := io.ReadAll(body)
	logger.RecordTiming("http.fetch", s.now().Sub(start))
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("reading response body: %w: %w", ErrTimeout, err)
		}
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	logger.Debug("fetched page", logger.Fields{
		"url":    s.url,
		"status": res.StatusCode(),
		"bytes":  len(data),
	})

	return &Page{
		URL:        s.url,
		StatusCode: res.StatusCode(),
		Header:     res.Header(),
		Body:       data,
		Encoding:   res.Header().Get("Content-Encoding"),
		res:        res,
	}, nil
}

// Parse decodes the page body and extracts the competitions
func (s *Scraper) Parse(page *Page) ([]*competition.Record, error) {
	data, err := page.Decode()
	if err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}
	return ParseCompetitions(bytes.NewReader(data), s.tableID)
}

// decodeBody reads the body, undoing the content encodings advertised in
// the Accept-Encoding header.
func decodeBody(r io.Reader, encoding string) ([]byte, error) {
	var (
		reader io.Reader
		err    error
	)

	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "identity":
		reader = r
	case "gzip":
		reader, err = gzip.NewReader(r)
	case "deflate":
		reader, err = inflate(r)
	case "br":
		reader = brotli.NewReader(r)
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", encoding)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding %s body: %w", encoding, err)
	}

	return io.ReadAll(reader)
}

// inflate handles both zlib-wrapped and raw deflate bodies
func inflate(r io.Reader) (io.Reader, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if zr, err := zlib.NewReader(bytes.NewReader(data)); err == nil {
		return zr, nil
	}
	return flate.NewReader(bytes.NewReader(data)), nil
}
