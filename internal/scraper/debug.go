package scraper

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
)

// maxDumpBody bounds how much of a response body goes into a dump
const maxDumpBody = 2048

// 1: request method
// 2: request url
// 3: request headers in ("Key: Value" format)
// 4: response status
// 5: response url
// 6: response headers in ("Key: Value" format)
// 7: response body
const exchangeTemplate = `---- REQUEST ----

%s %s

%s

---- RESPONSE ----

%s %s

%s

%s`

func formatHeaders(headers http.Header) string {
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		for _, v := range headers[k] {
			lines = append(lines, fmt.Sprintf("%s: %s", k, v))
		}
	}
	return strings.Join(lines, "\n")
}

// Dump renders the request and response of the page for debugging a
// rejected fetch.
func (p *Page) Dump() string {
	method, reqURL := http.MethodGet, p.URL
	var reqHeaders http.Header
	if p.res != nil && p.res.Request != nil {
		method = p.res.Request.Method
		if raw := p.res.Request.RawRequest; raw != nil {
			reqURL = raw.URL.String()
			reqHeaders = raw.Header
		}
	}

	respURL := reqURL
	if p.res != nil && p.res.RawResponse != nil && p.res.RawResponse.Request != nil {
		respURL = p.res.RawResponse.Request.URL.String()
	}

	body := fmt.Sprintf("<%d bytes, %s encoded>", len(p.Body), p.Encoding)
	if data, err := p.Decode(); err == nil {
		body = string(data)
	}
	if len(body) > maxDumpBody {
		body = body[:maxDumpBody] + "..."
	}

	return fmt.Sprintf(
		exchangeTemplate,
		method, reqURL,
		formatHeaders(reqHeaders),
		strconv.Itoa(p.StatusCode), respURL,
		formatHeaders(p.Header),
		body,
	)
}
