// Package scraper fetches the FBref competitions page and extracts
// competition records from its table.
//
// A run is linear. The scraper waits a randomized delay, issues one GET
// through a cookie-carrying session with a browser-like header set, and
// returns the page. CheckStatus gates the response: 403 means the site is
// blocking automated access, any other non-2xx status is an error.
// ParseCompetitions then walks the body rows of the competitions table and
// builds one record per row. A missing table yields no records rather than
// an error.
package scraper
