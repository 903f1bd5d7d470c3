// Package cli implements the command-line interface for fbref-comps.
//
// The cli package provides the Cobra root command, layers flags over the
// optional config file, and runs the scrape pipeline: delay, fetch, status
// gate, extraction, optional snapshot comparison and report. It maps the outcome to the process exit code.
package cli
