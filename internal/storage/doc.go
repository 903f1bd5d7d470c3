// Package storage provides JSON-based persistence for competition snapshots.
//
// Each run can save the competitions it listed to a snapshot file in the
// data directory, one file per table (snapshot_<table>.json), so the next
// run can report which competitions appeared or disappeared. The usual
// location is ~/.local/share/fbref-comps/.
package storage
