// Package report writes scraped competitions to an output stream.
//
// The default text reporter prints one "Competition: <name>, Country: <country>"
// line per record in the order the records were scraped. JSON, CSV and table
// reporters render the same records for other consumers. No reporter filters,
// sorts or aggregates.
package report
