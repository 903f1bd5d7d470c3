// Package competition provides the record type for football competitions
// scraped from FBref.
//
// A Record holds the competition name and country taken from one row of the
// competitions table. Records have no identity beyond their position in the
// scraped sequence. The package also carries an opt-in detector that infers
// a country from the competition name when the table row has none.
package competition
