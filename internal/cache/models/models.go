// Package models defines the rows of the contact cache.
package models

import "time"

// TimeLayout is the text form of FILE timestamps.
const TimeLayout = "2006-01-02 15:04:05"

// File is a row of the FILE table: one card file on disk.
type File struct {
	ID   int64
	Name string
	// LastModified is the file's modification time as seen by the scan.
	LastModified time.Time
	// CreationTime is when the row entered the cache, not a filesystem time.
	CreationTime time.Time
}

// Contact is a row of the CONTACT table. Birthday and Anniversary are nil
// when the card does not carry them.
type Contact struct {
	ID          int64
	Name        string
	Birthday    *string
	Anniversary *string
	FileID      int64
}

// ContactRow is one line of the "all contacts" query.
type ContactRow struct {
	ContactID   int64
	Name        string
	Birthday    *string
	Anniversary *string
	FileName    string
}

// BirthdayRow is one line of the birthday proximity query.
type BirthdayRow struct {
	Name     string
	Birthday string
}
