// Package contacts is the repository of the CONTACT table and of the
// read-only queries the UI runs against the cache.
package contacts

import (
	"context"
	"iter"
	"time"

	"github.com/dmitrijs2005/vcardshell/internal/cache/models"
)

// Repository describes operations on CONTACT rows.
type Repository interface {
	// Insert adds a contact linked to an existing FILE row.
	Insert(ctx context.Context, c *models.Contact) (int64, error)

	// GetByFileName returns the contact of a file or common.ErrNotFound.
	GetByFileName(ctx context.Context, fileName string) (*models.Contact, error)

	UpdateName(ctx context.Context, contactID int64, name string) error

	// UpdateSummary overwrites name, birthday and anniversary.
	UpdateSummary(ctx context.Context, c *models.Contact) error

	// AllOrderedByName lazily yields every contact joined with its file
	// name. The query runs each time the sequence is ranged over.
	AllOrderedByName(ctx context.Context) iter.Seq2[models.ContactRow, error]

	// BirthdaysInMonthByProximity returns contacts born in month, nearest
	// month-day to now first.
	BirthdaysInMonthByProximity(ctx context.Context, month time.Month, now time.Time) ([]models.BirthdayRow, error)
}
