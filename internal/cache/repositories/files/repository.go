package files

import (
	"context"
	"time"

	"github.com/dmitrijs2005/vcardshell/internal/cache/models"
)

// Repository describes operations on FILE rows.
type Repository interface {
	// Insert adds a row and returns its file_id.
	Insert(ctx context.Context, f *models.File) (int64, error)

	// GetByName returns the row for a file name or common.ErrNotFound.
	GetByName(ctx context.Context, name string) (*models.File, error)

	// Touch sets last_modified of the row.
	Touch(ctx context.Context, id int64, modified time.Time) error

	// DeleteByName removes the row; its CONTACT row is removed by cascade.
	DeleteByName(ctx context.Context, name string) error

	// DeleteAll empties the table (and CONTACT by cascade).
	DeleteAll(ctx context.Context) error
}
