package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vcardshell/internal/cache/models"
	"github.com/dmitrijs2005/vcardshell/internal/common"
	"github.com/dmitrijs2005/vcardshell/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Insert(ctx context.Context, f *models.File) (int64, error) {
	query := `INSERT INTO FILE (file_name, last_modified, creation_time) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, f.Name,
		f.LastModified.Format(models.TimeLayout), f.CreationTime.Format(models.TimeLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to insert file %s: %w", f.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get file id: %w", err)
	}
	f.ID = id
	return id, nil
}

func (r *SQLiteRepository) GetByName(ctx context.Context, name string) (*models.File, error) {
	query := `SELECT file_id, file_name, last_modified, creation_time FROM FILE WHERE file_name = ?`

	var (
		f        models.File
		modified sql.NullString
		created  string
	)
	err := r.db.QueryRowContext(ctx, query, name).Scan(&f.ID, &f.Name, &modified, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("file %s: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get file %s: %w", name, err)
	}

	if modified.Valid {
		if f.LastModified, err = parseTime(modified.String); err != nil {
			return nil, fmt.Errorf("file %s last_modified: %w", name, err)
		}
	}
	if f.CreationTime, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("file %s creation_time: %w", name, err)
	}
	return &f, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.ParseInLocation(models.TimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func (r *SQLiteRepository) Touch(ctx context.Context, id int64, modified time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE FILE SET last_modified = ? WHERE file_id = ?`,
		modified.Format(models.TimeLayout), id)
	if err != nil {
		return fmt.Errorf("failed to touch file %d: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByName(ctx context.Context, name string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM FILE WHERE file_name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete file %s: %w", name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("file %s: %w", name, common.ErrNotFound)
	}
	return nil
}

func (r *SQLiteRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM FILE`); err != nil {
		return fmt.Errorf("failed to clear files: %w", err)
	}
	return nil
}
