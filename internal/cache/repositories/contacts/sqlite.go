package contacts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
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

func (r *SQLiteRepository) Insert(ctx context.Context, c *models.Contact) (int64, error) {
	query := `INSERT INTO CONTACT (name, birthday, anniversary, file_id) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, c.Name, nullable(c.Birthday), nullable(c.Anniversary), c.FileID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert contact %q: %w", c.Name, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get contact id: %w", err)
	}
	c.ID = id
	return id, nil
}

func (r *SQLiteRepository) GetByFileName(ctx context.Context, fileName string) (*models.Contact, error) {
	query := `SELECT c.contact_id, c.name, c.birthday, c.anniversary, c.file_id
		FROM CONTACT c JOIN FILE f ON c.file_id = f.file_id
		WHERE f.file_name = ?`

	var (
		c         models.Contact
		bday, ann sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, fileName).Scan(&c.ID, &c.Name, &bday, &ann, &c.FileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contact for %s: %w", fileName, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact for %s: %w", fileName, err)
	}

	c.Birthday = fromNull(bday)
	c.Anniversary = fromNull(ann)
	return &c, nil
}

func (r *SQLiteRepository) UpdateName(ctx context.Context, contactID int64, name string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE CONTACT SET name = ? WHERE contact_id = ?`, name, contactID)
	if err != nil {
		return fmt.Errorf("failed to update contact %d: %w", contactID, err)
	}
	return expectOne(result, contactID)
}

func (r *SQLiteRepository) UpdateSummary(ctx context.Context, c *models.Contact) error {
	query := `UPDATE CONTACT SET name = ?, birthday = ?, anniversary = ? WHERE contact_id = ?`
	result, err := r.db.ExecContext(ctx, query, c.Name, nullable(c.Birthday), nullable(c.Anniversary), c.ID)
	if err != nil {
		return fmt.Errorf("failed to update contact %d: %w", c.ID, err)
	}
	return expectOne(result, c.ID)
}

func (r *SQLiteRepository) AllOrderedByName(ctx context.Context) iter.Seq2[models.ContactRow, error] {
	query := `SELECT c.contact_id, c.name, c.birthday, c.anniversary, f.file_name
		FROM CONTACT c JOIN FILE f ON c.file_id = f.file_id
		ORDER BY c.name, c.contact_id`

	return func(yield func(models.ContactRow, error) bool) {
		rows, err := r.db.QueryContext(ctx, query)
		if err != nil {
			yield(models.ContactRow{}, fmt.Errorf("error selecting contacts: %w", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var (
				row       models.ContactRow
				bday, ann sql.NullString
			)
			if err := rows.Scan(&row.ContactID, &row.Name, &bday, &ann, &row.FileName); err != nil {
				yield(models.ContactRow{}, err)
				return
			}
			row.Birthday = fromNull(bday)
			row.Anniversary = fromNull(ann)
			if !yield(row, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(models.ContactRow{}, err)
		}
	}
}

// Partial dates ("--06-12") carry no year; strftime cannot read them, so the
// month and month-day are cut out by position instead.
const (
	birthMonth = `CASE WHEN birthday LIKE '--%' THEN substr(birthday, 3, 2) ELSE strftime('%m', birthday) END`
	birthMDay  = `CASE WHEN birthday LIKE '--%' THEN substr(birthday, 2) ELSE strftime('-%m-%d', birthday) END`
)

func (r *SQLiteRepository) BirthdaysInMonthByProximity(ctx context.Context, month time.Month, now time.Time) ([]models.BirthdayRow, error) {
	query := `SELECT name, birthday FROM CONTACT
		WHERE ` + birthMonth + ` = ?
		ORDER BY abs(julianday(strftime('%Y', ?) || ` + birthMDay + `) - julianday(?)), name`

	today := now.Format("2006-01-02")
	rows, err := r.db.QueryContext(ctx, query, fmt.Sprintf("%02d", int(month)), today, today)
	if err != nil {
		return nil, fmt.Errorf("error selecting birthdays: %w", err)
	}
	defer rows.Close()

	var result []models.BirthdayRow
	for rows.Next() {
		var item models.BirthdayRow
		if err := rows.Scan(&item.Name, &item.Birthday); err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func expectOne(result sql.Result, id int64) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected != 1 {
		return fmt.Errorf("contact %d: %w", id, common.ErrNotFound)
	}
	return nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}
