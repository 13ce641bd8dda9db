package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/vcardshell/internal/cache/models"
	"github.com/dmitrijs2005/vcardshell/internal/cache/repositories/contacts"
	"github.com/dmitrijs2005/vcardshell/internal/cache/repositories/files"
	"github.com/dmitrijs2005/vcardshell/internal/common"
	"github.com/dmitrijs2005/vcardshell/internal/dbx"
	"github.com/dmitrijs2005/vcardshell/internal/filex"
	"github.com/dmitrijs2005/vcardshell/internal/logging"
	"github.com/dmitrijs2005/vcardshell/internal/vcf"
)

// CardSuffix is the file name suffix of cards picked up by a scan.
const CardSuffix = ".vcf"

// ScanReport counts the outcome of a directory scan.
type ScanReport struct {
	Loaded  int
	Skipped int
}

type ContactService interface {
	RebuildFromDirectory(ctx context.Context, dir string) (ScanReport, error)
	InsertNewContact(ctx context.Context, fileName, contactName string) error
	UpdateContactForFile(ctx context.Context, fileName, newName string) error
	QueryAllContactsOrderedByName(ctx context.Context) iter.Seq2[models.ContactRow, error]
	QueryJuneBirthdaysByProximity(ctx context.Context, now time.Time) ([]models.BirthdayRow, error)

	// RefreshFile re-reads one card after an external change and upserts
	// its rows. A card that no longer parses or validates is dropped.
	RefreshFile(ctx context.Context, dir, name string) error

	// ForgetFile removes the rows of a deleted card.
	ForgetFile(ctx context.Context, name string) error
}

type contactService struct {
	db      *sql.DB
	adapter *vcf.Adapter
	log     logging.Logger
	now     func() time.Time
}

func NewContactService(db *sql.DB, adapter *vcf.Adapter, log logging.Logger) ContactService {
	return &contactService{db: db, adapter: adapter, log: log, now: time.Now}
}

func (s *contactService) RebuildFromDirectory(ctx context.Context, dir string) (ScanReport, error) {
	var report ScanReport

	if err := files.NewSQLiteRepository(s.db).DeleteAll(ctx); err != nil {
		return report, fmt.Errorf("clear cache: %w", err)
	}

	entries, err := filex.ListBySuffix(dir, CardSuffix)
	if errors.Is(err, fs.ErrNotExist) {
		return report, fmt.Errorf("%w: %s", common.ErrCardsDirMissing, dir)
	}
	if err != nil {
		return report, fmt.Errorf("scan %s: %w", dir, err)
	}

	for _, e := range entries {
		summary, err := s.readSummary(filepath.Join(dir, e.Name))
		if err != nil {
			report.Skipped++
			s.log.Debug(ctx, "card skipped", "file", e.Name, "error", err)
			continue
		}

		if err := s.store(ctx, e.Name, e.ModTime, summary); err != nil {
			return report, err
		}
		report.Loaded++
	}

	s.log.Info(ctx, "cache rebuilt", "dir", dir, "loaded", report.Loaded, "skipped", report.Skipped)
	return report, nil
}

// readSummary parses and validates the card at path. The handle is released
// before it returns.
func (s *contactService) readSummary(path string) (vcf.Summary, error) {
	var summary vcf.Summary
	err := s.adapter.Use(
		func() (*vcf.Card, error) { return s.adapter.ParseFile(path) },
		func(c *vcf.Card) error {
			if err := s.adapter.Validate(c); err != nil {
				return err
			}
			summary = s.adapter.ExtractSummary(c)
			return nil
		})
	return summary, err
}

// store inserts the FILE row and its CONTACT row in one transaction. A zero
// modified time is replaced by the insertion time.
func (s *contactService) store(ctx context.Context, name string, modified time.Time, summary vcf.Summary) error {
	created := s.now()
	if modified.IsZero() {
		modified = created
	}

	err := dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		fileID, err := files.NewSQLiteRepository(tx).Insert(ctx, &models.File{
			Name:         name,
			LastModified: modified,
			CreationTime: created,
		})
		if err != nil {
			return err
		}

		_, err = contacts.NewSQLiteRepository(tx).Insert(ctx, &models.Contact{
			Name:        summary.NameOr(""),
			Birthday:    summary.Birthday,
			Anniversary: summary.Anniversary,
			FileID:      fileID,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrTransaction, name, err)
	}
	return nil
}

func (s *contactService) InsertNewContact(ctx context.Context, fileName, contactName string) error {
	if err := s.store(ctx, fileName, time.Time{}, vcf.Summary{Name: &contactName}); err != nil {
		return err
	}
	s.log.Debug(ctx, "contact inserted", "file", fileName, "name", contactName)
	return nil
}

func (s *contactService) UpdateContactForFile(ctx context.Context, fileName, newName string) error {
	repo := contacts.NewSQLiteRepository(s.db)

	c, err := repo.GetByFileName(ctx, fileName)
	if err != nil {
		return err
	}
	if err := repo.UpdateName(ctx, c.ID, newName); err != nil {
		return err
	}

	s.log.Debug(ctx, "contact renamed", "file", fileName, "name", newName)
	return nil
}

func (s *contactService) QueryAllContactsOrderedByName(ctx context.Context) iter.Seq2[models.ContactRow, error] {
	return contacts.NewSQLiteRepository(s.db).AllOrderedByName(ctx)
}

func (s *contactService) QueryJuneBirthdaysByProximity(ctx context.Context, now time.Time) ([]models.BirthdayRow, error) {
	return contacts.NewSQLiteRepository(s.db).BirthdaysInMonthByProximity(ctx, time.June, now)
}

func (s *contactService) RefreshFile(ctx context.Context, dir, name string) error {
	path := filepath.Join(dir, name)

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s.forget(ctx, name)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	summary, err := s.readSummary(path)
	if err != nil {
		s.log.Debug(ctx, "card dropped", "file", name, "error", err)
		if ferr := s.forget(ctx, name); ferr != nil {
			return ferr
		}
		return err
	}

	existing, err := files.NewSQLiteRepository(s.db).GetByName(ctx, name)
	if errors.Is(err, common.ErrNotFound) {
		return s.store(ctx, name, info.ModTime(), summary)
	}
	if err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		if err := files.NewSQLiteRepository(tx).Touch(ctx, existing.ID, info.ModTime()); err != nil {
			return err
		}

		repo := contacts.NewSQLiteRepository(tx)
		c, err := repo.GetByFileName(ctx, name)
		if err != nil {
			return err
		}
		c.Name = summary.NameOr("")
		c.Birthday = summary.Birthday
		c.Anniversary = summary.Anniversary
		return repo.UpdateSummary(ctx, c)
	})
	if err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrTransaction, name, err)
	}

	s.log.Debug(ctx, "card refreshed", "file", name)
	return nil
}

func (s *contactService) ForgetFile(ctx context.Context, name string) error {
	err := files.NewSQLiteRepository(s.db).DeleteByName(ctx, name)
	if err != nil {
		return err
	}
	s.log.Debug(ctx, "card forgotten", "file", name)
	return nil
}

// forget is ForgetFile for callers that do not care whether the file was
// cached.
func (s *contactService) forget(ctx context.Context, name string) error {
	if err := s.ForgetFile(ctx, name); err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}
	return nil
}
