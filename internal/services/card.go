package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/vcardshell/internal/common"
	"github.com/dmitrijs2005/vcardshell/internal/filex"
	"github.com/dmitrijs2005/vcardshell/internal/logging"
	"github.com/dmitrijs2005/vcardshell/internal/vcf"
)

// CardService submits the Create and Edit forms. Every adapter step runs
// inside Adapter.Use, so no handle outlives a call.
type CardService interface {
	// Create writes a new minimal card and records it in the cache. It
	// fails with common.ErrDuplicateFile when the target already exists and
	// with common.ErrBadFileName when fileName is not a bare file name.
	// A cache row left behind by a file that is gone is replaced.
	Create(ctx context.Context, fileName, contact string) error

	// Load returns the summary shown by the Edit form.
	Load(ctx context.Context, fileName string) (vcf.Summary, error)

	// Save renames the contact of an existing card and updates the cache.
	Save(ctx context.Context, fileName, contact string) error
}

type cardService struct {
	dir      string
	adapter  *vcf.Adapter
	contacts ContactService
	log      logging.Logger
}

func NewCardService(dir string, adapter *vcf.Adapter, contacts ContactService, log logging.Logger) CardService {
	return &cardService{dir: dir, adapter: adapter, contacts: contacts, log: log}
}

func (s *cardService) Create(ctx context.Context, fileName, contact string) error {
	fileName = strings.TrimSpace(fileName)
	contact = strings.TrimSpace(contact)
	if fileName == "" || contact == "" {
		return fmt.Errorf("%w: file name and contact", common.ErrBlankField)
	}
	if filepath.Base(fileName) != fileName || fileName == "." || fileName == ".." {
		return fmt.Errorf("%w: %s", common.ErrBadFileName, fileName)
	}

	path := filepath.Join(s.dir, fileName)
	exists, err := filex.Exists(path)
	if err != nil {
		return fmt.Errorf("%w: %w", common.ErrWrite, err)
	}
	if exists {
		return fmt.Errorf("%w: %s", common.ErrDuplicateFile, fileName)
	}

	// The file is not on disk, so any cached row for it is stale.
	if err := s.contacts.ForgetFile(ctx, fileName); err != nil && !errors.Is(err, common.ErrNotFound) {
		return err
	}

	err = s.adapter.Use(
		func() (*vcf.Card, error) { return s.adapter.CreateMinimal(contact) },
		func(c *vcf.Card) error {
			if err := s.adapter.Validate(c); err != nil {
				return err
			}
			return s.adapter.WriteToFile(path, c)
		})
	if err != nil {
		s.log.Debug(ctx, "create failed", "file", fileName, "error", err)
		return err
	}

	return s.contacts.InsertNewContact(ctx, fileName, contact)
}

func (s *cardService) Load(ctx context.Context, fileName string) (vcf.Summary, error) {
	s.log.Debug(ctx, "loading card", "file", fileName)

	var summary vcf.Summary
	err := s.adapter.Use(
		func() (*vcf.Card, error) { return s.adapter.ParseFile(filepath.Join(s.dir, fileName)) },
		func(c *vcf.Card) error {
			summary = s.adapter.ExtractSummary(c)
			return nil
		})
	if err != nil {
		s.log.Debug(ctx, "load failed", "file", fileName, "error", err)
		return vcf.Summary{}, err
	}

	s.log.Debug(ctx, "card loaded", "file", fileName,
		"name", summary.NameOr(""), "birthday", summary.BirthdayOr(""),
		"anniversary", summary.AnniversaryOr(""), "other", summary.OtherProperties)
	return summary, nil
}

func (s *cardService) Save(ctx context.Context, fileName, contact string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return fmt.Errorf("%w: contact", common.ErrBlankField)
	}

	path := filepath.Join(s.dir, fileName)
	err := s.adapter.Use(
		func() (*vcf.Card, error) { return s.adapter.ParseFile(path) },
		func(c *vcf.Card) error {
			if err := s.adapter.EditName(c, contact); err != nil {
				return err
			}
			if err := s.adapter.Validate(c); err != nil {
				return err
			}
			return s.adapter.WriteToFile(path, c)
		})
	if err != nil {
		s.log.Debug(ctx, "save failed", "file", fileName, "error", err)
		return err
	}

	return s.contacts.UpdateContactForFile(ctx, fileName, contact)
}
