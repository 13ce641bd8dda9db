package vcf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/vcardshell/internal/common"
	"github.com/emersion/go-vcard"
)

// ParseFile builds a card from the file at path. Only .vcf and .vcard files
// (any case) are accepted.
func (a *Adapter) ParseFile(path string) (*Card, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".vcf" && ext != ".vcard" {
		return nil, fmt.Errorf("%w: %s: unsupported extension", common.ErrParse, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrParse, err)
	}
	defer f.Close()

	data, err := a.codec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrParse, path, err)
	}

	return a.issue(data), nil
}

// CreateMinimal builds a card holding only a formatted name.
func (a *Adapter) CreateMinimal(name string) (*Card, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", common.ErrCreation)
	}

	data := make(vcard.Card)
	data.SetValue(vcard.FieldVersion, "4.0")
	data.SetValue(vcard.FieldFormattedName, name)
	return a.issue(data), nil
}

// EditName replaces the formatted name of c in place.
func (a *Adapter) EditName(c *Card, name string) error {
	if c.Released() {
		return fmt.Errorf("%w: card already released", common.ErrEdit)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty name", common.ErrEdit)
	}

	c.data.SetValue(vcard.FieldFormattedName, name)
	return nil
}

// Validate checks c against the engine's rules. It does not release c.
func (a *Adapter) Validate(c *Card) error {
	if c.Released() {
		return fmt.Errorf("%w: card already released", common.ErrValidation)
	}
	if err := a.codec.Validate(c.data); err != nil {
		return fmt.Errorf("%w: %v", common.ErrValidation, err)
	}
	return nil
}

// WriteToFile serializes c and writes it to path. Nothing is written when
// encoding fails.
func (a *Adapter) WriteToFile(path string, c *Card) error {
	if c.Released() {
		return fmt.Errorf("%w: card already released", common.ErrWrite)
	}

	var buf bytes.Buffer
	if err := a.codec.Encode(&buf, c.data); err != nil {
		return fmt.Errorf("%w: encode: %v", common.ErrWrite, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", common.ErrWrite, err)
	}
	return nil
}
