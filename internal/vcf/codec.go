package vcf

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/emersion/go-vcard"
)

// Codec is the vCard engine contract the adapter drives.
type Codec interface {
	Decode(r io.Reader) (vcard.Card, error)
	Encode(w io.Writer, c vcard.Card) error
	Validate(c vcard.Card) error
}

// NewCodec returns the go-vcard backed engine.
func NewCodec() Codec {
	return goVCard{}
}

type goVCard struct{}

func (goVCard) Decode(r io.Reader) (vcard.Card, error) {
	c, err := vcard.NewDecoder(r).Decode()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("no vCard in input")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (goVCard) Encode(w io.Writer, c vcard.Card) error {
	if c.Get(vcard.FieldVersion) == nil {
		c.SetValue(vcard.FieldVersion, "4.0")
	}
	return vcard.NewEncoder(w).Encode(c)
}

var knownProperties = map[string]struct{}{
	"SOURCE": {}, "KIND": {}, "XML": {}, "FN": {}, "N": {}, "NICKNAME": {},
	"PHOTO": {}, "BDAY": {}, "ANNIVERSARY": {}, "GENDER": {}, "ADR": {}, "TEL": {},
	"EMAIL": {}, "IMPP": {}, "LANG": {}, "TZ": {}, "GEO": {}, "TITLE": {},
	"ROLE": {}, "LOGO": {}, "ORG": {}, "MEMBER": {}, "RELATED": {}, "CATEGORIES": {},
	"NOTE": {}, "PRODID": {}, "REV": {}, "SOUND": {}, "UID": {}, "CLIENTPIDMAP": {},
	"URL": {}, "VERSION": {}, "KEY": {}, "FBURL": {}, "CALADRURI": {}, "CALURI": {},
}

var dateValue = regexp.MustCompile(`^(\d{8}|\d{4}-\d{2}-\d{2}|--\d{4}|--\d{2}-\d{2})(T.*)?$`)

func (goVCard) Validate(c vcard.Card) error {
	if len(c) == 0 {
		return errors.New("empty card")
	}

	fn := c.Get(vcard.FieldFormattedName)
	if fn == nil || strings.TrimSpace(fn.Value) == "" {
		return errors.New("FN is required")
	}

	for name, fields := range c {
		if _, ok := knownProperties[name]; !ok && !strings.HasPrefix(name, "X-") {
			return fmt.Errorf("unknown property %s", name)
		}
		for _, f := range fields {
			if f == nil {
				return fmt.Errorf("property %s has no value", name)
			}
		}
	}

	if ns := c[vcard.FieldName]; len(ns) > 0 {
		if len(ns) > 1 {
			return errors.New("N appears more than once")
		}
		if parts := strings.Split(ns[0].Value, ";"); len(parts) != 5 {
			return fmt.Errorf("N must have 5 components, got %d", len(parts))
		}
	}

	for _, key := range []string{vcard.FieldBirthday, vcard.FieldAnniversary} {
		fields := c[key]
		if len(fields) > 1 {
			return fmt.Errorf("%s appears more than once", key)
		}
		if len(fields) == 1 && !isText(fields[0]) && !dateValue.MatchString(fields[0].Value) {
			return fmt.Errorf("%s is not a date: %q", key, fields[0].Value)
		}
	}

	return nil
}

func isText(f *vcard.Field) bool {
	return strings.EqualFold(f.Params.Get("VALUE"), "text")
}
