package vcf

import (
	"strings"

	"github.com/emersion/go-vcard"
)

// Summary holds the four views of a card shown by the UI and mirrored in the
// cache. Absent views are nil.
type Summary struct {
	Name            *string
	Birthday        *string
	Anniversary     *string
	OtherProperties int
}

// NameOr returns the name or def when absent.
func (s Summary) NameOr(def string) string {
	return deref(s.Name, def)
}

// BirthdayOr returns the birthday or def when absent.
func (s Summary) BirthdayOr(def string) string {
	return deref(s.Birthday, def)
}

// AnniversaryOr returns the anniversary or def when absent.
func (s Summary) AnniversaryOr(def string) string {
	return deref(s.Anniversary, def)
}

func deref(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

// ExtractSummary decodes the summary views of c. A released handle yields
// the zero Summary.
func (a *Adapter) ExtractSummary(c *Card) Summary {
	if c.Released() {
		return Summary{}
	}

	var s Summary
	if v := strings.TrimSpace(c.data.Value(vcard.FieldFormattedName)); v != "" {
		s.Name = &v
	}
	s.Birthday = dateView(c.data.Get(vcard.FieldBirthday))
	s.Anniversary = dateView(c.data.Get(vcard.FieldAnniversary))

	for name, fields := range c.data {
		switch name {
		case vcard.FieldFormattedName, vcard.FieldBirthday, vcard.FieldAnniversary, vcard.FieldVersion:
			continue
		}
		s.OtherProperties += len(fields)
	}
	return s
}

func dateView(f *vcard.Field) *string {
	if f == nil || strings.TrimSpace(f.Value) == "" {
		return nil
	}
	v := strings.TrimSpace(f.Value)
	if !isText(f) {
		v = NormalizeDate(v)
	}
	return &v
}

// NormalizeDate rewrites vCard date values to the dashed form the cache
// queries on: "19900615" becomes "1990-06-15" and "--0615" becomes
// "--06-15". A time part after 'T' is dropped. Anything else is returned
// unchanged.
func NormalizeDate(v string) string {
	if i := strings.IndexByte(v, 'T'); i > 0 {
		v = v[:i]
	}
	switch {
	case len(v) == 8 && allDigits(v):
		return v[:4] + "-" + v[4:6] + "-" + v[6:]
	case len(v) == 6 && strings.HasPrefix(v, "--") && allDigits(v[2:]):
		return "--" + v[2:4] + "-" + v[4:]
	}
	return v
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
