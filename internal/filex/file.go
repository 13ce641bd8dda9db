// Package filex holds the file-system helpers used by the contact shell:
// listing card files in a directory and probing whether a path exists.
package filex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"
)

// Entry is one regular file found by ListBySuffix.
type Entry struct {
	Name    string
	ModTime time.Time
}

// ListBySuffix returns the regular files in dir whose name ends with suffix
// (case-sensitive), sorted by name. A missing directory is reported with an
// error wrapping fs.ErrNotExist.
func ListBySuffix(dir, suffix string) ([]Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	out := make([]Entry, 0, len(des))
	for _, de := range des {
		if de.IsDir() || !strings.HasSuffix(de.Name(), suffix) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			// removed between ReadDir and Info
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", de.Name(), err)
		}
		if !info.Mode().IsRegular() {
			continue
		}
		out = append(out, Entry{Name: de.Name(), ModTime: info.ModTime()})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Exists reports whether path exists. Errors other than "not exist" are
// returned to the caller.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("stat %s: %w", path, err)
}
