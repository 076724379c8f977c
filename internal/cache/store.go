// Package cache owns the on-disk page store: a directory of pages organized
// by platform, plus a metadata record of when the store was last synchronized.
//
// Layout under the store root:
//
//	pages/<platform>/<name>.md         default-language page
//	pages/<platform>/<name>.<lang>.md  translated page
//	pages/last_update.toml             metadata record
//
// The metadata record lives inside the pages tree, and the tree is only ever
// replaced wholesale via an atomic directory swap, so concurrent readers see
// either the old pages with the old timestamp or the new pages with the new
// one, never a mix.
package cache

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/qref/internal/atomicfile"
	"github.com/aidanlsb/qref/internal/platform"
)

const (
	pagesDirName = "pages"
	metadataName = "last_update.toml"
)

// IOError is a local filesystem failure during a store read or swap. It is
// fatal for the current operation.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("cache %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Store is the cache persistence layer for pages.
type Store struct {
	root string
}

// New creates a Store rooted at dir. The directory need not exist yet; it is
// created on the first Replace.
func New(dir string) *Store {
	return &Store{root: dir}
}

// Root returns the store's root directory.
func (s *Store) Root() string { return s.root }

// PagesDir returns the directory holding the page tree.
func (s *Store) PagesDir() string { return filepath.Join(s.root, pagesDirName) }

func (s *Store) metadataPath() string { return filepath.Join(s.PagesDir(), metadataName) }

// PagePath returns the path a page would have in the store, without checking
// existence. lang is empty for the default language.
func PagePath(dir string, p platform.Platform, name, lang string) string {
	file := name + ".md"
	if lang != "" {
		file = name + "." + lang + ".md"
	}
	return filepath.Join(dir, string(p), file)
}

// Locate returns the path of the page for (platform, name, lang) if it
// exists in the store. Pure lookup: no network access, no mutation.
func (s *Store) Locate(p platform.Platform, name, lang string) (string, bool) {
	path := PagePath(s.PagesDir(), p, name, lang)
	st, err := os.Stat(path)
	if err != nil || !st.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// metadata is the on-disk metadata record.
type metadata struct {
	LastUpdated time.Time `toml:"last_updated"`
}

// Replace atomically swaps the entire page tree for the fully-populated tree
// at stagedTree and records fetchedAt as the last update time. stagedTree
// must be on the same filesystem as the store root; Stage provides such a
// location. The metadata record is written into the staged tree before the
// swap, so the pages and the timestamp commit in the same rename; on failure
// the previous tree and metadata are left intact.
func (s *Store) Replace(stagedTree string, fetchedAt time.Time) error {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return &IOError{Op: "create root", Path: s.root, Err: err}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(metadata{LastUpdated: fetchedAt.UTC()}); err != nil {
		return &IOError{Op: "encode metadata", Path: s.metadataPath(), Err: err}
	}
	stagedMeta := filepath.Join(stagedTree, metadataName)
	if err := os.WriteFile(stagedMeta, buf.Bytes(), 0o644); err != nil {
		return &IOError{Op: "write metadata", Path: stagedMeta, Err: err}
	}

	if err := atomicfile.ReplaceDir(s.PagesDir(), stagedTree); err != nil {
		return &IOError{Op: "swap", Path: s.PagesDir(), Err: err}
	}
	return nil
}

// Stage creates a process-unique staging directory next to the page tree,
// suitable for extracting a new tree before handing it to Replace. Concurrent
// updaters each get their own staging path so they cannot corrupt each other.
func (s *Store) Stage() (string, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return "", &IOError{Op: "create root", Path: s.root, Err: err}
	}
	dir, err := os.MkdirTemp(s.root, "."+pagesDirName+".staging-*")
	if err != nil {
		return "", &IOError{Op: "create staging dir", Path: s.root, Err: err}
	}
	return dir, nil
}

// LastUpdated reads the metadata record. ok is false when the store has
// never been synchronized (or the record is unreadable).
func (s *Store) LastUpdated() (time.Time, bool) {
	var m metadata
	if _, err := toml.DecodeFile(s.metadataPath(), &m); err != nil {
		return time.Time{}, false
	}
	if m.LastUpdated.IsZero() {
		return time.Time{}, false
	}
	return m.LastUpdated, true
}

// Clear removes all cached pages and metadata. Safe to call when the store
// does not yet exist.
func (s *Store) Clear() error {
	if err := os.RemoveAll(s.PagesDir()); err != nil {
		return &IOError{Op: "clear", Path: s.PagesDir(), Err: err}
	}
	return nil
}

// ListPages returns the sorted, de-duplicated names of all pages visible
// under the given platforms (typically the host's search order). Language
// variants collapse onto the page name.
func (s *Store) ListPages(platforms []platform.Platform) ([]string, error) {
	seen := make(map[string]struct{})

	for _, p := range platforms {
		dir := filepath.Join(s.PagesDir(), string(p))
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, &IOError{Op: "list", Path: dir, Err: err}
		}
		for _, e := range entries {
			name, ok := pageName(e.Name())
			if !ok || e.IsDir() {
				continue
			}
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// pageName strips the ".md" extension and any language suffix from a page
// file name. Returns ok=false for files that are not pages.
func pageName(file string) (string, bool) {
	name, ok := strings.CutSuffix(file, ".md")
	if !ok || name == "" {
		return "", false
	}
	// A trailing ".xx" or ".xx_YY" component is a language suffix.
	if i := strings.LastIndex(name, "."); i > 0 {
		if isLangCode(name[i+1:]) {
			name = name[:i]
		}
	}
	return name, true
}

func isLangCode(s string) bool {
	base, region, hasRegion := strings.Cut(s, "_")
	if len(base) < 2 || len(base) > 3 {
		return false
	}
	for _, r := range base {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	if !hasRegion {
		return true
	}
	if len(region) != 2 {
		return false
	}
	for _, r := range region {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
