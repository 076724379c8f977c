// Package resolver turns a user query into the path of the single page that
// answers it, applying the custom-override, compound-name, platform, and
// language precedence rules.
package resolver

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/aidanlsb/qref/internal/cache"
	"github.com/aidanlsb/qref/internal/platform"
)

// Query describes one page lookup.
type Query struct {
	// Command is the command words as the user typed them, e.g.
	// ["git", "checkout"]. At least one word.
	Command []string

	// Platform is the requested platform, or platform.Other when the user
	// did not ask for one.
	Platform platform.Platform

	// CustomDir is an optional directory of user override pages,
	// consulted before the cache.
	CustomDir string
}

// Result is a successful resolution.
type Result struct {
	// Path is the page file to render.
	Path string

	// FromCustom is true when the page came from the custom pages
	// directory rather than the cache.
	FromCustom bool
}

// PageName converts command words to the page's file-name key. Subcommands
// concatenate with dashes ("git checkout" -> "git-checkout"); page names are
// case-insensitive by convention.
func PageName(words []string) string {
	return strings.ToLower(strings.Join(words, "-"))
}

// nameCandidates lists lookup keys in priority order: the full compound name
// first, then progressively shorter prefixes down to the bare command, so
// "git checkout" prefers a git-checkout page but falls back to git.
func nameCandidates(words []string) []string {
	var names []string
	for n := len(words); n >= 1; n-- {
		names = append(names, PageName(words[:n]))
	}
	return names
}

// Resolver resolves queries against a page store.
type Resolver struct {
	store *cache.Store
	host  platform.Platform
	langs []string
}

// New creates a Resolver. langs is the ordered language preference list
// ending with "" (the default language), as produced by
// config.LanguagePreferences; an explicit override belongs in the list too,
// expanded the same way (regional code before its base).
func New(store *cache.Store, host platform.Platform, langs []string) *Resolver {
	if len(langs) == 0 {
		langs = []string{""}
	}
	return &Resolver{store: store, host: host, langs: langs}
}

// Resolve returns the first page matching the query, in precedence order.
// ok is false when no page exists anywhere; that is a normal outcome, not an
// error.
func (r *Resolver) Resolve(q Query) (Result, bool) {
	names := nameCandidates(q.Command)

	// Custom pages always win, regardless of platform or staleness.
	if q.CustomDir != "" {
		for _, name := range names {
			path := filepath.Join(q.CustomDir, name+".md")
			if st, err := os.Stat(path); err == nil && st.Mode().IsRegular() {
				return Result{Path: path, FromCustom: true}, true
			}
		}
	}

	order := platform.SearchOrder(q.Platform, r.host)
	for _, name := range names {
		for _, p := range order {
			for _, lang := range r.langs {
				if path, ok := r.store.Locate(p, name, lang); ok {
					return Result{Path: path}, true
				}
			}
		}
	}

	return Result{}, false
}
