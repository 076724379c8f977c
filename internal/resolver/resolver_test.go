package resolver

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aidanlsb/qref/internal/cache"
	"github.com/aidanlsb/qref/internal/platform"
)

// newStore builds a store whose page tree contains the given files, keyed by
// "<platform>/<file>".
func newStore(t *testing.T, files map[string]string) *cache.Store {
	t.Helper()
	s := cache.New(filepath.Join(t.TempDir(), "qref"))
	staged, err := s.Stage()
	if err != nil {
		t.Fatal(err)
	}
	for rel, content := range files {
		full := filepath.Join(staged, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Replace(staged, time.Now()); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPageName(t *testing.T) {
	tests := []struct {
		name     string
		words    []string
		expected string
	}{
		{name: "single word", words: []string{"tar"}, expected: "tar"},
		{name: "subcommand", words: []string{"git", "checkout"}, expected: "git-checkout"},
		{name: "case folded", words: []string{"Git", "Checkout"}, expected: "git-checkout"},
		{name: "three words", words: []string{"git", "stash", "pop"}, expected: "git-stash-pop"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := PageName(tt.words); got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestResolvePlatformOrder(t *testing.T) {
	store := newStore(t, map[string]string{
		"linux/tar.md":  "# tar (linux)",
		"common/tar.md": "# tar (common)",
	})

	t.Run("host platform beats common", func(t *testing.T) {
		r := New(store, platform.Linux, nil)
		res, ok := r.Resolve(Query{Command: []string{"tar"}})
		if !ok {
			t.Fatal("expected a page")
		}
		if filepath.Base(filepath.Dir(res.Path)) != "linux" {
			t.Fatalf("expected linux page, got %s", res.Path)
		}
	})

	t.Run("requested platform without page falls through to host", func(t *testing.T) {
		// osx has no tar page here; the linux host page outranks common.
		r := New(store, platform.Linux, nil)
		res, ok := r.Resolve(Query{Command: []string{"tar"}, Platform: platform.OSX})
		if !ok {
			t.Fatal("expected a page")
		}
		if filepath.Base(filepath.Dir(res.Path)) != "linux" {
			t.Fatalf("expected linux page, got %s", res.Path)
		}
	})

	t.Run("common when host has no page", func(t *testing.T) {
		r := New(store, platform.Windows, nil)
		res, ok := r.Resolve(Query{Command: []string{"tar"}})
		if !ok {
			t.Fatal("expected a page")
		}
		if filepath.Base(filepath.Dir(res.Path)) != "common" {
			t.Fatalf("expected common page, got %s", res.Path)
		}
	})

	t.Run("not found", func(t *testing.T) {
		r := New(store, platform.Linux, nil)
		if _, ok := r.Resolve(Query{Command: []string{"nonexistent"}}); ok {
			t.Fatal("expected no page")
		}
	})
}

func TestResolveCompoundNames(t *testing.T) {
	store := newStore(t, map[string]string{
		"common/git.md":          "# git",
		"common/git-checkout.md": "# git checkout",
	})
	r := New(store, platform.Linux, nil)

	t.Run("compound page wins", func(t *testing.T) {
		res, ok := r.Resolve(Query{Command: []string{"git", "checkout"}})
		if !ok {
			t.Fatal("expected a page")
		}
		if filepath.Base(res.Path) != "git-checkout.md" {
			t.Fatalf("expected compound page, got %s", res.Path)
		}
	})

	t.Run("falls back to bare command", func(t *testing.T) {
		res, ok := r.Resolve(Query{Command: []string{"git", "unknown-sub"}})
		if !ok {
			t.Fatal("expected a page")
		}
		if filepath.Base(res.Path) != "git.md" {
			t.Fatalf("expected bare git page, got %s", res.Path)
		}
	})
}

func TestResolveCustomOverride(t *testing.T) {
	store := newStore(t, map[string]string{
		"common/grep.md": "# grep (cache)",
	})
	custom := t.TempDir()
	if err := os.WriteFile(filepath.Join(custom, "grep.md"), []byte("# grep (custom)"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := New(store, platform.Linux, nil)

	t.Run("custom page wins over cache", func(t *testing.T) {
		res, ok := r.Resolve(Query{Command: []string{"grep"}, CustomDir: custom})
		if !ok {
			t.Fatal("expected a page")
		}
		if !res.FromCustom {
			t.Fatal("expected the custom page")
		}
		data, _ := os.ReadFile(res.Path)
		if string(data) != "# grep (custom)" {
			t.Fatalf("expected custom content, got %q", string(data))
		}
	})

	t.Run("custom wins regardless of requested platform", func(t *testing.T) {
		res, ok := r.Resolve(Query{Command: []string{"grep"}, Platform: platform.OSX, CustomDir: custom})
		if !ok || !res.FromCustom {
			t.Fatal("expected the custom page")
		}
	})

	t.Run("cache still serves other pages", func(t *testing.T) {
		store2 := newStore(t, map[string]string{"common/sed.md": "# sed"})
		r2 := New(store2, platform.Linux, nil)
		res, ok := r2.Resolve(Query{Command: []string{"sed"}, CustomDir: custom})
		if !ok {
			t.Fatal("expected a page")
		}
		if res.FromCustom {
			t.Fatal("expected the cache page")
		}
	})
}

func TestResolveLanguage(t *testing.T) {
	store := newStore(t, map[string]string{
		"common/tar.md":       "# tar",
		"common/tar.fr.md":    "# tar (fr)",
		"common/tar.pt_BR.md": "# tar (pt_BR)",
	})

	t.Run("preference list narrows selection", func(t *testing.T) {
		r := New(store, platform.Linux, []string{"fr", ""})
		res, ok := r.Resolve(Query{Command: []string{"tar"}})
		if !ok {
			t.Fatal("expected a page")
		}
		if filepath.Base(res.Path) != "tar.fr.md" {
			t.Fatalf("expected fr page, got %s", res.Path)
		}
	})

	t.Run("regional before base before default", func(t *testing.T) {
		r := New(store, platform.Linux, []string{"pt_BR", "pt", ""})
		res, ok := r.Resolve(Query{Command: []string{"tar"}})
		if !ok {
			t.Fatal("expected a page")
		}
		if filepath.Base(res.Path) != "tar.pt_BR.md" {
			t.Fatalf("expected pt_BR page, got %s", res.Path)
		}
	})

	t.Run("unknown language falls back silently", func(t *testing.T) {
		r := New(store, platform.Linux, []string{"de", ""})
		res, ok := r.Resolve(Query{Command: []string{"tar"}})
		if !ok {
			t.Fatal("expected a page")
		}
		if filepath.Base(res.Path) != "tar.md" {
			t.Fatalf("expected default page, got %s", res.Path)
		}
	})

	t.Run("regional request falls back to base language", func(t *testing.T) {
		// Only the base-language variant exists; a pt_BR preference must
		// still land on it before the default page.
		store2 := newStore(t, map[string]string{
			"common/tar.md":    "# tar",
			"common/tar.pt.md": "# tar (pt)",
		})
		r := New(store2, platform.Linux, []string{"pt_BR", "pt", ""})
		res, ok := r.Resolve(Query{Command: []string{"tar"}})
		if !ok {
			t.Fatal("expected a page")
		}
		if filepath.Base(res.Path) != "tar.pt.md" {
			t.Fatalf("expected pt page, got %s", res.Path)
		}
	})
}
