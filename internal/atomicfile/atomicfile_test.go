package atomicfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFile(t *testing.T) {
	t.Run("creates new file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")

		if err := WriteFile(path, []byte("hello"), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "hello" {
			t.Fatalf("expected %q, got %q", "hello", string(data))
		}
	})

	t.Run("replaces existing file", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")
		if err := os.WriteFile(path, []byte("old"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := WriteFile(path, []byte("new"), 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, _ := os.ReadFile(path)
		if string(data) != "new" {
			t.Fatalf("expected %q, got %q", "new", string(data))
		}
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "out.txt")
		if err := WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
	})
}

func TestReplaceDir(t *testing.T) {
	writeTree := func(t *testing.T, root string, files map[string]string) {
		t.Helper()
		for rel, content := range files {
			full := filepath.Join(root, rel)
			if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}

	t.Run("installs when destination missing", func(t *testing.T) {
		dir := t.TempDir()
		staged := filepath.Join(dir, "staged")
		dest := filepath.Join(dir, "pages")
		writeTree(t, staged, map[string]string{"common/tar.md": "# tar"})

		if err := ReplaceDir(dest, staged); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dest, "common", "tar.md"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != "# tar" {
			t.Fatalf("expected %q, got %q", "# tar", string(data))
		}
	})

	t.Run("replaces existing tree entirely", func(t *testing.T) {
		dir := t.TempDir()
		staged := filepath.Join(dir, "staged")
		dest := filepath.Join(dir, "pages")
		writeTree(t, dest, map[string]string{"common/old.md": "old", "linux/gone.md": "gone"})
		writeTree(t, staged, map[string]string{"common/new.md": "new"})

		if err := ReplaceDir(dest, staged); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if _, err := os.Stat(filepath.Join(dest, "linux", "gone.md")); !os.IsNotExist(err) {
			t.Fatal("expected old tree contents to be gone")
		}
		if _, err := os.Stat(filepath.Join(dest, "common", "new.md")); err != nil {
			t.Fatalf("expected new tree contents: %v", err)
		}
	})

	t.Run("removes aside directory after swap", func(t *testing.T) {
		dir := t.TempDir()
		staged := filepath.Join(dir, "staged")
		dest := filepath.Join(dir, "pages")
		writeTree(t, dest, map[string]string{"common/a.md": "a"})
		writeTree(t, staged, map[string]string{"common/b.md": "b"})

		if err := ReplaceDir(dest, staged); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || entries[0].Name() != "pages" {
			t.Fatalf("expected only pages dir, got %v", entries)
		}
	})
}
