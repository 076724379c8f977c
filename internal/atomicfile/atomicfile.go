// Package atomicfile provides atomic replacement primitives for files and
// directory trees. Both work the same way: write (or stage) next to the
// destination, then rename into place so readers never observe a torn state.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes data to path atomically (best-effort cross-platform).
//
// It writes to a temporary file in the same directory and renames it into
// place. This avoids torn writes if the process crashes mid-write.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	if perm == 0 {
		if st, err := os.Stat(path); err == nil {
			perm = st.Mode()
		} else {
			perm = 0o644
		}
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	// Best-effort; some platforms/filesystems may not support chmod here.
	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// On Windows, renaming over an existing file fails. Remove first (not atomic).
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}

// ReplaceDir replaces the directory at path with the fully-populated tree at
// stagedPath. stagedPath must live on the same filesystem as path (stage it
// in a sibling directory) so the final rename is a single atomic operation.
//
// When path already exists, rename-over-directory is not portable, so the old
// tree is first moved aside and the staged tree renamed into place. The
// residual race window is the gap between those two renames; a concurrent
// reader in that window sees a missing directory, never a partial one. The
// aside tree is removed after the swap, and restored if the second rename
// fails, so a failed swap leaves the original tree in place.
func ReplaceDir(path, stagedPath string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create parent directory: %w", err)
		}
		if err := os.Rename(stagedPath, path); err != nil {
			return fmt.Errorf("install staged directory: %w", err)
		}
		return nil
	}

	aside := path + ".old-" + filepath.Base(stagedPath)
	if err := os.Rename(path, aside); err != nil {
		return fmt.Errorf("move old directory aside: %w", err)
	}

	if err := os.Rename(stagedPath, path); err != nil {
		// Put the old tree back so the failure leaves the store usable.
		if err2 := os.Rename(aside, path); err2 != nil {
			return fmt.Errorf("install staged directory (old tree stranded at %s): %w", aside, err)
		}
		return fmt.Errorf("install staged directory: %w", err)
	}

	if err := os.RemoveAll(aside); err != nil {
		return fmt.Errorf("remove old directory: %w", err)
	}
	return nil
}
