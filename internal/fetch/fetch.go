// Package fetch downloads the compressed page archive, verifies it, and
// installs it into the page store via an atomic swap.
package fetch

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aidanlsb/qref/internal/cache"
	"github.com/aidanlsb/qref/internal/platform"
)

// DefaultTimeout bounds the whole download, including the response body.
const DefaultTimeout = 30 * time.Second

// maxArchiveBytes caps the decompressed archive size (decompression bomb
// guard). The full page corpus is a few tens of megabytes.
const maxArchiveBytes = 256 << 20

// Fetcher retrieves page archives over HTTP.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for the archive download.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// New creates a Fetcher. Standard proxy environment variables
// (HTTP_PROXY, HTTPS_PROXY, NO_PROXY) are honored.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
		},
	}

	return f
}

// Fetch downloads the archive at url. It returns a NetworkError for
// connection or timeout failures and an HTTPError for non-success responses.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &HTTPError{URL: url, Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	log.Debug("downloaded page archive", "url", url, "bytes", len(body))
	return body, nil
}

// ExtractTo decompresses and unpacks the archive into destDir, which must be
// an empty staging directory. The archive is a gzip-compressed tar of
// platform directories, optionally wrapped in a single "pages" root, which
// is stripped. Gzip checksum failures, malformed tar entries, and entry
// paths escaping destDir all yield a CorruptArchiveError.
func ExtractTo(raw []byte, destDir string) error {
	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return &CorruptArchiveError{Reason: "not a gzip stream", Err: err}
	}
	defer gz.Close()

	tr := tar.NewReader(io.LimitReader(gz, maxArchiveBytes))
	written := false
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return &CorruptArchiveError{Reason: "reading tar", Err: err}
		}

		rel, ok := entryPath(hdr.Name)
		if !ok {
			continue
		}

		dest := filepath.Join(destDir, filepath.FromSlash(rel))
		if !strings.HasPrefix(dest, filepath.Clean(destDir)+string(os.PathSeparator)) {
			return &CorruptArchiveError{Reason: "entry escapes archive root: " + hdr.Name}
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(dest, 0o755); err != nil {
				return &cache.IOError{Op: "extract", Path: dest, Err: err}
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				return &cache.IOError{Op: "extract", Path: dest, Err: err}
			}
			if err := writeEntry(dest, tr); err != nil {
				return err
			}
			written = true
		}
		// Symlinks and other entry types are ignored.
	}

	if !written {
		return &CorruptArchiveError{Reason: "archive contains no pages"}
	}
	if !hasPlatformDir(destDir) {
		return &CorruptArchiveError{Reason: "archive has no platform directories"}
	}
	return nil
}

func writeEntry(dest string, r io.Reader) error {
	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return &cache.IOError{Op: "extract", Path: dest, Err: err}
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return &CorruptArchiveError{Reason: "truncated entry " + filepath.Base(dest), Err: err}
	}
	if err := out.Close(); err != nil {
		return &cache.IOError{Op: "extract", Path: dest, Err: err}
	}
	return nil
}

// entryPath normalizes a tar entry name to a path relative to the page tree
// root, stripping a leading "pages/" wrapper when present. Returns ok=false
// for entries outside the page tree (e.g. archive-level readme files).
func entryPath(name string) (string, bool) {
	rel := strings.TrimPrefix(filepath.ToSlash(name), "./")
	rel = strings.TrimPrefix(rel, "pages/")
	if rel == "" || rel == "pages" {
		return "", false
	}
	top, _, _ := strings.Cut(rel, "/")
	if _, ok := platform.Parse(top); !ok {
		return "", false
	}
	return rel, true
}

func hasPlatformDir(dir string) bool {
	for _, p := range platform.Known {
		if st, err := os.Stat(filepath.Join(dir, string(p))); err == nil && st.IsDir() {
			return true
		}
	}
	return false
}

// Update downloads the archive at url and atomically replaces the store
// contents. Idempotent and safe to retry: a failure at any stage leaves the
// previously installed store usable.
func Update(ctx context.Context, f *Fetcher, store *cache.Store, url string) error {
	raw, err := f.Fetch(ctx, url)
	if err != nil {
		return err
	}

	staged, err := store.Stage()
	if err != nil {
		return err
	}
	defer os.RemoveAll(staged)

	if err := ExtractTo(raw, staged); err != nil {
		return err
	}

	if err := store.Replace(staged, time.Now()); err != nil {
		return err
	}

	log.Debug("page store updated", "root", store.Root())
	return nil
}

// IsRetryable reports whether err is a transient fetch failure (network,
// HTTP, or corrupt download) rather than a local store problem.
func IsRetryable(err error) bool {
	var netErr *NetworkError
	var httpErr *HTTPError
	var corruptErr *CorruptArchiveError
	return errors.As(err, &netErr) || errors.As(err, &httpErr) || errors.As(err, &corruptErr)
}
