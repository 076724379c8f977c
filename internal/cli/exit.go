package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/aidanlsb/qref/internal/cache"
	"github.com/aidanlsb/qref/internal/fetch"
	"github.com/aidanlsb/qref/internal/ui"
)

// Exit statuses, one per failure category, so callers and scripts can tell
// outcomes apart.
const (
	ExitOK             = 0
	ExitFailure        = 1 // page not found, bad usage, other errors
	ExitNetwork        = 2
	ExitHTTP           = 3
	ExitCorruptArchive = 4
	ExitStoreIO        = 5
)

// errNotFound marks the page-not-found outcome. The user message is printed
// where the lookup fails; this sentinel only selects the exit status.
var errNotFound = errors.New("page not found")

// Execute runs the CLI and returns the process exit status.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return ExitOK
	}

	if !errors.Is(err, errNotFound) {
		fmt.Fprintln(os.Stderr, ui.Errorf("%v", err))
		if fetch.IsRetryable(err) {
			fmt.Fprintln(os.Stderr, ui.Hint("This may be transient; try again in a moment."))
		}
	}
	return exitCodeFor(err)
}

func exitCodeFor(err error) int {
	var (
		netErr     *fetch.NetworkError
		httpErr    *fetch.HTTPError
		corruptErr *fetch.CorruptArchiveError
		ioErr      *cache.IOError
	)
	switch {
	case errors.As(err, &netErr):
		return ExitNetwork
	case errors.As(err, &httpErr):
		return ExitHTTP
	case errors.As(err, &corruptErr):
		return ExitCorruptArchive
	case errors.As(err, &ioErr):
		return ExitStoreIO
	}
	return ExitFailure
}
