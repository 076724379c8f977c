package fetch

import "fmt"

// NetworkError is a connection or timeout failure while downloading the
// archive. The store is left untouched.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("could not download %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError is a non-success response from the archive endpoint.
type HTTPError struct {
	URL    string
	Status int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("archive endpoint returned HTTP %d for %s", e.Status, e.URL)
}

// CorruptArchiveError is an integrity or format failure while unpacking the
// downloaded archive. The store is left untouched; retrying the download is
// the usual remedy.
type CorruptArchiveError struct {
	Reason string
	Err    error
}

func (e *CorruptArchiveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("corrupt page archive: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("corrupt page archive: %s", e.Reason)
}

func (e *CorruptArchiveError) Unwrap() error { return e.Err }
