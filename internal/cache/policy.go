package cache

import "time"

// Action is the staleness policy's verdict for a lookup or update request.
type Action int

const (
	// Skip means the store is fresh enough; do nothing.
	Skip Action = iota
	// Update means the store should be refreshed before use.
	Update
	// WarnOnly means the store is stale (or absent) but auto-update is
	// disabled, so the caller should warn instead of fetching.
	WarnOnly
)

func (a Action) String() string {
	switch a {
	case Skip:
		return "skip"
	case Update:
		return "update"
	case WarnOnly:
		return "warn-only"
	}
	return "unknown"
}

// ShouldUpdate decides whether the store needs refreshing.
//
// An explicit request always updates. A store that has never been
// synchronized updates on first run (warns when auto-update is disabled).
// Otherwise the store's age is compared against maxAge: a stale store
// updates when auto-update is enabled and warns when it is not.
func ShouldUpdate(lastUpdated time.Time, ok bool, maxAge time.Duration, autoUpdate, explicit bool, now time.Time) Action {
	if explicit {
		return Update
	}

	if !ok {
		if autoUpdate {
			return Update
		}
		return WarnOnly
	}

	if now.Sub(lastUpdated) > maxAge {
		if autoUpdate {
			return Update
		}
		return WarnOnly
	}

	return Skip
}
