// Package platform defines the page platform tags and the fallback search
// order used when resolving a page.
package platform

import "runtime"

// Platform identifies the operating system family a page is written for.
// The zero value is Other, which has no directory of its own.
type Platform string

const (
	Common  Platform = "common"
	Linux   Platform = "linux"
	OSX     Platform = "osx"
	Windows Platform = "windows"
	SunOS   Platform = "sunos"
	Android Platform = "android"
	Other   Platform = ""
)

// Known lists every platform that has a directory in the page tree, in the
// order used as the tail of the fallback search.
var Known = []Platform{Common, Linux, OSX, Windows, SunOS, Android}

// Parse maps a user-supplied platform name to a Platform. Unknown names map
// to Other with ok=false so callers can report them.
func Parse(name string) (Platform, bool) {
	switch name {
	case "common":
		return Common, true
	case "linux":
		return Linux, true
	case "osx", "macos", "darwin":
		return OSX, true
	case "windows":
		return Windows, true
	case "sunos":
		return SunOS, true
	case "android":
		return Android, true
	}
	return Other, false
}

// Host returns the platform of the running system, or Other when the system
// has no dedicated page directory.
func Host() Platform {
	return fromGOOS(runtime.GOOS)
}

func fromGOOS(goos string) Platform {
	switch goos {
	case "linux":
		return Linux
	case "darwin":
		return OSX
	case "windows":
		return Windows
	case "solaris", "illumos":
		return SunOS
	case "android":
		return Android
	}
	return Other
}

// SearchOrder builds the platform lookup order for a query: the requested
// platform (if any), then the host platform, then common, then every other
// known platform. Duplicates are dropped, preserving first appearance, so an
// OS-specific page outranks the shared common page but a request for a
// platform with no page still falls through the rest of the list.
func SearchOrder(requested, host Platform) []Platform {
	order := make([]Platform, 0, len(Known)+1)
	seen := make(map[Platform]struct{}, len(Known)+1)
	add := func(p Platform) {
		if p == Other {
			return
		}
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		order = append(order, p)
	}

	add(requested)
	add(host)
	add(Common)
	for _, p := range Known {
		add(p)
	}
	return order
}
