package link

import (
	"net/url"
	"strings"
)

// Click is a snapshot of an anchor click, platform-independent so the
// interception decision can be tested without a DOM.
type Click struct {
	// Href is the anchor's href as written (relative or absolute).
	Href string

	// Target is the anchor's target attribute ("" or "_self" stay in-app).
	Target string

	// Download reports a download attribute on the anchor.
	Download bool

	// Button is the mouse button (0 = primary).
	Button int

	// Modifier keys. Any of them signals explicit user intent to open the
	// link in a new context, so the click is left to the browser.
	MetaKey  bool
	CtrlKey  bool
	ShiftKey bool
	AltKey   bool
}

// Resolve decides whether the click should be intercepted.
//
// origin is the page origin ("https://example.com"); hrefs on another
// origin are never intercepted. On success it returns the in-app target:
// path + search + fragment of the href.
func Resolve(c Click, origin string) (path string, ok bool) {
	if c.Href == "" || c.Download || c.Button != 0 {
		return "", false
	}
	if c.MetaKey || c.CtrlKey || c.ShiftKey || c.AltKey {
		return "", false
	}
	if c.Target != "" && !strings.EqualFold(c.Target, "_self") {
		return "", false
	}

	u, err := url.Parse(c.Href)
	if err != nil {
		return "", false
	}

	// Absolute hrefs must share the page origin. Scheme-relative hrefs
	// (//host/path) carry a host and are checked the same way.
	if u.IsAbs() || u.Host != "" {
		o, err := url.Parse(origin)
		if err != nil {
			return "", false
		}
		if u.Host != o.Host || (u.Scheme != "" && u.Scheme != o.Scheme) {
			return "", false
		}
	}
	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		// mailto:, tel:, javascript: and friends.
		return "", false
	}

	path = u.Path
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		path += "#" + u.Fragment
	}
	return path, true
}

// Attr is a rendered anchor attribute.
type Attr struct {
	Key   string
	Value string
}

// DataLink marks an anchor for router interception in frameworks that
// attach behavior via data attributes rather than a document listener.
func DataLink() Attr {
	return Attr{Key: "data-link", Value: "true"}
}

// Prefetch marks an anchor for hover prefetching.
func Prefetch() Attr {
	return Attr{Key: "data-prefetch", Value: "true"}
}
