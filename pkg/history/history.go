package history

// Mode selects how the application location is represented in the address
// bar.
type Mode int

const (
	// ModePath uses pathname+search and the platform history stack.
	ModePath Mode = iota

	// ModeFragment keeps the application location in the URL fragment.
	ModeFragment
)

func (m Mode) String() string {
	switch m {
	case ModePath:
		return "path"
	case ModeFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Location is a decomposed platform location.
type Location struct {
	// Pathname is the path portion, always starting with "/".
	Pathname string

	// Search is the query string including the leading "?", or "".
	Search string

	// Fragment is the fragment without the leading "#", or "".
	Fragment string
}

// Platform is the minimal window surface the adapter needs.
//
// Programmatic writes (Push, Replace, SetFragment) must not fire the change
// callbacks; only history traversal does. This mirrors pushState semantics,
// which never emit popstate for the write itself, and avoids re-dispatching
// a navigation the router already performed.
type Platform interface {
	// Location returns the current decomposed location.
	Location() Location

	// Push appends a history entry for path (which may carry a query string
	// and fragment).
	Push(path string)

	// Replace replaces the current history entry with path.
	Replace(path string)

	// SetFragment assigns the fragment portion of the current URL, pushing
	// a history entry unless replace is set.
	SetFragment(fragment string, replace bool)

	// OnPopState subscribes to history traversal in path terms.
	OnPopState(fn func()) (stop func())

	// OnFragmentChange subscribes to fragment changes caused by traversal.
	OnFragmentChange(fn func()) (stop func())

	// Go moves delta entries through the history stack.
	Go(delta int)
}

// Adapter presents a mode-agnostic location surface to the router.
// It satisfies the router.History interface.
type Adapter struct {
	mode     Mode
	platform Platform
}

// New creates an adapter for the given mode over the given platform.
func New(mode Mode, platform Platform) *Adapter {
	return &Adapter{mode: mode, platform: platform}
}

// Mode returns the adapter's addressing mode.
func (a *Adapter) Mode() Mode {
	return a.mode
}

// CurrentPath returns the application-visible path for the current
// location, including any query string.
func (a *Adapter) CurrentPath() string {
	loc := a.platform.Location()
	if a.mode == ModeFragment {
		if loc.Fragment == "" {
			return "/"
		}
		return loc.Fragment
	}
	return loc.Pathname + loc.Search
}

// Write materializes path in the address bar, replacing the current history
// entry when replace is set and pushing a new one otherwise.
func (a *Adapter) Write(path string, replace bool) {
	if a.mode == ModeFragment {
		a.platform.SetFragment(path, replace)
		return
	}
	if replace {
		a.platform.Replace(path)
		return
	}
	a.platform.Push(path)
}

// Listen subscribes to externally triggered location changes and reports
// the new application path. The returned function removes the
// subscription.
func (a *Adapter) Listen(fn func(path string)) (stop func()) {
	notify := func() {
		fn(a.CurrentPath())
	}
	if a.mode == ModeFragment {
		return a.platform.OnFragmentChange(notify)
	}
	return a.platform.OnPopState(notify)
}

// Back moves one entry back in platform history.
func (a *Adapter) Back() {
	a.platform.Go(-1)
}

// Forward moves one entry forward in platform history.
func (a *Adapter) Forward() {
	a.platform.Go(1)
}

// Go moves delta entries through platform history.
func (a *Adapter) Go(delta int) {
	a.platform.Go(delta)
}
