//go:build js && wasm

package history

import (
	"strings"
	"syscall/js"
)

// Browser is the Platform backed by the real window object.
type Browser struct {
	window   js.Value
	location js.Value
	history  js.Value
}

// NewBrowser creates a platform over js.Global().
func NewBrowser() *Browser {
	window := js.Global()
	return &Browser{
		window:   window,
		location: window.Get("location"),
		history:  window.Get("history"),
	}
}

// Origin returns the page origin (scheme://host[:port]) for link
// interception checks.
func (b *Browser) Origin() string {
	return b.location.Get("origin").String()
}

// Location implements Platform.
func (b *Browser) Location() Location {
	return Location{
		Pathname: b.location.Get("pathname").String(),
		Search:   b.location.Get("search").String(),
		Fragment: strings.TrimPrefix(b.location.Get("hash").String(), "#"),
	}
}

// Push implements Platform.
func (b *Browser) Push(path string) {
	b.history.Call("pushState", js.Null(), "", path)
}

// Replace implements Platform.
func (b *Browser) Replace(path string) {
	b.history.Call("replaceState", js.Null(), "", path)
}

// SetFragment implements Platform.
// Both forms go through the History API rather than assigning
// location.hash: pushState/replaceState never fire hashchange, which keeps
// the Platform contract that programmatic writes emit no change signal.
func (b *Browser) SetFragment(fragment string, replace bool) {
	url := b.location.Get("pathname").String() + b.location.Get("search").String() + "#" + fragment
	if replace {
		b.history.Call("replaceState", js.Null(), "", url)
		return
	}
	b.history.Call("pushState", js.Null(), "", url)
}

// OnPopState implements Platform.
func (b *Browser) OnPopState(fn func()) (stop func()) {
	return b.listen("popstate", fn)
}

// OnFragmentChange implements Platform.
func (b *Browser) OnFragmentChange(fn func()) (stop func()) {
	return b.listen("hashchange", fn)
}

func (b *Browser) listen(event string, fn func()) (stop func()) {
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	b.window.Call("addEventListener", event, cb)
	return func() {
		b.window.Call("removeEventListener", event, cb)
		cb.Release()
	}
}

// Go implements Platform.
func (b *Browser) Go(delta int) {
	b.history.Call("go", delta)
}
