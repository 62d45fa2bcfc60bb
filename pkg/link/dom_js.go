//go:build js && wasm

package link

import (
	"syscall/js"

	"github.com/wayfinder-dev/wayfinder/pkg/router"
)

// Router is the slice of the router facade the interceptor drives.
type Router interface {
	Navigate(path string, opts ...router.NavigateOption) error
}

// Intercept installs a document-level click listener that converts
// qualifying anchor clicks into router navigations. The returned function
// removes the listener.
func Intercept(r Router, origin string) (stop func()) {
	document := js.Global().Get("document")

	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		event := args[0]
		anchor := closestAnchor(event.Get("target"))
		if anchor.IsUndefined() || anchor.IsNull() {
			return nil
		}

		click := Click{
			Href:     attr(anchor, "href"),
			Target:   attr(anchor, "target"),
			Download: anchor.Call("hasAttribute", "download").Bool(),
			Button:   event.Get("button").Int(),
			MetaKey:  event.Get("metaKey").Bool(),
			CtrlKey:  event.Get("ctrlKey").Bool(),
			ShiftKey: event.Get("shiftKey").Bool(),
			AltKey:   event.Get("altKey").Bool(),
		}

		path, ok := Resolve(click, origin)
		if !ok {
			return nil
		}

		event.Call("preventDefault")
		r.Navigate(path)
		return nil
	})

	document.Call("addEventListener", "click", cb)
	return func() {
		document.Call("removeEventListener", "click", cb)
		cb.Release()
	}
}

// closestAnchor walks up from el to the nearest enclosing anchor element.
func closestAnchor(el js.Value) js.Value {
	for !el.IsUndefined() && !el.IsNull() {
		tag := el.Get("tagName")
		if !tag.IsUndefined() && tag.String() == "A" {
			return el
		}
		el = el.Get("parentElement")
	}
	return js.Null()
}

func attr(el js.Value, name string) string {
	v := el.Call("getAttribute", name)
	if v.IsNull() || v.IsUndefined() {
		return ""
	}
	return v.String()
}
