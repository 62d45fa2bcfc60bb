// Package history abstracts the browser address bar and history stack.
//
// An Adapter exposes two operations to the router, CurrentPath and Write,
// plus a change signal for back/forward traversal, in one of two addressing
// modes selected at construction:
//
//   - ModePath: the application location is pathname+search; writes use
//     pushState/replaceState and changes arrive via popstate.
//   - ModeFragment: the application location is the URL fragment (defaulting
//     to "/" when empty); writes assign the fragment and changes arrive via
//     hashchange.
//
// Both modes sit on a Platform, the minimal window surface the adapter
// needs. NewBrowser provides the real one under js/wasm; NewMemory provides
// an in-process history stack for tests and non-browser hosts.
package history
