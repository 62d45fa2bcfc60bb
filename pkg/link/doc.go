// Package link decides whether a document click should be handled by the
// router instead of the browser.
//
// The decision core is pure: Resolve takes a Click snapshot and the page
// origin and returns the in-app path to navigate to, or ok=false when the
// browser should keep the click (cross-origin href, explicit new-tab
// target, modifier keys, download links, non-primary buttons).
//
// Under js/wasm, Intercept installs a document-level click listener that
// walks up from the event target to the nearest anchor, applies Resolve,
// and forwards accepted clicks to the router.
package link
