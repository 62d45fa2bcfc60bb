// Package devsrv implements the wayfinder development server.
//
// The server serves a built application from the configured dist
// directory. In history routing mode, requests for application paths
// that match no file fall back to index.html so deep links boot the app.
// When hot reload is enabled, a polling file watcher broadcasts reload
// messages over a websocket to every connected browser, and the reload
// client script is injected into served HTML.
package devsrv
