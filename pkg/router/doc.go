// Package router implements client-side navigation routing.
//
// The router maps URL paths to handlers, extracts path parameters, and runs
// a guard/middleware/observer pipeline around every navigation attempt:
//
//   - Guards (BeforeEach) run first and can veto the navigation.
//   - Middleware runs next as an explicit chain; each middleware must call
//     next() to continue, and a middleware that silently drops the chain is
//     reported as a contract error instead of stalling navigation.
//   - The matched route handler runs last.
//   - Observers (AfterEach) are notified after the navigation commits.
//
// Routes are matched strictly in registration order and the first match
// wins; there is no specificity scoring. Catch-all routes ("*", "/404")
// must therefore be registered last.
//
//	r := router.New(router.WithHistory(adapter))
//	r.Handle("/blog/:slug", showPost)
//	r.Handle("/blog", listPosts)
//	r.Handle("*", notFound)
//	r.Use(middleware.Logging())
//	r.BeforeEach(requireSession)
//	r.Init()
//
// The router is an explicit, constructible object: applications create one
// instance and hand it to collaborators. All state is internal to the
// instance and guarded for concurrent use.
//
// Overlapping navigations are serialized by a generation counter: when a
// new attempt starts while an earlier one is suspended, the earlier
// attempt's context is cancelled and its result is discarded at commit
// time, so a slow handler can never overwrite the current route with stale
// state.
package router
