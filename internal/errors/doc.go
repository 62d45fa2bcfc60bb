// Package errors provides structured, actionable error messages for the
// wayfinder CLI.
//
// Each error carries a stable code (e.g., "E101") that maps to a short
// message, a detailed explanation, and a documentation URL. Errors are
// organized into categories:
//   - config: wayfinder.json problems (missing file, bad values)
//   - build: build output problems (missing dist, missing index.html)
//   - deploy: upload and credential problems
//   - cli: command usage problems
//
// # Usage
//
//	err := errors.New("E100").
//	    WithDetail("No wayfinder.json found in " + dir).
//	    WithSuggestion("Create wayfinder.json in the project root")
//
//	errors.PrintError(err)
package errors
