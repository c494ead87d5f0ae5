// Package testutil provides scripted collaborators for store tests: an
// embedding provider with injectable results and failures, and a backend
// wrapper that records calls.
package testutil
