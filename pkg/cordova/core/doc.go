// Package core provides the platform-independent base client that every
// platform adapter composes with.
//
// The base client owns the generic event pipeline: it fills event identity
// and option defaults, merges the caller's scope, applies scrubbing and
// fingerprinting, runs the BeforeSend hook and hands the result to a
// platform Backend. Platform adapters customize the pipeline by registering
// an EventPreparer that enriches the event and then delegates back to
// (*BaseClient).PrepareEvent.
//
// # Core Components
//
//   - BaseClient: the generic client; capture entry points and PrepareEvent
//   - EventPreparer: the preparation capability adapters implement
//   - Backend: platform-specific event construction and delivery
//   - Transport: destination for prepared events (noop, stderr, async, multi, http)
//   - Scrubber: redacts sensitive data with fail-closed behavior
//
// Event, Scope, EventHint and Dsn are the sentry-go types; this package never
// reimplements scope merging, breadcrumbs or envelope delivery.
package core
