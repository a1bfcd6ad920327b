// Package repodoc resolves canonical documentation for repositories hosted
// on a GitLab instance. It probes a deterministic cascade of candidate
// sources (well-known llms.txt paths, the platform search API, a
// pre-generated blob store, README files) while respecting the platform's
// API rate limits and caching resolved results.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gitlab/, redis/, sqlite/).
package repodoc
