// Package source decides where a resource's list queries are answered.
//
// Remote sends each tablestate.ListQuery to the API and keeps recently seen
// pages in an LRU cache keyed by ListQuery.Key. Local pulls the whole
// collection once, in pages of 100, and evaluates queries in memory with a
// tablestate.TableState, so sorting and filtering are instant.
//
// Both satisfy Source; callers do not need to know which one they hold.
// Invalidate after any mutation.
package source
