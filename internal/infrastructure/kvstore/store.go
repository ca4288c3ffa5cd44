package kvstore

import "context"

// Store is a JSON document store addressed by well-known string keys -
// the storefront's analog of browser local storage. Every persisted
// entity lives under one key as one JSON document.
type Store interface {
	// Get decodes the document stored under key into out and reports
	// whether a readable document existed. Absent keys and undecodable
	// documents both report false, leaving out untouched so the caller
	// keeps its fallback value. Decode failures are logged and
	// swallowed, never surfaced.
	Get(ctx context.Context, key string, out any) bool
	// Set encodes value as JSON and writes it under key. Write failures
	// are returned, not thrown.
	Set(ctx context.Context, key string, value any) error
	// Remove deletes the document under key; absent keys are a no-op
	Remove(ctx context.Context, key string) error
	// Has reports whether a document exists under key
	Has(ctx context.Context, key string) bool
	// Clear removes every document in the store
	Clear(ctx context.Context) error
}
