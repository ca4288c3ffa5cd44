package cart

import "context"

// Repository persists the cart as a single document.
// Implementations must return an empty list when the stored document is
// absent or unreadable - cart reads never fail.
type Repository interface {
	// List returns every line currently in the cart
	List(ctx context.Context) []Item
	// Save replaces the whole cart document
	Save(ctx context.Context, items []Item) error
	// Clear removes the cart document
	Clear(ctx context.Context) error
}
