package wishlist

import "context"

// Repository persists the wishlist as a single document.
// Absent or unreadable documents read as an empty list.
type Repository interface {
	List(ctx context.Context) []Item
	Save(ctx context.Context, items []Item) error
	Clear(ctx context.Context) error
}
