package order

import "context"

// Repository persists the order ledger as a single document, newest
// orders first. Absent or unreadable documents read as an empty ledger.
type Repository interface {
	List(ctx context.Context) []Order
	Save(ctx context.Context, orders []Order) error
}
