// Package store defines the pluggable document-store boundary used by all
// repositories. Implementations must not leak their backing technology:
// callers see collections of raw records plus an atomic transaction hook.
package store

import (
	"context"
	"errors"
	"fmt"
)

// Collection names used by the storefront.
const (
	CollectionOrders     = "orders"
	CollectionProducts   = "products"
	CollectionCategories = "categories"
	CollectionZones      = "deliveryZones"
	CollectionWishlists  = "wishlists"
)

var (
	// ErrNotFound reports a missing document.
	ErrNotFound = errors.New("store: document not found")
	// ErrUnavailable reports that the backing store could not be reached or
	// the write failed; the operation had no effect.
	ErrUnavailable = errors.New("store: unavailable")
)

// Document is a raw record together with its id. Data carries whatever shape
// the store returned; decoding with defaults is the repositories' job.
type Document struct {
	ID   string
	Data map[string]any
}

// Tx exposes the store operations available inside a transaction. Reads
// observe the pre-transaction snapshot; writes apply atomically on commit.
type Tx interface {
	Get(collection, id string) (Document, error)
	ListAll(collection string) ([]Document, error)
	Put(collection, id string, data map[string]any) error
	Delete(collection, id string) error
}

// DocumentStore is the persistence backend contract. Mutations must be
// serialised per store so concurrent transactions never interleave their
// read-then-write cycles.
type DocumentStore interface {
	Get(ctx context.Context, collection, id string) (Document, error)
	Put(ctx context.Context, collection, id string, data map[string]any) error
	// Delete reports whether a document was removed; deleting a missing id
	// is not an error.
	Delete(ctx context.Context, collection, id string) (bool, error)
	ListAll(ctx context.Context, collection string) ([]Document, error)
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Unavailable wraps err as a store outage for the named operation.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrUnavailable, err)
}
