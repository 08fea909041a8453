package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/teka-store/api/internal/domain"
)

// MemoryStore is an in-process DocumentStore used for local development and
// tests. A single mutex serialises every operation, so transactions compose
// read-then-write cycles without torn updates.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string]map[string]any
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string]map[string]any)}
}

// NewSeededMemoryStore returns a store bootstrapped with the sample catalog,
// orders and delivery zones.
func NewSeededMemoryStore(seed domain.SeedData) *MemoryStore {
	s := NewMemoryStore()
	for _, c := range seed.Categories {
		s.putLocked(CollectionCategories, c.ID, map[string]any{
			"name":  c.Name,
			"image": c.Image,
		})
	}
	for _, p := range seed.Products {
		s.putLocked(CollectionProducts, p.ID, map[string]any{
			"name":        p.Name,
			"description": p.Description,
			"price":       p.Price,
			"image":       p.Image,
			"categoryId":  p.CategoryID,
		})
	}
	for _, o := range seed.Orders {
		lines := make([]any, 0, len(o.Lines))
		for _, l := range o.Lines {
			lines = append(lines, map[string]any{
				"productId": l.ProductID,
				"name":      l.Name,
				"price":     l.Price,
				"quantity":  l.Quantity,
			})
		}
		s.putLocked(CollectionOrders, o.ID, map[string]any{
			"customerName": o.CustomerName,
			"city":         o.City,
			"address":      o.Address,
			"phone":        o.Phone,
			"notes":        o.Notes,
			"products":     lines,
			"totalPrice":   o.TotalPrice,
			"status":       string(o.Status),
			"date":         o.Date,
		})
	}
	for _, z := range seed.Zones {
		cities := make([]any, 0, len(z.Cities))
		for _, c := range z.Cities {
			cities = append(cities, c)
		}
		s.putLocked(CollectionZones, z.ID, map[string]any{
			"name":   z.Name,
			"cities": cities,
			"price":  z.Price,
		})
	}
	return s
}

func (s *MemoryStore) putLocked(collection, id string, data map[string]any) {
	col, ok := s.data[collection]
	if !ok {
		col = make(map[string]map[string]any)
		s.data[collection] = col
	}
	col[id] = cloneDoc(data)
}

// Get implements DocumentStore.
func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(collection, id)
}

func (s *MemoryStore) getLocked(collection, id string) (Document, error) {
	col, ok := s.data[collection]
	if !ok {
		return Document{}, fmt.Errorf("get %s/%s: %w", collection, id, ErrNotFound)
	}
	doc, ok := col[id]
	if !ok {
		return Document{}, fmt.Errorf("get %s/%s: %w", collection, id, ErrNotFound)
	}
	return Document{ID: id, Data: cloneDoc(doc)}, nil
}

// Put implements DocumentStore.
func (s *MemoryStore) Put(ctx context.Context, collection, id string, data map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putLocked(collection, id, data)
	return nil
}

// Delete implements DocumentStore.
func (s *MemoryStore) Delete(ctx context.Context, collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	col, ok := s.data[collection]
	if !ok {
		return false, nil
	}
	if _, ok := col[id]; !ok {
		return false, nil
	}
	delete(col, id)
	return true, nil
}

// ListAll implements DocumentStore.
func (s *MemoryStore) ListAll(ctx context.Context, collection string) ([]Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listAllLocked(collection)
}

func (s *MemoryStore) listAllLocked(collection string) ([]Document, error) {
	col := s.data[collection]
	docs := make([]Document, 0, len(col))
	for id, data := range col {
		docs = append(docs, Document{ID: id, Data: cloneDoc(data)})
	}
	return docs, nil
}

// RunTransaction implements DocumentStore. The whole callback runs under the
// store mutex; writes are buffered and applied only when fn returns nil.
func (s *MemoryStore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &memoryTx{store: s}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for _, w := range tx.writes {
		if w.delete {
			if col, ok := s.data[w.collection]; ok {
				delete(col, w.id)
			}
			continue
		}
		s.putLocked(w.collection, w.id, w.data)
	}
	return nil
}

type bufferedWrite struct {
	collection string
	id         string
	data       map[string]any
	delete     bool
}

type memoryTx struct {
	store  *MemoryStore
	writes []bufferedWrite
}

func (t *memoryTx) Get(collection, id string) (Document, error) {
	return t.store.getLocked(collection, id)
}

func (t *memoryTx) ListAll(collection string) ([]Document, error) {
	return t.store.listAllLocked(collection)
}

func (t *memoryTx) Put(collection, id string, data map[string]any) error {
	t.writes = append(t.writes, bufferedWrite{collection: collection, id: id, data: cloneDoc(data)})
	return nil
}

func (t *memoryTx) Delete(collection, id string) error {
	t.writes = append(t.writes, bufferedWrite{collection: collection, id: id, delete: true})
	return nil
}

func cloneDoc(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
