package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/oklog/ulid/v2"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/platform/store"
	"github.com/teka-store/api/internal/repositories"
)

// ZoneRepositoryDeps bundles the dependencies required by the zone
// repository.
type ZoneRepositoryDeps struct {
	Store       store.DocumentStore
	IDGenerator func() string
}

type zoneRepository struct {
	store store.DocumentStore
	newID func() string
}

// NewZoneRepository constructs the document-store backed delivery zone
// repository.
func NewZoneRepository(deps ZoneRepositoryDeps) (repositories.ZoneRepository, error) {
	if deps.Store == nil {
		return nil, errors.New("zone repository: store is required")
	}
	newID := deps.IDGenerator
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}
	return &zoneRepository{store: deps.Store, newID: newID}, nil
}

func (r *zoneRepository) List(ctx context.Context) ([]domain.DeliveryZone, error) {
	docs, err := r.store.ListAll(ctx, store.CollectionZones)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	zones := make([]domain.DeliveryZone, 0, len(docs))
	for _, doc := range docs {
		zones = append(zones, decodeZone(doc))
	}
	sort.Slice(zones, func(i, j int) bool { return zones[i].ID < zones[j].ID })
	return zones, nil
}

func (r *zoneRepository) GetByID(ctx context.Context, id string) (domain.DeliveryZone, error) {
	doc, err := r.store.Get(ctx, store.CollectionZones, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.DeliveryZone{}, fmt.Errorf("%w: %s", repositories.ErrZoneNotFound, id)
		}
		return domain.DeliveryZone{}, fmt.Errorf("get zone %s: %w", id, err)
	}
	return decodeZone(doc), nil
}

func (r *zoneRepository) Save(ctx context.Context, zone domain.DeliveryZone) (domain.DeliveryZone, error) {
	if zone.ID == "" {
		zone.ID = "dz_" + r.newID()
	}
	if err := r.store.Put(ctx, store.CollectionZones, zone.ID, encodeZone(zone)); err != nil {
		return domain.DeliveryZone{}, fmt.Errorf("save zone %s: %w", zone.ID, err)
	}
	return zone, nil
}

func (r *zoneRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := r.store.Delete(ctx, store.CollectionZones, id)
	if err != nil {
		return false, fmt.Errorf("delete zone %s: %w", id, err)
	}
	return removed, nil
}
