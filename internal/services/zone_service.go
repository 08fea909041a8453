package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/repositories"
)

var (
	// ErrZoneInvalidInput indicates the caller supplied invalid zone
	// parameters.
	ErrZoneInvalidInput = errors.New("zone: invalid input")
	// ErrZoneNotFound indicates the requested delivery zone does not exist.
	ErrZoneNotFound = errors.New("zone: not found")
	// ErrZoneCityConflict indicates a city already belongs to another zone.
	ErrZoneCityConflict = errors.New("zone: city already assigned")
)

// ZoneService manages the delivery zone configuration.
type ZoneService interface {
	List(ctx context.Context) ([]domain.DeliveryZone, error)
	GetByID(ctx context.Context, id string) (domain.DeliveryZone, error)
	Save(ctx context.Context, zone domain.DeliveryZone) (domain.DeliveryZone, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ZoneServiceDeps bundles collaborators required to construct a zone service
// instance.
type ZoneServiceDeps struct {
	Repository repositories.ZoneRepository
}

type zoneService struct {
	repo repositories.ZoneRepository
}

// NewZoneService constructs the delivery zone service.
func NewZoneService(deps ZoneServiceDeps) (ZoneService, error) {
	if deps.Repository == nil {
		return nil, errors.New("zone service: repository is required")
	}
	return &zoneService{repo: deps.Repository}, nil
}

func (s *zoneService) List(ctx context.Context) ([]domain.DeliveryZone, error) {
	return s.repo.List(ctx)
}

func (s *zoneService) GetByID(ctx context.Context, id string) (domain.DeliveryZone, error) {
	zone, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrZoneNotFound) {
			return domain.DeliveryZone{}, fmt.Errorf("%w: %s", ErrZoneNotFound, id)
		}
		return domain.DeliveryZone{}, err
	}
	return zone, nil
}

// Save validates the zone and enforces the city-uniqueness invariant: every
// city belongs to at most one zone.
func (s *zoneService) Save(ctx context.Context, zone domain.DeliveryZone) (domain.DeliveryZone, error) {
	zone.Name = strings.TrimSpace(zone.Name)
	if zone.Name == "" {
		return domain.DeliveryZone{}, fmt.Errorf("%w: zone name is required", ErrZoneInvalidInput)
	}
	if len(zone.Cities) == 0 {
		return domain.DeliveryZone{}, fmt.Errorf("%w: at least one city is required", ErrZoneInvalidInput)
	}
	if zone.Price < 0 {
		return domain.DeliveryZone{}, fmt.Errorf("%w: price must not be negative", ErrZoneInvalidInput)
	}
	cities := make([]string, 0, len(zone.Cities))
	for _, city := range zone.Cities {
		city = strings.TrimSpace(city)
		if city != "" {
			cities = append(cities, city)
		}
	}
	zone.Cities = cities

	existing, err := s.repo.List(ctx)
	if err != nil {
		return domain.DeliveryZone{}, err
	}
	for _, other := range existing {
		if other.ID == zone.ID {
			continue
		}
		for _, city := range zone.Cities {
			for _, taken := range other.Cities {
				if strings.EqualFold(city, taken) {
					return domain.DeliveryZone{}, fmt.Errorf("%w: %s is in zone %s", ErrZoneCityConflict, city, other.ID)
				}
			}
		}
	}

	return s.repo.Save(ctx, zone)
}

func (s *zoneService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}
