package domain

import "strings"

// DefaultDeliveryPrice applies when a city is not covered by any zone and
// when a capital sub-area is not in a known tier.
const DefaultDeliveryPrice = 20

// CapitalCity is the one city with sub-area pricing tiers.
const CapitalCity = "طرابلس"

// AreaTiers buckets the capital's sub-areas into price tiers. The tiers are
// checked in order: central, near suburbs, far suburbs.
type AreaTiers struct {
	Central      []string
	CentralPrice float64
	Near         []string
	NearPrice    float64
	Far          []string
	FarPrice     float64
	DefaultPrice float64
}

// PricingTable resolves delivery fees from zones plus the capital's area
// tiers. It is immutable after construction and safe for concurrent use.
type PricingTable struct {
	zones []DeliveryZone
	areas AreaTiers
}

// NewPricingTable builds a table over the given zone snapshot. Zone
// configuration must keep each city in at most one zone; the first match
// wins on lookup.
func NewPricingTable(zones []DeliveryZone, areas AreaTiers) *PricingTable {
	copied := make([]DeliveryZone, len(zones))
	copy(copied, zones)
	return &PricingTable{zones: copied, areas: areas}
}

// Resolve returns the delivery fee for a city and optional capital sub-area.
// Unknown cities resolve to DefaultDeliveryPrice with matched=false; callers
// may still proceed, the miss is not fatal.
func (t *PricingTable) Resolve(city string, area *string) (price float64, matched bool) {
	city = strings.TrimSpace(city)
	if strings.EqualFold(city, CapitalCity) && area != nil && strings.TrimSpace(*area) != "" {
		return t.areas.resolve(strings.TrimSpace(*area)), true
	}
	for _, zone := range t.zones {
		for _, candidate := range zone.Cities {
			if strings.EqualFold(strings.TrimSpace(candidate), city) {
				return zone.Price, true
			}
		}
	}
	return DefaultDeliveryPrice, false
}

func (a AreaTiers) resolve(area string) float64 {
	if containsFold(a.Central, area) {
		return a.CentralPrice
	}
	if containsFold(a.Near, area) {
		return a.NearPrice
	}
	if containsFold(a.Far, area) {
		return a.FarPrice
	}
	if a.DefaultPrice > 0 {
		return a.DefaultPrice
	}
	return DefaultDeliveryPrice
}

func containsFold(list []string, value string) bool {
	for _, entry := range list {
		if strings.EqualFold(strings.TrimSpace(entry), value) {
			return true
		}
	}
	return false
}
