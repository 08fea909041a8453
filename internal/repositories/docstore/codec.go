// Package docstore implements the repository contracts on top of the
// pluggable document store. Documents written by older clients may carry
// missing or malformed fields, so decoding is tolerant: bad values collapse
// to defaults instead of failing the read.
package docstore

import (
	"strconv"
	"time"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/platform/store"
)

func decodeOrder(doc store.Document, now time.Time) domain.Order {
	data := doc.Data
	order := domain.Order{
		ID:           doc.ID,
		CustomerName: asString(data["customerName"]),
		City:         asString(data["city"]),
		Address:      asString(data["address"]),
		Phone:        asString(data["phone"]),
		Notes:        asString(data["notes"]),
		TotalPrice:   asFloat(data["totalPrice"]),
		Lines:        decodeOrderLines(data["products"]),
	}

	status := domain.OrderStatus(asString(data["status"]))
	if !domain.ValidStatus(status) {
		status = domain.StatusPending
	}
	order.Status = status

	date := asString(data["date"])
	if date == "" {
		date = domain.Today(now)
	}
	order.Date = date

	return order
}

func decodeOrderLines(v any) []domain.OrderLine {
	raw, ok := v.([]any)
	if !ok {
		return []domain.OrderLine{}
	}
	lines := make([]domain.OrderLine, 0, len(raw))
	for _, entry := range raw {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		lines = append(lines, domain.OrderLine{
			ProductID: asString(m["productId"]),
			Name:      asString(m["name"]),
			Price:     asFloat(m["price"]),
			Quantity:  asInt(m["quantity"]),
		})
	}
	return lines
}

func encodeOrder(order domain.Order) map[string]any {
	lines := make([]any, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, map[string]any{
			"productId": l.ProductID,
			"name":      l.Name,
			"price":     l.Price,
			"quantity":  l.Quantity,
		})
	}
	return map[string]any{
		"customerName": order.CustomerName,
		"city":         order.City,
		"address":      order.Address,
		"phone":        order.Phone,
		"notes":        order.Notes,
		"products":     lines,
		"totalPrice":   order.TotalPrice,
		"status":       string(order.Status),
		"date":         order.Date,
	}
}

func decodeProduct(doc store.Document) domain.Product {
	data := doc.Data
	return domain.Product{
		ID:          doc.ID,
		Name:        asString(data["name"]),
		Description: asString(data["description"]),
		Price:       asFloat(data["price"]),
		Image:       asString(data["image"]),
		CategoryID:  asString(data["categoryId"]),
	}
}

func encodeProduct(product domain.Product) map[string]any {
	return map[string]any{
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"image":       product.Image,
		"categoryId":  product.CategoryID,
	}
}

func decodeCategory(doc store.Document) domain.Category {
	data := doc.Data
	return domain.Category{
		ID:    doc.ID,
		Name:  asString(data["name"]),
		Image: asString(data["image"]),
	}
}

func encodeCategory(category domain.Category) map[string]any {
	return map[string]any{
		"name":  category.Name,
		"image": category.Image,
	}
}

func decodeZone(doc store.Document) domain.DeliveryZone {
	data := doc.Data
	return domain.DeliveryZone{
		ID:     doc.ID,
		Name:   asString(data["name"]),
		Cities: asStringSlice(data["cities"]),
		Price:  asFloat(data["price"]),
	}
}

func encodeZone(zone domain.DeliveryZone) map[string]any {
	cities := make([]any, 0, len(zone.Cities))
	for _, c := range zone.Cities {
		cities = append(cities, c)
	}
	return map[string]any{
		"name":   zone.Name,
		"cities": cities,
		"price":  zone.Price,
	}
}

func decodeWishlist(doc store.Document) domain.WishlistEntry {
	return domain.WishlistEntry{
		CustomerKey: doc.ID,
		ProductIDs:  asStringSlice(doc.Data["productIds"]),
	}
}

func encodeWishlist(entry domain.WishlistEntry) map[string]any {
	ids := make([]any, 0, len(entry.ProductIDs))
	for _, id := range entry.ProductIDs {
		ids = append(ids, id)
	}
	return map[string]any{
		"productIds": ids,
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if parsed, err := strconv.ParseFloat(n, 64); err == nil {
			return parsed
		}
	}
	return 0
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed
		}
	}
	return 0
}

func asStringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		if s, ok := entry.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
