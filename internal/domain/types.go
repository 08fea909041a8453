package domain

import "time"

// Product is a catalog entry consumed read-only by the order pipeline.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Image       string
	CategoryID  string
}

// Category groups catalog products for the storefront.
type Category struct {
	ID    string
	Name  string
	Image string
}

// OrderLine references a catalog product with a purchase quantity. Name and
// Price are snapshots taken at commit time; later catalog edits never change
// a committed order.
type OrderLine struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  int
}

// Order is the committed result of a checkout. All fields except Status are
// immutable after creation; TotalPrice is a historical fact and is never
// recomputed.
type Order struct {
	ID           string
	CustomerName string
	City         string
	Address      string
	Phone        string
	Notes        string
	Lines        []OrderLine
	TotalPrice   float64
	Status       OrderStatus
	Date         string
	HasWishlist  bool
}

// CartLine is a draft line inside an in-progress cart.
type CartLine struct {
	ProductID string
	Quantity  int
}

// Cart is the ephemeral draft assembled before an order is committed.
type Cart struct {
	Lines []CartLine
	// SeedProductID is reinstated when the caller tries to empty the cart;
	// a checkout flow always carries at least one line.
	SeedProductID string
}

// DeliveryZone groups cities sharing one flat delivery price. City matching
// is case-insensitive and each city belongs to at most one zone.
type DeliveryZone struct {
	ID     string
	Name   string
	Cities []string
	Price  float64
}

// WishlistEntry is the per-customer set of saved product ids. The customer
// key is the digits of the phone number.
type WishlistEntry struct {
	CustomerKey string
	ProductIDs  []string
}

// NotificationAttempt records the outcome of one channel's delivery try. It
// is transient and never persisted.
type NotificationAttempt struct {
	OrderID string
	Channel string
	Status  AttemptStatus
	Link    string
	Err     string
}

// AttemptStatus marks a notification attempt as sent or failed.
type AttemptStatus string

const (
	AttemptSent   AttemptStatus = "sent"
	AttemptFailed AttemptStatus = "failed"
)

// DateFormat is the date-only layout used for persisted order dates.
const DateFormat = "2006-01-02"

// Today formats the given instant as a persisted order date.
func Today(now time.Time) string {
	return now.UTC().Format(DateFormat)
}
