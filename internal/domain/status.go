package domain

// OrderStatus is one of the finite order workflow states.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipping   OrderStatus = "shipping"
	StatusDelivered  OrderStatus = "delivered"
	StatusSuspended  OrderStatus = "suspended"
)

// statusOrder is the strictly forward fulfilment sequence. Suspended sits
// outside the sequence and is reachable from any non-terminal state.
var statusOrder = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipping,
	StatusDelivered,
}

// ValidStatus reports whether s belongs to the order workflow state set.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipping, StatusDelivered, StatusSuspended:
		return true
	}
	return false
}

// Terminal reports whether no further transition leaves s. There is no
// resume path from suspended.
func Terminal(s OrderStatus) bool {
	return s == StatusDelivered || s == StatusSuspended
}

// CanTransition reports whether current may move to next under the strict
// workflow: one forward step in the fulfilment sequence, or suspension of
// any non-terminal state.
func CanTransition(current, next OrderStatus) bool {
	if !ValidStatus(current) || !ValidStatus(next) {
		return false
	}
	if Terminal(current) {
		return false
	}
	if next == StatusSuspended {
		return true
	}
	for i, s := range statusOrder {
		if s != current {
			continue
		}
		return i+1 < len(statusOrder) && statusOrder[i+1] == next
	}
	return false
}

// NextStatuses lists the states reachable from current under the strict
// workflow, in fulfilment order.
func NextStatuses(current OrderStatus) []OrderStatus {
	if Terminal(current) || !ValidStatus(current) {
		return nil
	}
	var next []OrderStatus
	for i, s := range statusOrder {
		if s == current && i+1 < len(statusOrder) {
			next = append(next, statusOrder[i+1])
		}
	}
	return append(next, StatusSuspended)
}
