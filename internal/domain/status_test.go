package domain

import "testing"

func TestCanTransitionForwardSteps(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{StatusPending, StatusProcessing},
		{StatusProcessing, StatusShipping},
		{StatusShipping, StatusDelivered},
		{StatusPending, StatusSuspended},
		{StatusProcessing, StatusSuspended},
		{StatusShipping, StatusSuspended},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be allowed", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to OrderStatus }{
		{StatusPending, StatusShipping},
		{StatusPending, StatusDelivered},
		{StatusProcessing, StatusPending},
		{StatusDelivered, StatusSuspended},
		{StatusDelivered, StatusPending},
		{StatusSuspended, StatusPending},
		{StatusSuspended, StatusProcessing},
		{StatusShipping, StatusProcessing},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Errorf("expected %s -> %s to be denied", tc.from, tc.to)
		}
	}
}

func TestCanTransitionRejectsUnknownStatuses(t *testing.T) {
	if CanTransition("pending", "archived") {
		t.Fatalf("unknown target status must be rejected")
	}
	if CanTransition("draft", StatusPending) {
		t.Fatalf("unknown source status must be rejected")
	}
}

func TestNextStatuses(t *testing.T) {
	next := NextStatuses(StatusPending)
	if len(next) != 2 || next[0] != StatusProcessing || next[1] != StatusSuspended {
		t.Fatalf("unexpected next states for pending: %v", next)
	}
	if got := NextStatuses(StatusDelivered); got != nil {
		t.Fatalf("delivered is terminal, got %v", got)
	}
	if got := NextStatuses(StatusSuspended); got != nil {
		t.Fatalf("suspended is terminal, got %v", got)
	}
}
