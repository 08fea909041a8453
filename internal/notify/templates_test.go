package notify

import (
	"strings"
	"testing"

	"github.com/teka-store/api/internal/domain"
)

func TestStatusLabel(t *testing.T) {
	cases := []struct {
		status domain.OrderStatus
		want   string
	}{
		{domain.StatusProcessing, "قيد المعالجة"},
		{domain.StatusShipping, "تم الشحن"},
		{domain.StatusDelivered, "تم التسليم"},
		{domain.StatusSuspended, "موقوف"},
		{domain.StatusPending, "معلق"},
		{domain.OrderStatus("bogus"), "معلق"},
	}
	for _, tc := range cases {
		if got := StatusLabel(tc.status); got != tc.want {
			t.Fatalf("StatusLabel(%q) = %q, want %q", tc.status, got, tc.want)
		}
	}
}

func TestProcessingMessageIncludesOrderDetails(t *testing.T) {
	msg := ProcessingMessage(domain.Order{
		ID:           "104",
		CustomerName: "سالم",
		TotalPrice:   1319.99,
	})
	for _, want := range []string{"#104", "سالم", "1319.99 د.ل", "قيد المعالجة"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("processing message missing %q:\n%s", want, msg)
		}
	}
}

func TestStatusMessageIncludesLabel(t *testing.T) {
	msg := StatusMessage("104", domain.StatusShipping)
	if !strings.Contains(msg, "#104") || !strings.Contains(msg, "تم الشحن") {
		t.Fatalf("status message missing id or label:\n%s", msg)
	}
}

func TestCustomMessageWithAndWithoutOrder(t *testing.T) {
	plain := CustomMessage("نص حر", "", "")
	if plain != "نص حر" {
		t.Fatalf("custom message without order altered the text: %q", plain)
	}

	wrapped := CustomMessage("نص حر", "104", "سالم")
	for _, want := range []string{"#104", "سالم", "نص حر"} {
		if !strings.Contains(wrapped, want) {
			t.Fatalf("custom message missing %q:\n%s", want, wrapped)
		}
	}
}

func TestWhatsAppLinkEncodesMessage(t *testing.T) {
	link := WhatsAppLink("218912345678", "مرحبا هناك")
	if !strings.HasPrefix(link, "https://wa.me/218912345678?text=") {
		t.Fatalf("unexpected link prefix: %q", link)
	}
	if strings.ContainsAny(link, " \n") {
		t.Fatalf("link contains unencoded whitespace: %q", link)
	}
	if WhatsAppLink("", "hi") != "" {
		t.Fatal("link for empty recipient should be empty")
	}
}
