package notify

import (
	"fmt"
	"net/url"
)

// WhatsAppLink builds a wa.me deep link that opens a chat with the
// recipient and the message pre-filled. recipientID must already be in
// canonical digits-only form.
func WhatsAppLink(recipientID, text string) string {
	if recipientID == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s?text=%s", recipientID, url.QueryEscape(text))
}
