package notify

import (
	"fmt"

	"github.com/teka-store/api/internal/domain"
)

// statusLabels maps order statuses to their customer-facing Arabic labels.
var statusLabels = map[domain.OrderStatus]string{
	domain.StatusProcessing: "قيد المعالجة",
	domain.StatusShipping:   "تم الشحن",
	domain.StatusDelivered:  "تم التسليم",
	domain.StatusSuspended:  "موقوف",
}

// StatusLabel returns the Arabic label for status, defaulting to the
// pending label for anything unrecognised.
func StatusLabel(status domain.OrderStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return "معلق"
}

// ProcessingMessage renders the rich confirmation sent when an order enters
// processing. The markup is Telegram HTML.
func ProcessingMessage(order domain.Order) string {
	total := fmt.Sprintf("%.2f", order.TotalPrice)
	return fmt.Sprintf(`<b>إشعار طلب رقم: #%[1]s</b>

<b>مرحباً %[2]s!</b>

نود إعلامك بأن طلبك رقم <b>#%[1]s</b> قيد المعالجة الآن.

<b>تفاصيل الطلب:</b>
- رقم الطلب: #%[1]s
- المبلغ الإجمالي: %[3]s د.ل

سنقوم بإعلامك عندما يتم شحن طلبك.

شكراً لتسوقك معنا!
فريق خدمة العملاء`, order.ID, order.CustomerName, total)
}

// StatusMessage renders the generic status-change notification.
func StatusMessage(orderID string, status domain.OrderStatus) string {
	return fmt.Sprintf(`<b>تحديث حالة الطلب رقم: #%s</b>

نود إعلامك بأن حالة طلبك قد تم تحديثها إلى: <b>%s</b>

يمكنك التواصل معنا في حال وجود أي استفسار.

شكراً لتسوقك معنا!
فريق خدمة العملاء`, orderID, StatusLabel(status))
}

// CustomMessage wraps an operator-written message with the order header.
// Without order context the message passes through untouched.
func CustomMessage(text string, orderID, customerName string) string {
	if orderID == "" {
		return text
	}
	return fmt.Sprintf(`<b>رسالة بخصوص الطلب رقم: #%s</b>
<b>العميل: %s</b>

%s

فريق خدمة العملاء`, orderID, customerName, text)
}

// CustomMessagePlain is the WhatsApp variant of CustomMessage, using
// asterisk bold markers instead of HTML.
func CustomMessagePlain(text string, orderID, customerName string) string {
	if orderID == "" {
		return text
	}
	return fmt.Sprintf(`*رسالة بخصوص الطلب رقم: #%s*
*العميل: %s*

%s

فريق خدمة العملاء`, orderID, customerName, text)
}
