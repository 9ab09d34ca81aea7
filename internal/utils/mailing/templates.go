package mailing

import (
	"fmt"
	"html"
)

// ReservationNotice builds the mail a donor gets when one of their items is reserved.
func ReservationNotice(appURL, donorName, itemTitle, receiverName string) (string, string) {
	subject := fmt.Sprintf("Your item \"%s\" has been reserved", itemTitle)
	if donorName == "" {
		donorName = "there"
	}
	if receiverName == "" {
		receiverName = "Another FoodSaver user"
	}
	body := fmt.Sprintf(
		`<p>Hi %s,</p><p>%s reserved <b>%s</b>. Open <a href="%s">FoodSaver</a> to accept the pickup.</p>`,
		html.EscapeString(donorName),
		html.EscapeString(receiverName),
		html.EscapeString(itemTitle),
		html.EscapeString(appURL),
	)
	return subject, body
}
