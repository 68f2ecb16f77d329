package common

import (
	"fmt"
	"strings"

	"rephotos/src/models"
)

// FormatAddress renders the structured address on one line, skipping empty
// parts.
func FormatAddress(a models.Address) string {
	parts := make([]string, 0, 4)
	street := a.Street
	if a.Street2 != "" {
		street = street + ", " + a.Street2
	}
	if street != "" {
		parts = append(parts, street)
	}
	if a.City != "" {
		parts = append(parts, a.City)
	}
	tail := strings.TrimSpace(a.Province + " " + a.ZipCode)
	if tail != "" {
		parts = append(parts, tail)
	}
	return strings.Join(parts, ", ")
}

// ComposeMediaReadyEmail builds the delivery email announcing that final
// media is ready, addressed to the client by first name.
func ComposeMediaReadyEmail(booking models.Booking) (subject, body string) {
	firstName := booking.AgentName
	if fields := strings.Fields(booking.AgentName); len(fields) > 0 {
		firstName = fields[0]
	}
	address := FormatAddress(booking.Address)

	services := make([]string, 0, len(booking.Services))
	for _, s := range booking.Services {
		services = append(services, fmt.Sprintf("%s (%d)", s.Name, s.Count))
	}

	finalLink := booking.FinalEditsLink
	if finalLink == "" {
		finalLink = "Link not available"
	}
	invoiceLink := booking.InvoiceLink
	if invoiceLink == "" {
		invoiceLink = "Link not available"
	}

	subject = fmt.Sprintf("Your Final Photos for %s Are Ready!", address)
	body = fmt.Sprintf(`Hi %s,

Thanks again for choosing RePhotos! Your final media for the listing at %s is now ready.

📍 Property: %s
📅 Shoot Date: %s %s
📦 Services Completed: %s

🔗 Final Media Download: %s
💸 Invoice: %s

If you have any questions or need revisions, just let us know. We look forward to working with you again soon!

Best,
Cooper
Rephotos.ca`,
		firstName,
		address,
		address,
		booking.PreferredDate,
		booking.Time,
		strings.Join(services, ", "),
		finalLink,
		invoiceLink,
	)
	return subject, body
}
