package utils

import (
	"fmt"
	"net/url"
	"os"

	"rephotos/src/models"
)

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}

// GoogleMapsLink builds a directions link for the structured property
// address.
func GoogleMapsLink(a models.Address) string {
	street := a.Street
	if a.Street2 != "" {
		street = street + ", " + a.Street2
	}
	address := fmt.Sprintf("%s, %s, %s %s", street, a.City, a.Province, a.ZipCode)
	return "https://www.google.com/maps/dir/?api=1&destination=" + url.QueryEscape(address)
}
