package common

import "strings"

// CatalogEntry is a billable offering at the fixed price for one property
// size category.
type CatalogEntry struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// PropertySizeOptions is the enumerated set of size categories, in
// declaration order. The order matters: resolution falls back to the first
// category when nothing matches.
var PropertySizeOptions = []string{
	"< 1000 sq ft",
	"1000-2000 sq ft",
	"2000-3000 sq ft",
	"3000-4000 sq ft",
	"4000-5000 sq ft",
}

var serviceCatalog = map[string][]CatalogEntry{
	"< 1000 sq ft": {
		{Name: "HDR Photography", Price: 149.99},
		{Name: "360° Virtual Tour", Price: 159.99},
		{Name: "Social Media Reel", Price: 179.99},
		{Name: "Drone Aerial Photos", Price: 124.99},
		{Name: "Drone Aerial Video", Price: 124.99},
		{Name: "2D Floor Plan", Price: 89.99},
		{Name: "3D House Model", Price: 149.99},
		{Name: "Property Website", Price: 99.99},
		{Name: "Custom Domain Name", Price: 24.99},
		{Name: "Virtual Staging", Price: 39.99},
	},
	"1000-2000 sq ft": {
		{Name: "HDR Photography", Price: 199.99},
		{Name: "360° Virtual Tour", Price: 189.99},
		{Name: "Social Media Reel", Price: 199.99},
		{Name: "Drone Aerial Photos", Price: 124.99},
		{Name: "Drone Aerial Video", Price: 124.99},
		{Name: "2D Floor Plan", Price: 119.99},
		{Name: "3D House Model", Price: 179.99},
		{Name: "Property Website", Price: 99.99},
		{Name: "Custom Domain Name", Price: 24.99},
		{Name: "Virtual Staging", Price: 39.99},
	},
	"2000-3000 sq ft": {
		{Name: "HDR Photography", Price: 249.99},
		{Name: "360° Virtual Tour", Price: 219.99},
		{Name: "Social Media Reel", Price: 219.99},
		{Name: "Drone Aerial Photos", Price: 124.99},
		{Name: "Drone Aerial Video", Price: 124.99},
		{Name: "2D Floor Plan", Price: 149.99},
		{Name: "3D House Model", Price: 209.99},
		{Name: "Property Website", Price: 99.99},
		{Name: "Custom Domain Name", Price: 24.99},
		{Name: "Virtual Staging", Price: 39.99},
	},
	"3000-4000 sq ft": {
		{Name: "HDR Photography", Price: 299.99},
		{Name: "360° Virtual Tour", Price: 249.99},
		{Name: "Social Media Reel", Price: 239.99},
		{Name: "Drone Aerial Photos", Price: 124.99},
		{Name: "Drone Aerial Video", Price: 124.99},
		{Name: "2D Floor Plan", Price: 179.99},
		{Name: "3D House Model", Price: 239.99},
		{Name: "Property Website", Price: 99.99},
		{Name: "Custom Domain Name", Price: 24.99},
		{Name: "Virtual Staging", Price: 39.99},
	},
	"4000-5000 sq ft": {
		{Name: "HDR Photography", Price: 349.99},
		{Name: "360° Virtual Tour", Price: 279.99},
		{Name: "Social Media Reel", Price: 259.99},
		{Name: "Drone Aerial Photos", Price: 124.99},
		{Name: "Drone Aerial Video", Price: 124.99},
		{Name: "2D Floor Plan", Price: 209.99},
		{Name: "3D House Model", Price: 269.99},
		{Name: "Property Website", Price: 99.99},
		{Name: "Custom Domain Name", Price: 24.99},
		{Name: "Virtual Staging", Price: 39.99},
	},
}

// ResolveCatalog maps a size category to its service list. Resolution never
// fails: an exact key wins, then the first category whose leading token
// appears in the input (tolerating formatting drift like trailing
// annotations), then the first category outright. There is always a
// displayable list.
func ResolveCatalog(size string) []CatalogEntry {
	if entries, ok := serviceCatalog[size]; ok {
		return append([]CatalogEntry(nil), entries...)
	}
	for _, key := range PropertySizeOptions {
		token := strings.Fields(key)[0]
		if strings.Contains(size, token) {
			return append([]CatalogEntry(nil), serviceCatalog[key]...)
		}
	}
	return append([]CatalogEntry(nil), serviceCatalog[PropertySizeOptions[0]]...)
}

// CatalogPrice looks up a service by name in the resolved catalog for the
// given size category.
func CatalogPrice(size, name string) (float64, bool) {
	for _, entry := range ResolveCatalog(size) {
		if entry.Name == name {
			return entry.Price, true
		}
	}
	return 0, false
}
