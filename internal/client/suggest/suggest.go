// Package suggest offers product name suggestions for the search box.
package suggest

import "strings"

// DefaultLimit caps Lookup when limit <= 0.
const DefaultLimit = 5

var catalogue = []string{
	"Wireless Headphones",
	"Bluetooth Speaker",
	"Smart Watch",
	"Laptop Stand",
	"USB-C Charger",
	"Mechanical Keyboard",
	"Wireless Mouse",
	"Phone Case",
	"Screen Protector",
	"Portable SSD",
	"Webcam",
	"Desk Lamp",
	"Noise Cancelling Earbuds",
	"Fitness Tracker",
	"Power Bank",
}

// Catalogue returns a copy of the product names Lookup searches.
func Catalogue() []string {
	return append([]string(nil), catalogue...)
}

// Lookup returns up to limit catalogue entries containing query, ignoring
// case, in catalogue order. A blank query yields nothing.
func Lookup(query string, limit int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var out []string
	for _, name := range catalogue {
		if !strings.Contains(strings.ToLower(name), q) {
			continue
		}
		out = append(out, name)
		if len(out) == limit {
			break
		}
	}
	return out
}
