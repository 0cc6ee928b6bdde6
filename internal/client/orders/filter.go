package orders

import (
	"strings"

	"github.com/dmitrijs2005/storefront/internal/client/models"
)

// Filter returns the orders whose "<id> <status>" text contains query,
// ignoring case. A blank query returns list unchanged. Order is preserved.
func Filter(list []models.Order, query string) []models.Order {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}

	out := make([]models.Order, 0, len(list))
	for _, o := range list {
		if strings.Contains(strings.ToLower(o.ID+" "+o.Status), q) {
			out = append(out, o)
		}
	}
	return out
}
