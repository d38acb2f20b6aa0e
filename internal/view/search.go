package view

import "strings"

// FilterItems returns the items whose name or SKU contains the query,
// case-insensitively. An empty query returns the input untouched. SKUs match
// in three spellings: as-is, with dashes replaced by spaces and with dashes
// removed, so "kl med 15" and "klmed15" both find "KL-MED-15". The filter is
// stable: relative order of the input is preserved.
func FilterItems(query string, items []Item) []Item {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	filtered := make([]Item, 0, len(items))
	for _, it := range items {
		if matchesQuery(q, it) {
			filtered = append(filtered, it)
		}
	}
	return filtered
}

func matchesQuery(lowerQuery string, it Item) bool {
	if strings.Contains(strings.ToLower(it.Name), lowerQuery) {
		return true
	}
	if it.SKU == "" {
		return false
	}
	sku := strings.ToLower(it.SKU)
	candidates := []string{
		sku,
		strings.ReplaceAll(sku, "-", " "),
		strings.ReplaceAll(sku, "-", ""),
	}
	for _, c := range candidates {
		if strings.Contains(c, lowerQuery) {
			return true
		}
	}
	return false
}
