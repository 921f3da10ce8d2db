package timeline

import "strings"

// NormalizeCategory lowercases and trims a category token. An empty token
// becomes DefaultCategory. Queries matching on category never need to
// normalize again: this runs once at the store boundary.
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	if c == "" {
		return DefaultCategory
	}
	return c
}

// NormalizeTags lowercases and trims every tag, drops empties, and collapses
// duplicates while preserving first-appearance order.
func NormalizeTags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(tags))
	var normalized []string
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimSpace(tag))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		normalized = append(normalized, t)
	}
	return normalized
}
