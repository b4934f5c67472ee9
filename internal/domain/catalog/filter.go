package catalog

import "strings"

// CategoryAll is the sentinel category selector that matches every entry.
const CategoryAll = "All"

// SearchFields selects which text fields of an entry the free-text query is
// matched against. The menu and the wine list search different fields.
type SearchFields func(Entry) []string

// MenuSearchFields matches the query against dish name and description.
func MenuSearchFields(e Entry) []string {
	return []string{e.Name, e.Description}
}

// WineSearchFields matches the query against wine name, producer, and region.
func WineSearchFields(e Entry) []string {
	return []string{e.Name, e.Producer, e.Region}
}

// Filter returns the subsequence of entries matching the category selector and
// the case-insensitive free-text query. The original ordering is preserved and
// the input is never modified, so Filter is safe to call on every keystroke.
// An empty query matches every entry; the category must be CategoryAll or an
// exact category value.
func Filter(entries []Entry, category, query string, fields SearchFields) []Entry {
	q := strings.ToLower(query)

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if category != CategoryAll && e.Category != category {
			continue
		}
		if q != "" && !matchesQuery(e, q, fields) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// matchesQuery reports whether any configured field contains q as a
// case-insensitive substring. q must already be lowercased.
func matchesQuery(e Entry, q string, fields SearchFields) bool {
	for _, f := range fields(e) {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
