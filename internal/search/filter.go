// Package search filters lists by free text and debounces the query typed
// by the visitor.
package search

import (
	"strings"

	"golang.org/x/text/cases"
)

// Document is anything that exposes the text a query is matched against.
type Document interface {
	SearchFields() []string
}

// Filter returns the items matching query, in their original order. A
// query that is empty after trimming matches everything and returns items
// as is. Matching is a case-folded substring test over SearchFields.
func Filter[T Document](items []T, query string) []T {
	q := strings.TrimSpace(query)
	if q == "" {
		return items
	}

	fold := cases.Fold()
	q = fold.String(q)

	out := make([]T, 0, len(items))
	for _, it := range items {
		if matches(fold, it.SearchFields(), q) {
			out = append(out, it)
		}
	}
	return out
}

func matches(fold cases.Caser, fields []string, q string) bool {
	for _, f := range fields {
		if strings.Contains(fold.String(f), q) {
			return true
		}
	}
	return false
}
