package catalog

import "strings"

// sortColumns is the dispatch table from sort key to column. Unknown keys
// fall back to creation time; unknown directions fall back to descending.
// Neither is an error by contract.
var sortColumns = map[string]string{
	"price":       "price",
	"rating":      "rating",
	"enrollments": "enrollment_count",
	"title":       "title",
	"createdat":   "created_at",
}

// resolveSort returns the ORDER BY clause for a (key, direction) pair.
// Ties are left to the store's natural row order; callers needing
// reproducible pagination across ties must sort by a unique key.
func resolveSort(sortBy, sortOrder string) string {
	column, ok := sortColumns[strings.ToLower(sortBy)]
	if !ok {
		column = "created_at"
	}
	if strings.ToLower(sortOrder) == "asc" {
		return column + " ASC"
	}
	return column + " DESC"
}
