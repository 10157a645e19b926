package materials

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListQuery is the normalized form of the list endpoint's query parameters.
type ListQuery struct {
	Page      int
	Limit     int
	Search    string
	Category  string
	Status    string
	SortBy    string
	SortOrder string
}

// ParseListQuery coerces raw query parameters. Non-numeric or out-of-range
// page/limit values fall back to their defaults; page below 1 is treated as 1.
func ParseListQuery(q url.Values) ListQuery {
	return ListQuery{
		Page:      positiveInt(q.Get("page"), defaultPage),
		Limit:     positiveInt(q.Get("limit"), defaultLimit),
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		Status:    q.Get("status"),
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
}

// Offset returns the row offset for the current page.
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// sortColumns whitelists client-facing sort keys against real columns. User
// input never reaches the ORDER BY clause directly.
var sortColumns = map[string]string{
	"code":       "code",
	"name":       "name",
	"category":   "category",
	"unit":       "unit",
	"price":      "price",
	"stock":      "stock",
	"minStock":   "min_stock",
	"min_stock":  "min_stock",
	"maxStock":   "max_stock",
	"max_stock":  "max_stock",
	"status":     "status",
	"createdAt":  "created_at",
	"created_at": "created_at",
	"updatedAt":  "updated_at",
	"updated_at": "updated_at",
}

// sortClause resolves the ORDER BY expression, defaulting to newest first and
// ignoring unknown sort keys.
func sortClause(sortBy, sortOrder string) string {
	column, ok := sortColumns[sortBy]
	if !ok {
		column = "created_at"
	}
	dir := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		dir = "ASC"
	}
	return column + " " + dir
}
