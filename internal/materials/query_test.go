package materials

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseListQueryDefaults(t *testing.T) {
	q := ParseListQuery(url.Values{})
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)
	assert.Empty(t, q.Search)
	assert.Empty(t, q.Category)
	assert.Empty(t, q.Status)
}

func TestParseListQueryPageCoercion(t *testing.T) {
	cases := map[string]int{
		"0":   1,
		"-3":  1,
		"abc": 1,
		"":    1,
		"2":   2,
	}
	for raw, want := range cases {
		q := ParseListQuery(url.Values{"page": {raw}})
		assert.Equal(t, want, q.Page, "page=%q", raw)
	}
}

func TestParseListQueryLimitCoercion(t *testing.T) {
	cases := map[string]int{
		"0":   10,
		"abc": 10,
		"25":  25,
	}
	for raw, want := range cases {
		q := ParseListQuery(url.Values{"limit": {raw}})
		assert.Equal(t, want, q.Limit, "limit=%q", raw)
	}
}

func TestOffset(t *testing.T) {
	q := ListQuery{Page: 3, Limit: 10}
	assert.Equal(t, 20, q.Offset())

	q = ListQuery{Page: 1, Limit: 50}
	assert.Equal(t, 0, q.Offset())
}

func TestSortClauseDefaults(t *testing.T) {
	assert.Equal(t, "created_at DESC", sortClause("", ""))
}

func TestSortClauseKnownColumns(t *testing.T) {
	assert.Equal(t, "name ASC", sortClause("name", "asc"))
	assert.Equal(t, "name ASC", sortClause("name", "ASC"))
	assert.Equal(t, "price DESC", sortClause("price", "DESC"))
	assert.Equal(t, "min_stock ASC", sortClause("minStock", "asc"))
	assert.Equal(t, "created_at DESC", sortClause("created_at", ""))
}

func TestSortClauseRejectsUnknownColumn(t *testing.T) {
	// Unsafe input never reaches the ORDER BY clause.
	assert.Equal(t, "created_at DESC", sortClause("code; DROP TABLE materials--", ""))
	assert.Equal(t, "created_at ASC", sortClause("nonexistent", "asc"))
}
