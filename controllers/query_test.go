package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func queryContext(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/campaigns?"+rawQuery, nil)
	return c
}

func TestParseListQueryDefaults(t *testing.T) {
	q := parseListQuery(queryContext(""))

	assert.Equal(t, int64(1), q.Page)
	assert.Equal(t, int64(12), q.Limit)
	assert.Equal(t, "approved", q.Status)
	assert.Equal(t, "created_at", q.SortField)
	assert.Equal(t, -1, q.SortOrder)
	assert.Empty(t, q.Category)
	assert.Empty(t, q.Search)
}

func TestParseListQueryExplicit(t *testing.T) {
	q := parseListQuery(queryContext("page=3&limit=20&category=art&status=pending&search=solar&sortBy=goal&sortOrder=asc"))

	assert.Equal(t, int64(3), q.Page)
	assert.Equal(t, int64(20), q.Limit)
	assert.Equal(t, "art", q.Category)
	assert.Equal(t, "pending", q.Status)
	assert.Equal(t, "solar", q.Search)
	assert.Equal(t, "goal", q.SortField)
	assert.Equal(t, 1, q.SortOrder)
}

func TestParseListQueryRejectsBadValues(t *testing.T) {
	q := parseListQuery(queryContext("page=0&limit=-5&sortBy=password&sortOrder=sideways"))

	assert.Equal(t, int64(1), q.Page)
	assert.Equal(t, int64(12), q.Limit)
	assert.Equal(t, "created_at", q.SortField)
	assert.Equal(t, -1, q.SortOrder)
}

// Page windows must not overlap: the skip offset and the page size both use
// the limit.
func TestListQuerySkip(t *testing.T) {
	tests := []struct {
		page, limit, skip int64
	}{
		{1, 12, 0},
		{2, 12, 12},
		{3, 20, 40},
		{5, 7, 28},
	}
	for _, tt := range tests {
		q := listQuery{Page: tt.page, Limit: tt.limit}
		assert.Equal(t, tt.skip, q.Skip())
	}
}

func TestListQueryPages(t *testing.T) {
	tests := []struct {
		total, limit, pages int64
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{100, 12, 9},
	}
	for _, tt := range tests {
		q := listQuery{Limit: tt.limit}
		assert.Equal(t, tt.pages, q.Pages(tt.total))
	}
}
