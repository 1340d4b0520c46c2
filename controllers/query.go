package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	models "github.com/fundspark/fundspark-go/models"
)

// listQuery is the parsed campaign listing request.
type listQuery struct {
	Page      int64
	Limit     int64
	Category  string
	Status    string
	Search    string
	SortField string
	SortOrder int
}

// sortFields maps API sort keys to stored field names. Unknown keys fall
// back to creation time.
var sortFields = map[string]string{
	"createdAt":     "created_at",
	"goal":          "goal",
	"currentAmount": "current_amount",
	"endDate":       "end_date",
	"backerCount":   "backer_count",
	"title":         "title",
}

func parseListQuery(c *gin.Context) listQuery {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", "12"), 10, 64)
	if err != nil || limit < 1 {
		limit = 12
	}

	field, ok := sortFields[c.DefaultQuery("sortBy", "createdAt")]
	if !ok {
		field = "created_at"
	}

	order := -1
	if c.DefaultQuery("sortOrder", "desc") == "asc" {
		order = 1
	}

	return listQuery{
		Page:      page,
		Limit:     limit,
		Category:  c.Query("category"),
		Status:    c.DefaultQuery("status", models.CampaignStatusApproved),
		Search:    c.Query("search"),
		SortField: field,
		SortOrder: order,
	}
}

// Skip is the page offset. Page size and offset both use Limit so pages
// never overlap.
func (q listQuery) Skip() int64 {
	return (q.Page - 1) * q.Limit
}

// Pages is the total page count for the given result count.
func (q listQuery) Pages(total int64) int64 {
	return (total + q.Limit - 1) / q.Limit
}
