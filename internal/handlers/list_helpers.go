package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// --------------------------------------------------
// Pagination and sorting shared by the list endpoints
// --------------------------------------------------

func parsePagination(c *gin.Context) (page, pageSize, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}

	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 10
	}

	return page, pageSize, (page - 1) * pageSize
}

// parseSort resolves ?sort_by= against a per-entity whitelist of sortable
// columns. Anything outside the whitelist falls back to the default, so no
// client-supplied string ever reaches the ORDER BY clause verbatim.
func parseSort(c *gin.Context, allowed map[string]string, def string) string {
	column, ok := allowed[c.Query("sort_by")]
	if !ok {
		column = def
	}

	if c.DefaultQuery("order", "asc") == "desc" {
		return column + " DESC"
	}
	return column + " ASC"
}
