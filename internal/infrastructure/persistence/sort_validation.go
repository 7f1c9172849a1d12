package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort order to ASC or DESC. A
// caller-supplied sort field sorts ascending unless "desc" is given; the
// fallback sort without a field is always descending.
func ValidateSortOrder(sortField, orderDir string) string {
	if strings.TrimSpace(sortField) == "" {
		return "DESC"
	}
	if strings.EqualFold(strings.TrimSpace(orderDir), "desc") {
		return "DESC"
	}
	return "ASC"
}

// ResolveSortColumn maps an API sort field to a database column using the
// given whitelist. Unknown or empty fields fall back to defaultColumn.
func ResolveSortColumn(sortField string, allowed map[string]string, defaultColumn string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultColumn
	}
	if column, ok := allowed[trimmed]; ok {
		return column
	}
	return defaultColumn
}

// productSortColumns maps API sort fields to product columns
var productSortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"price":     "price",
	"stock":     "stock",
	"status":    "status",
	"sku":       "sku",
	"featured":  "featured",
}

// categorySortColumns maps API sort fields to category columns
var categorySortColumns = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"slug":      "slug",
	"sortOrder": "sort_order",
	"isActive":  "is_active",
}

// orderSortColumns maps API sort fields to order columns
var orderSortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"orderNumber": "order_number",
	"total":       "total",
	"subtotal":    "subtotal",
	"status":      "status",
}
