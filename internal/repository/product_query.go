package repository

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	ProductOrderPrice     = "price"
	ProductOrderCreatedAt = "created_at"
	ProductOrderName      = "name"
)

var productOrderColumns = map[string]string{
	ProductOrderPrice:     "p.price",
	ProductOrderCreatedAt: "p.created_at",
	ProductOrderName:      "p.name",
}

func IsProductOrderField(field string) bool {
	_, ok := productOrderColumns[field]
	return ok
}

// ProductQuery selects active products. Zero ids and nil bounds are not applied;
// price bounds are inclusive.
type ProductQuery struct {
	CategoryID int64
	SellerID   int64
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Search     string
	OrderBy    string
	Descending bool
	Limit      int
	Offset     int
}

const productSelectColumns = "p.id, p.seller_id, p.category_id, p.name, p.description, p.price, p.minimum_order_quantity, p.available_quantity, p.unit, p.country_of_origin, p.shipping_terms, p.lead_time, p.certifications, p.image, p.is_active, p.created_at, p.updated_at"

func buildProductFilter(q ProductQuery, args *queryArgs) string {
	var sb strings.Builder
	sb.WriteString(" FROM products p JOIN categories c ON c.id = p.category_id WHERE p.is_active = TRUE")

	if q.CategoryID != 0 {
		sb.WriteString(" AND p.category_id = " + args.add(q.CategoryID))
	}
	if q.SellerID != 0 {
		sb.WriteString(" AND p.seller_id = " + args.add(q.SellerID))
	}
	if q.MinPrice != nil {
		sb.WriteString(" AND p.price >= " + args.add(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		sb.WriteString(" AND p.price <= " + args.add(*q.MaxPrice))
	}
	if q.Search != "" {
		pattern := args.add(containsPattern(q.Search))
		sb.WriteString(" AND (p.name ILIKE " + pattern + " OR p.description ILIKE " + pattern + " OR c.name ILIKE " + pattern + ")")
	}

	return sb.String()
}

func buildProductListQuery(q ProductQuery) (string, []interface{}) {
	args := &queryArgs{}
	query := "SELECT " + productSelectColumns + buildProductFilter(q, args)

	column, ok := productOrderColumns[q.OrderBy]
	if !ok {
		column = productOrderColumns[ProductOrderCreatedAt]
	}
	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}
	query += " ORDER BY " + column + " " + direction + ", p.id " + direction

	if q.Limit > 0 {
		query += " LIMIT " + args.add(q.Limit) + " OFFSET " + args.add(q.Offset)
	}

	return query, args.values
}

func buildProductCountQuery(q ProductQuery) (string, []interface{}) {
	args := &queryArgs{}
	query := "SELECT COUNT(*)" + buildProductFilter(q, args)
	return query, args.values
}
