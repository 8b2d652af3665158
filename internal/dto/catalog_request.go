package dto

import (
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"

	"github.com/shopspring/decimal"
)

type CategoryRequest struct {
	ID          int64   `json:"-"`
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
}

// ProductFilter carries the raw query parameters of a product listing. Numeric
// values are parsed by the service so malformed input surfaces as a client error.
type ProductFilter struct {
	Category string `query:"category"`
	Seller   string `query:"seller"`
	MinPrice string `query:"min_price"`
	MaxPrice string `query:"max_price"`
	Search   string `query:"search"`
	Ordering string `query:"ordering"`
	Page     int    `query:"page"`
	Limit    int    `query:"limit"`
}

func (f ProductFilter) Paging() pkgdto.Filter {
	return pkgdto.Filter{Page: f.Page, Limit: f.Limit, Search: f.Search}
}

type SpecificationRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Value string `json:"value" validate:"required,max=255"`
}

type ImageRequest struct {
	Image     string `json:"image" validate:"required"`
	IsPrimary bool   `json:"is_primary"`
}

type ProductRequest struct {
	CategoryID           int64                  `json:"category_id" validate:"required"`
	Name                 string                 `json:"name" validate:"required,max=255"`
	Description          string                 `json:"description" validate:"required"`
	Price                *decimal.Decimal       `json:"price" validate:"required"`
	MinimumOrderQuantity *int64                 `json:"minimum_order_quantity"`
	AvailableQuantity    *int64                 `json:"available_quantity"`
	Unit                 string                 `json:"unit" validate:"required,max=50"`
	CountryOfOrigin      string                 `json:"country_of_origin" validate:"required,max=100"`
	ShippingTerms        *string                `json:"shipping_terms"`
	LeadTime             *string                `json:"lead_time" validate:"omitempty,max=100"`
	Certifications       *string                `json:"certifications"`
	Image                string                 `json:"image" validate:"required"`
	Specifications       []SpecificationRequest `json:"specifications" validate:"dive"`
	Images               []ImageRequest         `json:"images" validate:"dive"`
}

// ProductUpdateRequest is a partial update. A non-nil Specifications replaces
// the product's whole specification set.
type ProductUpdateRequest struct {
	ID                   int64                   `json:"-"`
	CategoryID           *int64                  `json:"category_id"`
	Name                 *string                 `json:"name" validate:"omitempty,min=1,max=255"`
	Description          *string                 `json:"description" validate:"omitempty,min=1"`
	Price                *decimal.Decimal        `json:"price"`
	MinimumOrderQuantity *int64                  `json:"minimum_order_quantity"`
	AvailableQuantity    *int64                  `json:"available_quantity"`
	Unit                 *string                 `json:"unit" validate:"omitempty,min=1,max=50"`
	CountryOfOrigin      *string                 `json:"country_of_origin" validate:"omitempty,min=1,max=100"`
	ShippingTerms        *string                 `json:"shipping_terms"`
	LeadTime             *string                 `json:"lead_time" validate:"omitempty,max=100"`
	Certifications       *string                 `json:"certifications"`
	Image                *string                 `json:"image" validate:"omitempty,min=1"`
	Specifications       *[]SpecificationRequest `json:"specifications" validate:"omitempty,dive"`
}

type ReviewRequest struct {
	ProductID int64  `json:"-"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}
