package dto

import "time"

type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SpecificationResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Value string `json:"value"`
}

type ImageResponse struct {
	ID        int64     `json:"id"`
	Image     string    `json:"image"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewResponse struct {
	ID        int64        `json:"id"`
	ProductID int64        `json:"product_id"`
	User      UserResponse `json:"user"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

type ProductResponse struct {
	ID                   int64                   `json:"id"`
	Seller               UserResponse            `json:"seller"`
	Category             CategoryResponse        `json:"category"`
	Name                 string                  `json:"name"`
	Description          string                  `json:"description"`
	Price                string                  `json:"price"`
	MinimumOrderQuantity int64                   `json:"minimum_order_quantity"`
	AvailableQuantity    int64                   `json:"available_quantity"`
	Unit                 string                  `json:"unit"`
	CountryOfOrigin      string                  `json:"country_of_origin"`
	ShippingTerms        *string                 `json:"shipping_terms"`
	LeadTime             *string                 `json:"lead_time"`
	Certifications       *string                 `json:"certifications"`
	Image                string                  `json:"image"`
	IsActive             bool                    `json:"is_active"`
	Specifications       []SpecificationResponse `json:"specifications"`
	Images               []ImageResponse         `json:"images"`
	Reviews              []ReviewResponse        `json:"reviews"`
	AverageRating        float64                 `json:"average_rating"`
	CreatedAt            time.Time               `json:"created_at"`
	UpdatedAt            time.Time               `json:"updated_at"`
}
