package domain

import "github.com/shopspring/decimal"

type Category struct {
	ID          int64   `db:"id"`
	Name        string  `db:"name"`
	Description *string `db:"description"`
	Image       *string `db:"image"`
	CreatedAt   int64   `db:"created_at"`
	UpdatedAt   int64   `db:"updated_at"`
}

type Product struct {
	ID                   int64           `db:"id"`
	SellerID             int64           `db:"seller_id"`
	CategoryID           int64           `db:"category_id"`
	Name                 string          `db:"name"`
	Description          string          `db:"description"`
	Price                decimal.Decimal `db:"price"`
	MinimumOrderQuantity int64           `db:"minimum_order_quantity"`
	AvailableQuantity    int64           `db:"available_quantity"`
	Unit                 string          `db:"unit"`
	CountryOfOrigin      string          `db:"country_of_origin"`
	ShippingTerms        *string         `db:"shipping_terms"`
	LeadTime             *string         `db:"lead_time"`
	Certifications       *string         `db:"certifications"`
	Image                string          `db:"image"`
	IsActive             bool            `db:"is_active"`
	CreatedAt            int64           `db:"created_at"`
	UpdatedAt            int64           `db:"updated_at"`
}

// MaxPrice is the largest value products.price can hold.
var MaxPrice = decimal.RequireFromString("99999999.99")

// IsValidPrice reports whether price is non-negative and fits the price column
// once rounded to cents.
func IsValidPrice(price decimal.Decimal) bool {
	return !price.IsNegative() && price.Round(2).LessThanOrEqual(MaxPrice)
}

type ProductSpecification struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	Name      string `db:"name"`
	Value     string `db:"value"`
}

type ProductImage struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	Image     string `db:"image"`
	IsPrimary bool   `db:"is_primary"`
	CreatedAt int64  `db:"created_at"`
}

type Review struct {
	ID        int64  `db:"id"`
	ProductID int64  `db:"product_id"`
	UserID    int64  `db:"user_id"`
	Rating    int    `db:"rating"`
	Comment   string `db:"comment"`
	CreatedAt int64  `db:"created_at"`
	UpdatedAt int64  `db:"updated_at"`
}

const (
	MinRating = 1
	MaxRating = 5
)

func IsValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}

// AverageRating is the arithmetic mean of the ratings, or 0 without reviews.
func AverageRating(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	sum := 0
	for _, review := range reviews {
		sum += review.Rating
	}

	return float64(sum) / float64(len(reviews))
}
