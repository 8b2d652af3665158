package dto

import "time"

type OrderProductResponse struct {
	ID       int64  `json:"id"`
	SellerID int64  `json:"seller_id"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Image    string `json:"image"`
	IsActive bool   `json:"is_active"`
}

type OrderItemResponse struct {
	ID       int64                `json:"id"`
	Product  OrderProductResponse `json:"product"`
	Quantity int64                `json:"quantity"`
	Price    string               `json:"price"`
}

type OrderDocumentResponse struct {
	ID           int64     `json:"id"`
	OrderID      int64     `json:"order_id"`
	DocumentType string    `json:"document_type"`
	Document     string    `json:"document"`
	Description  *string   `json:"description"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

type OrderResponse struct {
	ID                    int64                   `json:"id"`
	UserID                int64                   `json:"user_id"`
	TotalAmount           string                  `json:"total_amount"`
	ShippingAddress       string                  `json:"shipping_address"`
	DestinationCountry    string                  `json:"destination_country"`
	DestinationPort       *string                 `json:"destination_port"`
	ShippingTerms         *string                 `json:"shipping_terms"`
	PaymentTerms          *string                 `json:"payment_terms"`
	Status                string                  `json:"status"`
	Notes                 *string                 `json:"notes"`
	EstimatedDeliveryDate *string                 `json:"estimated_delivery_date"`
	Items                 []OrderItemResponse     `json:"items"`
	Documents             []OrderDocumentResponse `json:"documents"`
	CreatedAt             time.Time               `json:"created_at"`
	UpdatedAt             time.Time               `json:"updated_at"`
}
