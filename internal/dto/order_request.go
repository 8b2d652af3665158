package dto

// ShippingDetails holds the buyer-supplied shipping fields of an order.
type ShippingDetails struct {
	ShippingAddress       string  `json:"shipping_address" validate:"required"`
	DestinationCountry    string  `json:"destination_country" validate:"required,max=100"`
	DestinationPort       *string `json:"destination_port" validate:"omitempty,max=100"`
	ShippingTerms         *string `json:"shipping_terms" validate:"omitempty,max=100"`
	PaymentTerms          *string `json:"payment_terms"`
	Notes                 *string `json:"notes"`
	EstimatedDeliveryDate *string `json:"estimated_delivery_date" validate:"omitempty,datetime=2006-01-02"`
}

// ExpressInterestRequest opens an inquiry on one product. Only the product is
// required; shipping_details is free text stored as the shipping address.
type ExpressInterestRequest struct {
	ProductID             int64   `json:"-"`
	Quantity              *int64  `json:"quantity"`
	ShippingDetails       string  `json:"shipping_details"`
	Notes                 *string `json:"notes"`
	DestinationCountry    string  `json:"destination_country" validate:"max=100"`
	DestinationPort       *string `json:"destination_port" validate:"omitempty,max=100"`
	ShippingTerms         *string `json:"shipping_terms" validate:"omitempty,max=100"`
	PaymentTerms          *string `json:"payment_terms"`
	EstimatedDeliveryDate *string `json:"estimated_delivery_date" validate:"omitempty,datetime=2006-01-02"`
}

func (r ExpressInterestRequest) Shipping() ShippingDetails {
	return ShippingDetails{
		ShippingAddress:       r.ShippingDetails,
		DestinationCountry:    r.DestinationCountry,
		DestinationPort:       r.DestinationPort,
		ShippingTerms:         r.ShippingTerms,
		PaymentTerms:          r.PaymentTerms,
		Notes:                 r.Notes,
		EstimatedDeliveryDate: r.EstimatedDeliveryDate,
	}
}

type OrderItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required"`
	Quantity  int64 `json:"quantity"`
}

type OrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"dive"`
	ShippingDetails
}

type OrderUpdateRequest struct {
	ID                    int64   `json:"-"`
	Status                *string `json:"status"`
	ShippingAddress       *string `json:"shipping_address" validate:"omitempty,min=1"`
	DestinationCountry    *string `json:"destination_country" validate:"omitempty,min=1,max=100"`
	DestinationPort       *string `json:"destination_port" validate:"omitempty,max=100"`
	ShippingTerms         *string `json:"shipping_terms" validate:"omitempty,max=100"`
	PaymentTerms          *string `json:"payment_terms"`
	Notes                 *string `json:"notes"`
	EstimatedDeliveryDate *string `json:"estimated_delivery_date" validate:"omitempty,datetime=2006-01-02"`
}

// HasShippingChanges reports whether any buyer-editable field is set.
func (r OrderUpdateRequest) HasShippingChanges() bool {
	return r.ShippingAddress != nil || r.DestinationCountry != nil || r.DestinationPort != nil ||
		r.ShippingTerms != nil || r.PaymentTerms != nil || r.Notes != nil || r.EstimatedDeliveryDate != nil
}

type OrderDocumentRequest struct {
	OrderID      int64   `json:"-"`
	DocumentType string  `json:"document_type" validate:"required"`
	Document     string  `json:"document" validate:"required"`
	Description  *string `json:"description"`
}
