package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusInquiry      OrderStatus = "inquiry"
	OrderStatusNegotiation  OrderStatus = "negotiation"
	OrderStatusConfirmed    OrderStatus = "confirmed"
	OrderStatusProduction   OrderStatus = "production"
	OrderStatusQualityCheck OrderStatus = "quality_check"
	OrderStatusShipping     OrderStatus = "shipping"
	OrderStatusDelivered    OrderStatus = "delivered"
	OrderStatusCancelled    OrderStatus = "cancelled"
)

// InitialOrderStatus is the status every new order starts in, whichever way it is created.
const InitialOrderStatus = OrderStatusInquiry

var orderStatuses = []OrderStatus{
	OrderStatusInquiry,
	OrderStatusNegotiation,
	OrderStatusConfirmed,
	OrderStatusProduction,
	OrderStatusQualityCheck,
	OrderStatusShipping,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func OrderStatuses() []OrderStatus {
	return append([]OrderStatus(nil), orderStatuses...)
}

func (s OrderStatus) IsValid() bool {
	for _, status := range orderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// IsCancellable is true only before the order is committed to production.
func (s OrderStatus) IsCancellable() bool {
	return s == OrderStatusInquiry || s == OrderStatusNegotiation
}

const (
	PaymentTermsLetterOfCredit        = "letter_of_credit"
	PaymentTermsTelegraphicTransfer   = "telegraphic_transfer"
	PaymentTermsDocumentaryCollection = "documentary_collection"
	PaymentTermsOpenAccount           = "open_account"
	PaymentTermsAdvancePayment        = "advance_payment"
)

func IsValidPaymentTerms(terms string) bool {
	switch terms {
	case PaymentTermsLetterOfCredit, PaymentTermsTelegraphicTransfer, PaymentTermsDocumentaryCollection,
		PaymentTermsOpenAccount, PaymentTermsAdvancePayment:
		return true
	}
	return false
}

const (
	DocumentTypeInvoice               = "invoice"
	DocumentTypePackingList           = "packing_list"
	DocumentTypeBillOfLading          = "bill_of_lading"
	DocumentTypeCertificateOfOrigin   = "certificate_of_origin"
	DocumentTypeInspectionCertificate = "inspection_certificate"
	DocumentTypeInsurance             = "insurance"
	DocumentTypeOther                 = "other"
)

func IsValidDocumentType(documentType string) bool {
	switch documentType {
	case DocumentTypeInvoice, DocumentTypePackingList, DocumentTypeBillOfLading, DocumentTypeCertificateOfOrigin,
		DocumentTypeInspectionCertificate, DocumentTypeInsurance, DocumentTypeOther:
		return true
	}
	return false
}

type Order struct {
	ID                    int64           `db:"id"`
	UserID                int64           `db:"user_id"`
	TotalAmount           decimal.Decimal `db:"total_amount"`
	ShippingAddress       string          `db:"shipping_address"`
	DestinationCountry    string          `db:"destination_country"`
	DestinationPort       *string         `db:"destination_port"`
	ShippingTerms         *string         `db:"shipping_terms"`
	PaymentTerms          *string         `db:"payment_terms"`
	Status                OrderStatus     `db:"status"`
	Notes                 *string         `db:"notes"`
	EstimatedDeliveryDate *time.Time      `db:"estimated_delivery_date"`
	CreatedAt             int64           `db:"created_at"`
	UpdatedAt             int64           `db:"updated_at"`
}

// OrderItem.Price is the product price captured when the order was placed.
type OrderItem struct {
	ID        int64           `db:"id"`
	OrderID   int64           `db:"order_id"`
	ProductID int64           `db:"product_id"`
	Quantity  int64           `db:"quantity"`
	Price     decimal.Decimal `db:"price"`
}

func (i OrderItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

type OrderDocument struct {
	ID           int64   `db:"id"`
	OrderID      int64   `db:"order_id"`
	DocumentType string  `db:"document_type"`
	Document     string  `db:"document"`
	Description  *string `db:"description"`
	UploadedAt   int64   `db:"uploaded_at"`
}

// MaxOrderTotal is the largest value orders.total_amount can hold.
var MaxOrderTotal = decimal.RequireFromString("9999999999999.99")

// OrderTotal sums price*quantity over the items.
func OrderTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
