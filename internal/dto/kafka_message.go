package dto

const (
	EventProductCreated     = "product_created"
	EventProductUpdated     = "product_updated"
	EventProductDeactivated = "product_deactivated"
	EventReviewAdded        = "review_added"
	EventOrderCreated       = "order_created"
	EventOrderUpdated       = "order_updated"
	EventOrderCancelled     = "order_cancelled"
	EventUserRegistered     = "user_registered"
)

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type UserRegisteredEvent struct {
	UserID     int64  `json:"user_id"`
	ExternalID string `json:"external_id"`
	Username   string `json:"username"`
	Email      string `json:"email"`
}

type ProductEvent struct {
	ProductID  int64  `json:"product_id"`
	SellerID   int64  `json:"seller_id"`
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	IsActive   bool   `json:"is_active"`
}

type ReviewEvent struct {
	ReviewID  int64 `json:"review_id"`
	ProductID int64 `json:"product_id"`
	UserID    int64 `json:"user_id"`
	Rating    int   `json:"rating"`
}

type OrderEvent struct {
	OrderID     int64  `json:"order_id"`
	UserID      int64  `json:"user_id"`
	Status      string `json:"status"`
	TotalAmount string `json:"total_amount"`
}
