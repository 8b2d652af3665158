package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	"github.com/vparmar-art/MarketplaceApp/internal/repository"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
)

const dateLayout = "2006-01-02"

type OrderServiceImpl struct {
	orderRepository   repository.OrderRepository
	catalogRepository repository.CatalogRepository
	userRepository    repository.UserRepository
	publisher         EventPublisher
	notifier          Notifier
	now               func() time.Time
}

func CreateOrderService(orderRepository repository.OrderRepository, catalogRepository repository.CatalogRepository, userRepository repository.UserRepository, publisher EventPublisher, notifier Notifier) OrderService {
	return &OrderServiceImpl{
		orderRepository:   orderRepository,
		catalogRepository: catalogRepository,
		userRepository:    userRepository,
		publisher:         publisher,
		notifier:          notifier,
		now:               time.Now,
	}
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}

	date, err := time.Parse(dateLayout, *value)
	if err != nil {
		return nil, errs.ErrInvalidDate
	}
	return &date, nil
}

func parsePaymentTerms(value *string) (*string, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	if !domain.IsValidPaymentTerms(*value) {
		return nil, errs.ErrInvalidPaymentTerms
	}
	terms := *value
	return &terms, nil
}

// newOrder validates the shipping details and returns an order in the initial status.
func (s *OrderServiceImpl) newOrder(buyerID int64, details dto.ShippingDetails) (order domain.Order, err error) {
	paymentTerms, err := parsePaymentTerms(details.PaymentTerms)
	if err != nil {
		return order, err
	}

	estimatedDeliveryDate, err := parseDate(details.EstimatedDeliveryDate)
	if err != nil {
		return order, err
	}

	now := s.now().UnixMilli()
	order = domain.Order{
		UserID:                buyerID,
		ShippingAddress:       details.ShippingAddress,
		DestinationCountry:    details.DestinationCountry,
		PaymentTerms:          paymentTerms,
		Status:                domain.InitialOrderStatus,
		EstimatedDeliveryDate: estimatedDeliveryDate,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	assignOptional(&order.DestinationPort, details.DestinationPort)
	assignOptional(&order.ShippingTerms, details.ShippingTerms)
	assignOptional(&order.Notes, details.Notes)

	return order, nil
}

// placeOrder stores the order and its items in one transaction.
func (s *OrderServiceImpl) placeOrder(ctx context.Context, order domain.Order, items []domain.OrderItem) (domain.Order, []domain.OrderItem, error) {
	order.TotalAmount = domain.OrderTotal(items)
	if order.TotalAmount.GreaterThan(domain.MaxOrderTotal) {
		return order, nil, errs.ErrOrderTotalTooLarge
	}

	err := s.orderRepository.HandleTrx(ctx, func(repo repository.OrderRepository) error {
		id, err := repo.AddOrder(ctx, order)
		if err != nil {
			return err
		}
		order.ID = id

		for i := range items {
			items[i].OrderID = id
			if items[i].ID, err = repo.AddOrderItem(ctx, items[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return order, nil, err
	}

	publishEvent(ctx, s.publisher, strconv.FormatInt(order.ID, 10), dto.EventOrderCreated, toOrderEvent(order))

	return order, items, nil
}

func (s *OrderServiceImpl) notifySellers(ctx context.Context, order domain.Order, products []domain.Product) {
	sellerIDs := make([]int64, 0, len(products))
	for _, product := range products {
		sellerIDs = append(sellerIDs, product.SellerID)
	}

	sellers, err := s.userRepository.GetUsersByIDs(ctx, uniqueIDs(sellerIDs))
	if err != nil {
		return
	}

	for _, seller := range sellers {
		notify(s.notifier, seller.Email,
			fmt.Sprintf("New inquiry #%d", order.ID),
			fmt.Sprintf("Hello %s,\n\nA buyer has expressed interest in your products. Order #%d was opened with status %q and a total of %s.\n", seller.Username, order.ID, order.Status, order.TotalAmount.StringFixed(2)))
	}
}

func (s *OrderServiceImpl) ExpressInterest(ctx context.Context, actor domain.Actor, req dto.ExpressInterestRequest) (resp dto.OrderResponse, err error) {
	if !actor.IsAuthenticated() {
		return resp, errs.ErrNotLoggedIn
	}

	quantity := int64(1)
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity <= 0 {
		return resp, errs.ErrInvalidQuantity
	}

	order, err := s.newOrder(actor.UserID, req.Shipping())
	if err != nil {
		return resp, err
	}

	product, err := s.catalogRepository.GetProductByID(ctx, req.ProductID)
	if err != nil {
		return resp, err
	}
	if product.ID == 0 || !product.IsActive {
		return resp, errs.ErrProductNotFound
	}

	items := []domain.OrderItem{{
		ProductID: product.ID,
		Quantity:  quantity,
		Price:     product.Price,
	}}

	order, items, err = s.placeOrder(ctx, order, items)
	if err != nil {
		return resp, err
	}

	s.notifySellers(ctx, order, []domain.Product{product})

	return toOrderResponse(order, items, nil, map[int64]domain.Product{product.ID: product}), nil
}

func (s *OrderServiceImpl) AddOrder(ctx context.Context, actor domain.Actor, req dto.OrderRequest) (resp dto.OrderResponse, err error) {
	if !actor.IsAuthenticated() {
		return resp, errs.ErrNotLoggedIn
	}
	if len(req.Items) == 0 {
		return resp, errs.ErrEmptyOrder
	}

	productIDs := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return resp, errs.ErrInvalidQuantity
		}
		productIDs = append(productIDs, item.ProductID)
	}

	order, err := s.newOrder(actor.UserID, req.ShippingDetails)
	if err != nil {
		return resp, err
	}

	products, err := s.catalogRepository.GetProductsByIDs(ctx, uniqueIDs(productIDs))
	if err != nil {
		return resp, err
	}
	productMap := make(map[int64]domain.Product, len(products))
	for _, product := range products {
		productMap[product.ID] = product
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		product, ok := productMap[item.ProductID]
		if !ok || !product.IsActive {
			return resp, errs.ErrProductNotFound
		}
		items = append(items, domain.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	order, items, err = s.placeOrder(ctx, order, items)
	if err != nil {
		return resp, err
	}

	s.notifySellers(ctx, order, products)

	return toOrderResponse(order, items, nil, productMap), nil
}

func (s *OrderServiceImpl) GetOrders(ctx context.Context, actor domain.Actor, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error) {
	if !actor.IsAuthenticated() {
		return resp, errs.ErrNotLoggedIn
	}

	buyerID := actor.UserID
	if actor.IsStaff {
		buyerID = 0
	}

	filter = filter.Normalize()

	orders, err := s.orderRepository.GetOrders(ctx, filter, buyerID)
	if err != nil {
		return resp, err
	}

	count, err := s.orderRepository.CountOrders(ctx, buyerID)
	if err != nil {
		return resp, err
	}

	records, err := s.assembleOrders(ctx, orders)
	if err != nil {
		return resp, err
	}

	return paginated(records, count, filter), nil
}

func (s *OrderServiceImpl) getOrderResponse(ctx context.Context, order domain.Order) (resp dto.OrderResponse, err error) {
	records, err := s.assembleOrders(ctx, []domain.Order{order})
	if err != nil {
		return resp, err
	}

	return records[0], nil
}

func (s *OrderServiceImpl) GetOrder(ctx context.Context, actor domain.Actor, id int64) (resp dto.OrderResponse, err error) {
	order, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		return resp, err
	}
	if order.ID == 0 || !actor.CanManage(order.UserID) {
		return resp, errs.ErrOrderNotFound
	}

	return s.getOrderResponse(ctx, order)
}

// UpdateOrder applies a partial update under a row lock. Only staff may move
// the status; buyers may edit shipping details until the order leaves the
// cancellable states.
func (s *OrderServiceImpl) UpdateOrder(ctx context.Context, actor domain.Actor, req dto.OrderUpdateRequest) (resp dto.OrderResponse, err error) {
	if req.Status != nil && !actor.IsStaff {
		return resp, errs.ErrStatusChangeForbidden
	}

	paymentTerms, err := parsePaymentTerms(req.PaymentTerms)
	if err != nil {
		return resp, err
	}
	estimatedDeliveryDate, err := parseDate(req.EstimatedDeliveryDate)
	if err != nil {
		return resp, err
	}

	var order domain.Order
	err = s.orderRepository.HandleTrx(ctx, func(repo repository.OrderRepository) error {
		order, err = repo.LockOrderByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if order.ID == 0 || !actor.CanManage(order.UserID) {
			return errs.ErrOrderNotFound
		}
		if order.Status.IsTerminal() {
			return errs.ErrOrderClosed
		}

		if req.HasShippingChanges() {
			if !actor.IsStaff && !order.Status.IsCancellable() {
				return errs.ErrOrderLocked
			}
			if req.ShippingAddress != nil {
				order.ShippingAddress = *req.ShippingAddress
			}
			if req.DestinationCountry != nil {
				order.DestinationCountry = *req.DestinationCountry
			}
			if req.PaymentTerms != nil {
				order.PaymentTerms = paymentTerms
			}
			if req.EstimatedDeliveryDate != nil {
				order.EstimatedDeliveryDate = estimatedDeliveryDate
			}
			assignOptional(&order.DestinationPort, req.DestinationPort)
			assignOptional(&order.ShippingTerms, req.ShippingTerms)
			assignOptional(&order.Notes, req.Notes)
		}

		if req.Status != nil {
			status := domain.OrderStatus(*req.Status)
			if !status.IsValid() {
				return errs.ErrInvalidOrderStatus
			}
			order.Status = status
		}

		order.UpdatedAt = s.now().UnixMilli()
		return repo.UpdateOrder(ctx, order)
	})
	if err != nil {
		return resp, err
	}

	publishEvent(ctx, s.publisher, strconv.FormatInt(order.ID, 10), dto.EventOrderUpdated, toOrderEvent(order))

	return s.getOrderResponse(ctx, order)
}

func (s *OrderServiceImpl) CancelOrder(ctx context.Context, actor domain.Actor, id int64) (resp dto.OrderResponse, err error) {
	var order domain.Order
	err = s.orderRepository.HandleTrx(ctx, func(repo repository.OrderRepository) error {
		order, err = repo.LockOrderByID(ctx, id)
		if err != nil {
			return err
		}
		if order.ID == 0 || !actor.CanManage(order.UserID) {
			return errs.ErrOrderNotFound
		}
		if !order.Status.IsCancellable() {
			return errs.ErrOrderNotCancellable
		}

		order.Status = domain.OrderStatusCancelled
		order.UpdatedAt = s.now().UnixMilli()
		return repo.UpdateOrder(ctx, order)
	})
	if err != nil {
		return resp, err
	}

	publishEvent(ctx, s.publisher, strconv.FormatInt(order.ID, 10), dto.EventOrderCancelled, toOrderEvent(order))

	if buyer, err := s.userRepository.GetUserByID(ctx, order.UserID); err == nil {
		notify(s.notifier, buyer.Email,
			fmt.Sprintf("Order #%d cancelled", order.ID),
			fmt.Sprintf("Hello %s,\n\nOrder #%d has been cancelled.\n", buyer.Username, order.ID))
	}

	return s.getOrderResponse(ctx, order)
}

func (s *OrderServiceImpl) DeleteOrder(ctx context.Context, actor domain.Actor, id int64) (err error) {
	if !actor.IsStaff {
		return errs.ErrForbidden
	}

	order, err := s.orderRepository.GetOrderByID(ctx, id)
	if err != nil {
		return err
	}
	if order.ID == 0 {
		return errs.ErrOrderNotFound
	}

	return s.orderRepository.DeleteOrder(ctx, id)
}

func (s *OrderServiceImpl) AddOrderDocument(ctx context.Context, actor domain.Actor, req dto.OrderDocumentRequest) (resp dto.OrderDocumentResponse, err error) {
	order, err := s.orderRepository.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		return resp, err
	}
	if order.ID == 0 || !actor.CanManage(order.UserID) {
		return resp, errs.ErrOrderNotFound
	}
	if !domain.IsValidDocumentType(req.DocumentType) {
		return resp, errs.ErrInvalidDocumentType
	}

	document := domain.OrderDocument{
		OrderID:      order.ID,
		DocumentType: req.DocumentType,
		Document:     strings.TrimSpace(req.Document),
		UploadedAt:   s.now().UnixMilli(),
	}
	assignOptional(&document.Description, req.Description)

	document.ID, err = s.orderRepository.AddOrderDocument(ctx, document)
	if err != nil {
		return resp, err
	}

	return toOrderDocumentResponse(document), nil
}

func toOrderEvent(order domain.Order) dto.OrderEvent {
	return dto.OrderEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount.StringFixed(2),
	}
}

func toOrderDocumentResponse(document domain.OrderDocument) dto.OrderDocumentResponse {
	return dto.OrderDocumentResponse{
		ID:           document.ID,
		OrderID:      document.OrderID,
		DocumentType: document.DocumentType,
		Document:     document.Document,
		Description:  document.Description,
		UploadedAt:   toTime(document.UploadedAt),
	}
}

func toOrderResponse(order domain.Order, items []domain.OrderItem, documents []domain.OrderDocument, products map[int64]domain.Product) dto.OrderResponse {
	resp := dto.OrderResponse{
		ID:                 order.ID,
		UserID:             order.UserID,
		TotalAmount:        order.TotalAmount.StringFixed(2),
		ShippingAddress:    order.ShippingAddress,
		DestinationCountry: order.DestinationCountry,
		DestinationPort:    order.DestinationPort,
		ShippingTerms:      order.ShippingTerms,
		PaymentTerms:       order.PaymentTerms,
		Status:             string(order.Status),
		Notes:              order.Notes,
		Items:              make([]dto.OrderItemResponse, 0, len(items)),
		Documents:          make([]dto.OrderDocumentResponse, 0, len(documents)),
		CreatedAt:          toTime(order.CreatedAt),
		UpdatedAt:          toTime(order.UpdatedAt),
	}

	if order.EstimatedDeliveryDate != nil {
		date := order.EstimatedDeliveryDate.Format(dateLayout)
		resp.EstimatedDeliveryDate = &date
	}

	for _, item := range items {
		product := products[item.ProductID]
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID: item.ID,
			Product: dto.OrderProductResponse{
				ID:       item.ProductID,
				SellerID: product.SellerID,
				Name:     product.Name,
				Unit:     product.Unit,
				Image:    product.Image,
				IsActive: product.IsActive,
			},
			Quantity: item.Quantity,
			Price:    item.Price.StringFixed(2),
		})
	}

	for _, document := range documents {
		resp.Documents = append(resp.Documents, toOrderDocumentResponse(document))
	}

	return resp
}

func (s *OrderServiceImpl) assembleOrders(ctx context.Context, orders []domain.Order) (records []dto.OrderResponse, err error) {
	records = make([]dto.OrderResponse, 0, len(orders))
	if len(orders) == 0 {
		return records, nil
	}

	orderIDs := make([]int64, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}

	items, err := s.orderRepository.GetOrderItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	documents, err := s.orderRepository.GetOrderDocumentsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, err
	}

	productIDs := make([]int64, 0, len(items))
	itemMap := make(map[int64][]domain.OrderItem)
	for _, item := range items {
		productIDs = append(productIDs, item.ProductID)
		itemMap[item.OrderID] = append(itemMap[item.OrderID], item)
	}
	documentMap := make(map[int64][]domain.OrderDocument)
	for _, document := range documents {
		documentMap[document.OrderID] = append(documentMap[document.OrderID], document)
	}

	products, err := s.catalogRepository.GetProductsByIDs(ctx, uniqueIDs(productIDs))
	if err != nil {
		return nil, err
	}
	productMap := make(map[int64]domain.Product, len(products))
	for _, product := range products {
		productMap[product.ID] = product
	}

	for _, order := range orders {
		records = append(records, toOrderResponse(order, itemMap[order.ID], documentMap[order.ID], productMap))
	}

	return records, nil
}
