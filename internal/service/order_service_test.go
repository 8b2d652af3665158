package service

import (
	"errors"

	"github.com/stretchr/testify/mock"
	"github.com/vparmar-art/MarketplaceApp/internal/domain"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
)

func shipping() dto.ShippingDetails {
	return dto.ShippingDetails{
		ShippingAddress:    "1 Harbour Road",
		DestinationCountry: "NL",
	}
}

func (s *ServiceTestSuite) TestExpressInterestSnapshotsPrice() {
	spices := s.seedCategory("Spices")
	product := s.seedProduct(spices.ID, "Pepper", "10.00", 1)

	resp, err := s.orderService.ExpressInterest(s.ctx, s.buyer, dto.ExpressInterestRequest{
		ProductID:             product.ID,
		Quantity:              int64Ptr(3),
		ShippingDetails:       "1 Harbour Road, Rotterdam",
		Notes:                 strPtr("urgent"),
		PaymentTerms:          strPtr(domain.PaymentTermsLetterOfCredit),
		EstimatedDeliveryDate: strPtr("2024-07-15"),
	})
	s.Require().NoError(err)

	s.Equal(string(domain.OrderStatusInquiry), resp.Status)
	s.Equal("30.00", resp.TotalAmount)
	s.Equal(s.buyer.UserID, resp.UserID)
	s.Equal("2024-07-15", *resp.EstimatedDeliveryDate)
	s.Equal("1 Harbour Road, Rotterdam", resp.ShippingAddress)
	s.Require().NotNil(resp.Notes)
	s.Equal("urgent", *resp.Notes)
	s.Require().Len(resp.Items, 1)
	s.Equal("10.00", resp.Items[0].Price)
	s.Equal(int64(3), resp.Items[0].Quantity)
	s.Equal(s.seller.UserID, resp.Items[0].Product.SellerID)

	s.notifier.AssertCalled(s.T(), "Send", "seller@example.com", mock.Anything, mock.Anything)
	s.publisher.AssertCalled(s.T(), "Publish", mock.Anything, formatID(resp.ID), mock.MatchedBy(func(msg dto.KafkaMessage) bool {
		return msg.EventType == dto.EventOrderCreated
	}))

	product.Price = *decimalPtr("12.00")
	s.db.products[product.ID] = product

	got, err := s.orderService.GetOrder(s.ctx, s.buyer, resp.ID)
	s.Require().NoError(err)
	s.Equal("10.00", got.Items[0].Price)
	s.Equal("30.00", got.TotalAmount)
}

func (s *ServiceTestSuite) TestExpressInterestDefaultsQuantity() {
	spices := s.seedCategory("Spices")
	product := s.seedProduct(spices.ID, "Pepper", "4.50", 1)

	resp, err := s.orderService.ExpressInterest(s.ctx, s.buyer, dto.ExpressInterestRequest{ProductID: product.ID})
	s.Require().NoError(err)
	s.Equal(int64(1), resp.Items[0].Quantity)
	s.Equal("4.50", resp.TotalAmount)
	s.Equal("", resp.ShippingAddress)
	s.Equal("", resp.DestinationCountry)
}

func (s *ServiceTestSuite) TestExpressInterestRejectsInput() {
	spices := s.seedCategory("Spices")
	product := s.seedProduct(spices.ID, "Pepper", "4.50", 1)
	inactive := s.seedProduct(spices.ID, "Cumin", "3.00", 2)
	inactive.IsActive = false
	s.db.products[inactive.ID] = inactive

	type TestCase struct {
		Name     string
		Actor    domain.Actor
		Request  dto.ExpressInterestRequest
		Expected error
	}

	testCases := []TestCase{
		{Name: "zero quantity", Actor: s.buyer, Request: dto.ExpressInterestRequest{ProductID: product.ID, Quantity: int64Ptr(0)}, Expected: errs.ErrInvalidQuantity},
		{Name: "negative quantity", Actor: s.buyer, Request: dto.ExpressInterestRequest{ProductID: product.ID, Quantity: int64Ptr(-2)}, Expected: errs.ErrInvalidQuantity},
		{Name: "inactive product", Actor: s.buyer, Request: dto.ExpressInterestRequest{ProductID: inactive.ID}, Expected: errs.ErrProductNotFound},
		{Name: "missing product", Actor: s.buyer, Request: dto.ExpressInterestRequest{ProductID: 9999}, Expected: errs.ErrProductNotFound},
		{Name: "payment terms", Actor: s.buyer, Request: dto.ExpressInterestRequest{ProductID: product.ID, PaymentTerms: strPtr("barter")}, Expected: errs.ErrInvalidPaymentTerms},
		{Name: "date format", Actor: s.buyer, Request: dto.ExpressInterestRequest{ProductID: product.ID, EstimatedDeliveryDate: strPtr("15/07/2024")}, Expected: errs.ErrInvalidDate},
		{Name: "anonymous", Actor: s.seedAnonymous(), Request: dto.ExpressInterestRequest{ProductID: product.ID}, Expected: errs.ErrNotLoggedIn},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			_, err := s.orderService.ExpressInterest(s.ctx, tc.Actor, tc.Request)
			s.ErrorIs(err, tc.Expected)
		})
	}

	s.Empty(s.db.orders)
	s.Empty(s.db.items)
}

func (s *ServiceTestSuite) TestAddOrder() {
	spices := s.seedCategory("Spices")
	pepper := s.seedProduct(spices.ID, "Pepper", "4.50", 1)
	saffron := s.seedProduct(spices.ID, "Saffron", "120.00", 2)

	resp, err := s.orderService.AddOrder(s.ctx, s.buyer, dto.OrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: pepper.ID, Quantity: 10},
			{ProductID: saffron.ID, Quantity: 2},
		},
		ShippingDetails: shipping(),
	})
	s.Require().NoError(err)
	s.Equal("285.00", resp.TotalAmount)
	s.Len(resp.Items, 2)
	s.Len(s.db.items, 2)

	s.notifier.AssertNumberOfCalls(s.T(), "Send", 1)
}

func (s *ServiceTestSuite) TestAddOrderValidation() {
	spices := s.seedCategory("Spices")
	pepper := s.seedProduct(spices.ID, "Pepper", "4.50", 1)

	_, err := s.orderService.AddOrder(s.ctx, s.buyer, dto.OrderRequest{ShippingDetails: shipping()})
	s.ErrorIs(err, errs.ErrEmptyOrder)

	_, err = s.orderService.AddOrder(s.ctx, s.buyer, dto.OrderRequest{
		Items:           []dto.OrderItemRequest{{ProductID: pepper.ID, Quantity: 0}},
		ShippingDetails: shipping(),
	})
	s.ErrorIs(err, errs.ErrInvalidQuantity)

	_, err = s.orderService.AddOrder(s.ctx, s.buyer, dto.OrderRequest{
		Items:           []dto.OrderItemRequest{{ProductID: pepper.ID, Quantity: 1}, {ProductID: 9999, Quantity: 1}},
		ShippingDetails: shipping(),
	})
	s.ErrorIs(err, errs.ErrProductNotFound)

	s.Empty(s.db.orders)
}

func (s *ServiceTestSuite) TestOrderTotalMustFitAmountColumn() {
	spices := s.seedCategory("Spices")
	saffron := s.seedProduct(spices.ID, "Saffron", "99999999.99", 1)

	_, err := s.orderService.AddOrder(s.ctx, s.buyer, dto.OrderRequest{
		Items:           []dto.OrderItemRequest{{ProductID: saffron.ID, Quantity: 100001}},
		ShippingDetails: shipping(),
	})
	s.ErrorIs(err, errs.ErrOrderTotalTooLarge)

	_, err = s.orderService.ExpressInterest(s.ctx, s.buyer, dto.ExpressInterestRequest{
		ProductID: saffron.ID,
		Quantity:  int64Ptr(100001),
	})
	s.ErrorIs(err, errs.ErrOrderTotalTooLarge)
	s.Empty(s.db.orders)

	resp, err := s.orderService.ExpressInterest(s.ctx, s.buyer, dto.ExpressInterestRequest{
		ProductID: saffron.ID,
		Quantity:  int64Ptr(100000),
	})
	s.Require().NoError(err)
	s.Equal("9999999999000.00", resp.TotalAmount)
}

func (s *ServiceTestSuite) TestAddOrderRollsBackWhenItemFails() {
	spices := s.seedCategory("Spices")
	pepper := s.seedProduct(spices.ID, "Pepper", "4.50", 1)
	s.db.failOn["AddOrderItem"] = errors.New("connection reset")

	_, err := s.orderService.AddOrder(s.ctx, s.buyer, dto.OrderRequest{
		Items:           []dto.OrderItemRequest{{ProductID: pepper.ID, Quantity: 1}},
		ShippingDetails: shipping(),
	})
	s.Error(err)
	s.Empty(s.db.orders)
	s.Empty(s.db.items)
	s.notifier.AssertNotCalled(s.T(), "Send", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ServiceTestSuite) TestOrderVisibility() {
	own := s.seedOrder(s.buyer, domain.OrderStatusInquiry)
	s.seedOrder(s.other, domain.OrderStatusInquiry)

	list, err := s.orderService.GetOrders(s.ctx, s.buyer, pkgdto.Filter{})
	s.Require().NoError(err)
	s.Equal(uint64(1), list.Metadata.TotalCount)
	s.Equal(own.ID, list.Records.([]dto.OrderResponse)[0].ID)

	all, err := s.orderService.GetOrders(s.ctx, s.staff, pkgdto.Filter{})
	s.Require().NoError(err)
	s.Equal(uint64(2), all.Metadata.TotalCount)

	_, err = s.orderService.GetOrders(s.ctx, s.seedAnonymous(), pkgdto.Filter{})
	s.ErrorIs(err, errs.ErrNotLoggedIn)

	_, err = s.orderService.GetOrder(s.ctx, s.other, own.ID)
	s.ErrorIs(err, errs.ErrOrderNotFound)

	got, err := s.orderService.GetOrder(s.ctx, s.staff, own.ID)
	s.NoError(err)
	s.Equal("10.00", got.TotalAmount)
}

func (s *ServiceTestSuite) TestUpdateOrder() {
	type TestCase struct {
		Name     string
		Actor    domain.Actor
		Status   domain.OrderStatus
		Request  dto.OrderUpdateRequest
		Expected error
	}

	testCases := []TestCase{
		{Name: "buyer cannot change status", Actor: s.buyer, Status: domain.OrderStatusInquiry, Request: dto.OrderUpdateRequest{Status: strPtr("confirmed")}, Expected: errs.ErrStatusChangeForbidden},
		{Name: "buyer edits while negotiating", Actor: s.buyer, Status: domain.OrderStatusNegotiation, Request: dto.OrderUpdateRequest{Notes: strPtr("Palletised please")}},
		{Name: "buyer locked after confirmation", Actor: s.buyer, Status: domain.OrderStatusConfirmed, Request: dto.OrderUpdateRequest{Notes: strPtr("late change")}, Expected: errs.ErrOrderLocked},
		{Name: "other user", Actor: s.other, Status: domain.OrderStatusInquiry, Request: dto.OrderUpdateRequest{Notes: strPtr("hi")}, Expected: errs.ErrOrderNotFound},
		{Name: "staff moves status", Actor: s.staff, Status: domain.OrderStatusProduction, Request: dto.OrderUpdateRequest{Status: strPtr("quality_check")}},
		{Name: "staff edits after confirmation", Actor: s.staff, Status: domain.OrderStatusShipping, Request: dto.OrderUpdateRequest{DestinationPort: strPtr("Rotterdam")}},
		{Name: "unknown status", Actor: s.staff, Status: domain.OrderStatusInquiry, Request: dto.OrderUpdateRequest{Status: strPtr("lost")}, Expected: errs.ErrInvalidOrderStatus},
		{Name: "delivered is closed", Actor: s.staff, Status: domain.OrderStatusDelivered, Request: dto.OrderUpdateRequest{Status: strPtr("shipping")}, Expected: errs.ErrOrderClosed},
		{Name: "cancelled is closed", Actor: s.buyer, Status: domain.OrderStatusCancelled, Request: dto.OrderUpdateRequest{Notes: strPtr("reopen")}, Expected: errs.ErrOrderClosed},
		{Name: "bad date", Actor: s.buyer, Status: domain.OrderStatusInquiry, Request: dto.OrderUpdateRequest{EstimatedDeliveryDate: strPtr("soon")}, Expected: errs.ErrInvalidDate},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			order := s.seedOrder(s.buyer, tc.Status)
			tc.Request.ID = order.ID

			_, err := s.orderService.UpdateOrder(s.ctx, tc.Actor, tc.Request)
			if tc.Expected != nil {
				s.ErrorIs(err, tc.Expected)
				s.Equal(order, s.db.orders[order.ID])
				return
			}
			s.NoError(err)
			s.Equal(s.clock.UnixMilli(), s.db.orders[order.ID].UpdatedAt)
		})
	}

	_, err := s.orderService.UpdateOrder(s.ctx, s.staff, dto.OrderUpdateRequest{ID: 9999, Notes: strPtr("x")})
	s.ErrorIs(err, errs.ErrOrderNotFound)
}

func (s *ServiceTestSuite) TestUpdateOrderAppliesFields() {
	order := s.seedOrder(s.buyer, domain.OrderStatusInquiry)

	resp, err := s.orderService.UpdateOrder(s.ctx, s.buyer, dto.OrderUpdateRequest{
		ID:                    order.ID,
		PaymentTerms:          strPtr(domain.PaymentTermsOpenAccount),
		EstimatedDeliveryDate: strPtr("2024-08-01"),
		ShippingTerms:         strPtr("FOB"),
	})
	s.Require().NoError(err)
	s.Equal(domain.PaymentTermsOpenAccount, *resp.PaymentTerms)
	s.Equal("2024-08-01", *resp.EstimatedDeliveryDate)
	s.Equal("FOB", *resp.ShippingTerms)
	s.Equal("1 Harbour Road", resp.ShippingAddress)
	s.Equal(string(domain.OrderStatusInquiry), resp.Status)
}

func (s *ServiceTestSuite) TestCancelOrder() {
	inquiry := s.seedOrder(s.buyer, domain.OrderStatusInquiry)
	shipped := s.seedOrder(s.buyer, domain.OrderStatusShipping)

	_, err := s.orderService.CancelOrder(s.ctx, s.buyer, shipped.ID)
	s.ErrorIs(err, errs.ErrOrderNotCancellable)
	s.Equal(errs.ErrStatusConflict, errs.GetErrorStatusCode(err))
	s.Equal(domain.OrderStatusShipping, s.db.orders[shipped.ID].Status)

	_, err = s.orderService.CancelOrder(s.ctx, s.other, inquiry.ID)
	s.ErrorIs(err, errs.ErrOrderNotFound)
	s.Equal(domain.OrderStatusInquiry, s.db.orders[inquiry.ID].Status)

	resp, err := s.orderService.CancelOrder(s.ctx, s.buyer, inquiry.ID)
	s.Require().NoError(err)
	s.Equal(string(domain.OrderStatusCancelled), resp.Status)
	s.Equal(domain.OrderStatusCancelled, s.db.orders[inquiry.ID].Status)

	s.notifier.AssertCalled(s.T(), "Send", "buyer@example.com", mock.Anything, mock.Anything)
	s.publisher.AssertCalled(s.T(), "Publish", mock.Anything, formatID(inquiry.ID), mock.MatchedBy(func(msg dto.KafkaMessage) bool {
		return msg.EventType == dto.EventOrderCancelled
	}))

	_, err = s.orderService.CancelOrder(s.ctx, s.buyer, inquiry.ID)
	s.ErrorIs(err, errs.ErrOrderNotCancellable)
}

func (s *ServiceTestSuite) TestDeleteOrderIsStaffOnly() {
	order := s.seedOrder(s.buyer, domain.OrderStatusInquiry)

	s.ErrorIs(s.orderService.DeleteOrder(s.ctx, s.buyer, order.ID), errs.ErrForbidden)
	s.Contains(s.db.orders, order.ID)

	s.NoError(s.orderService.DeleteOrder(s.ctx, s.staff, order.ID))
	s.NotContains(s.db.orders, order.ID)

	s.ErrorIs(s.orderService.DeleteOrder(s.ctx, s.staff, order.ID), errs.ErrOrderNotFound)
}

func (s *ServiceTestSuite) TestAddOrderDocument() {
	order := s.seedOrder(s.buyer, domain.OrderStatusConfirmed)

	_, err := s.orderService.AddOrderDocument(s.ctx, s.buyer, dto.OrderDocumentRequest{OrderID: order.ID, DocumentType: "receipt", Document: "r.pdf"})
	s.ErrorIs(err, errs.ErrInvalidDocumentType)

	_, err = s.orderService.AddOrderDocument(s.ctx, s.other, dto.OrderDocumentRequest{OrderID: order.ID, DocumentType: domain.DocumentTypeInvoice, Document: "i.pdf"})
	s.ErrorIs(err, errs.ErrOrderNotFound)

	_, err = s.orderService.AddOrderDocument(s.ctx, s.buyer, dto.OrderDocumentRequest{OrderID: 9999, DocumentType: domain.DocumentTypeInvoice, Document: "i.pdf"})
	s.ErrorIs(err, errs.ErrOrderNotFound)

	document, err := s.orderService.AddOrderDocument(s.ctx, s.buyer, dto.OrderDocumentRequest{
		OrderID:      order.ID,
		DocumentType: domain.DocumentTypeInvoice,
		Document:     " invoice-001.pdf ",
		Description:  strPtr("Proforma"),
	})
	s.Require().NoError(err)
	s.Equal("invoice-001.pdf", document.Document)
	s.True(s.clock.Equal(document.UploadedAt))

	got, err := s.orderService.GetOrder(s.ctx, s.buyer, order.ID)
	s.Require().NoError(err)
	s.Require().Len(got.Documents, 1)
	s.Equal("Proforma", *got.Documents[0].Description)
}
