package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	"github.com/vparmar-art/MarketplaceApp/internal/middleware"
	"github.com/vparmar-art/MarketplaceApp/internal/service"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/response"
)

type OrderController struct {
	service service.OrderService
}

func CreateOrderController(e *echo.Group, service service.OrderService, isLoggedIn echo.MiddlewareFunc) {
	c := OrderController{
		service: service,
	}

	orders := e.Group("/orders", isLoggedIn)
	orders.GET("", c.GetOrders)
	orders.POST("", c.AddOrder)
	orders.GET("/:id", c.GetOrder)
	orders.PUT("/:id", c.UpdateOrder)
	orders.PATCH("/:id", c.UpdateOrder)
	orders.DELETE("/:id", c.DeleteOrder)
	orders.POST("/:id/cancel", c.CancelOrder)
	orders.POST("/:id/documents", c.AddOrderDocument)
}

func (c *OrderController) GetOrders(e echo.Context) error {
	filter := pkgdto.Filter{}
	if err := bindAndValidate(e, &filter, "GetOrders"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetOrders(e.Request().Context(), middleware.GetActor(e), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "successfuly retrieved orders record", resp)
}

func (c *OrderController) AddOrder(e echo.Context) error {
	payload := dto.OrderRequest{}
	if err := bindAndValidate(e, &payload, "AddOrder"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.AddOrder(e.Request().Context(), middleware.GetActor(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "order created", resp)
}

func (c *OrderController) GetOrder(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetOrder(e.Request().Context(), middleware.GetActor(e), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) UpdateOrder(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.OrderUpdateRequest{}
	if err := bindAndValidate(e, &payload, "UpdateOrder"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ID = id

	resp, err := c.service.UpdateOrder(e.Request().Context(), middleware.GetActor(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *OrderController) DeleteOrder(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err = c.service.DeleteOrder(e.Request().Context(), middleware.GetActor(e), id); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "order deleted", nil)
}

func (c *OrderController) CancelOrder(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.CancelOrder(e.Request().Context(), middleware.GetActor(e), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "order cancelled", resp)
}

func (c *OrderController) AddOrderDocument(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.OrderDocumentRequest{}
	if err := bindAndValidate(e, &payload, "AddOrderDocument"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.OrderID = id

	resp, err := c.service.AddOrderDocument(e.Request().Context(), middleware.GetActor(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "document attached", resp)
}
