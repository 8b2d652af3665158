package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	"github.com/vparmar-art/MarketplaceApp/internal/middleware"
	"github.com/vparmar-art/MarketplaceApp/internal/service"
	"github.com/vparmar-art/MarketplaceApp/pkg/response"
)

type ProductController struct {
	service      service.ProductService
	orderService service.OrderService
}

func CreateProductController(e *echo.Group, service service.ProductService, orderService service.OrderService, isLoggedIn echo.MiddlewareFunc) {
	c := ProductController{
		service:      service,
		orderService: orderService,
	}

	e.GET("/products", c.GetProducts)
	e.GET("/products/:id", c.GetProduct)
	e.POST("/products", c.AddProduct, isLoggedIn)
	e.PUT("/products/:id", c.UpdateProduct, isLoggedIn)
	e.PATCH("/products/:id", c.UpdateProduct, isLoggedIn)
	e.DELETE("/products/:id", c.DeactivateProduct, isLoggedIn)
	e.POST("/products/:id/add_review", c.AddReview, isLoggedIn)
	e.POST("/products/:id/express_interest", c.ExpressInterest, isLoggedIn)
}

func (c *ProductController) GetProducts(e echo.Context) error {
	filter := dto.ProductFilter{}
	if err := bindAndValidate(e, &filter, "GetProducts"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetProducts(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) GetProduct(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetProduct(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) AddProduct(e echo.Context) error {
	payload := dto.ProductRequest{}
	if err := bindAndValidate(e, &payload, "AddProduct"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.AddProduct(e.Request().Context(), middleware.GetActor(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "product created", resp)
}

func (c *ProductController) UpdateProduct(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ProductUpdateRequest{}
	if err := bindAndValidate(e, &payload, "UpdateProduct"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ID = id

	resp, err := c.service.UpdateProduct(e.Request().Context(), middleware.GetActor(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProductController) DeactivateProduct(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err = c.service.DeactivateProduct(e.Request().Context(), middleware.GetActor(e), id); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "product deactivated", nil)
}

func (c *ProductController) AddReview(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ReviewRequest{}
	if err := bindAndValidate(e, &payload, "AddReview"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ProductID = id

	resp, err := c.service.AddReview(e.Request().Context(), middleware.GetActor(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "review added", resp)
}

func (c *ProductController) ExpressInterest(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ExpressInterestRequest{}
	if err := bindAndValidate(e, &payload, "ExpressInterest"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ProductID = id

	resp, err := c.orderService.ExpressInterest(e.Request().Context(), middleware.GetActor(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "inquiry sent", resp)
}
