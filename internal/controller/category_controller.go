package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	"github.com/vparmar-art/MarketplaceApp/internal/middleware"
	"github.com/vparmar-art/MarketplaceApp/internal/service"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/response"
)

type CategoryController struct {
	service service.CategoryService
}

func CreateCategoryController(e *echo.Group, service service.CategoryService, isLoggedIn echo.MiddlewareFunc) {
	c := CategoryController{
		service: service,
	}

	e.GET("/categories", c.GetCategories)
	e.GET("/categories/:id", c.GetCategory)
	e.POST("/categories", c.AddCategory, isLoggedIn)
	e.PUT("/categories/:id", c.UpdateCategory, isLoggedIn)
	e.PATCH("/categories/:id", c.UpdateCategory, isLoggedIn)
	e.DELETE("/categories/:id", c.DeleteCategory, isLoggedIn)
}

func (c *CategoryController) GetCategories(e echo.Context) error {
	filter := pkgdto.Filter{}
	if err := bindAndValidate(e, &filter, "GetCategories"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetCategories(e.Request().Context(), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CategoryController) GetCategory(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetCategory(e.Request().Context(), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CategoryController) AddCategory(e echo.Context) error {
	payload := dto.CategoryRequest{}
	if err := bindAndValidate(e, &payload, "AddCategory"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.AddCategory(e.Request().Context(), middleware.GetActor(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "category created", resp)
}

func (c *CategoryController) UpdateCategory(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.CategoryRequest{}
	if err := bindAndValidate(e, &payload, "UpdateCategory"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ID = id

	resp, err := c.service.UpdateCategory(e.Request().Context(), middleware.GetActor(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *CategoryController) DeleteCategory(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	if err = c.service.DeleteCategory(e.Request().Context(), middleware.GetActor(e), id); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "category deleted", nil)
}
