package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	"github.com/vparmar-art/MarketplaceApp/internal/middleware"
	"github.com/vparmar-art/MarketplaceApp/internal/service"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/response"
)

type UserController struct {
	service service.UserService
}

func CreateUserController(e *echo.Group, service service.UserService, isLoggedIn echo.MiddlewareFunc) {
	c := UserController{
		service: service,
	}

	e.POST("/register", c.Register)
	e.POST("/login", c.Login)
	e.POST("/logout", c.Logout)

	e.GET("/users", c.GetUsers, isLoggedIn)
	e.GET("/users/me", c.Me, isLoggedIn)
	e.GET("/users/:id", c.GetUser, isLoggedIn)
	e.PUT("/users/:id", c.UpdateUser, isLoggedIn)
	e.PATCH("/users/:id", c.UpdateUser, isLoggedIn)
}

func (c *UserController) Register(e echo.Context) error {
	payload := dto.RegisterRequest{}
	if err := bindAndValidate(e, &payload, "Register"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.Register(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteCreatedResponse(e, "account created", resp)
}

func (c *UserController) Login(e echo.Context) error {
	payload := dto.LoginRequest{}
	if err := bindAndValidate(e, &payload, "Login"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.Login(e.Request().Context(), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *UserController) Logout(e echo.Context) error {
	if err := c.service.Logout(e.Request().Context(), middleware.GetActor(e)); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "logged out", nil)
}

func (c *UserController) Me(e echo.Context) error {
	resp, err := c.service.Me(e.Request().Context(), middleware.GetActor(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *UserController) GetUsers(e echo.Context) error {
	filter := pkgdto.Filter{}
	if err := bindAndValidate(e, &filter, "GetUsers"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetUsers(e.Request().Context(), middleware.GetActor(e), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *UserController) GetUser(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetUser(e.Request().Context(), middleware.GetActor(e), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *UserController) UpdateUser(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.UpdateUserRequest{}
	if err := bindAndValidate(e, &payload, "UpdateUser"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ID = id

	resp, err := c.service.UpdateUser(e.Request().Context(), middleware.GetActor(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
