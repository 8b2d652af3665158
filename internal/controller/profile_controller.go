package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/vparmar-art/MarketplaceApp/internal/dto"
	"github.com/vparmar-art/MarketplaceApp/internal/middleware"
	"github.com/vparmar-art/MarketplaceApp/internal/service"
	pkgdto "github.com/vparmar-art/MarketplaceApp/pkg/dto"
	"github.com/vparmar-art/MarketplaceApp/pkg/response"
)

type ProfileController struct {
	service service.ProfileService
}

func CreateProfileController(e *echo.Group, service service.ProfileService, isLoggedIn echo.MiddlewareFunc) {
	c := ProfileController{
		service: service,
	}

	profiles := e.Group("/profiles", isLoggedIn)
	profiles.GET("", c.GetProfiles)
	profiles.GET("/me", c.GetMyProfile)
	profiles.GET("/:id", c.GetProfile)
	profiles.PUT("/:id", c.UpdateProfile)
	profiles.PATCH("/:id", c.UpdateProfile)
}

func (c *ProfileController) GetProfiles(e echo.Context) error {
	filter := pkgdto.Filter{}
	if err := bindAndValidate(e, &filter, "GetProfiles"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetProfiles(e.Request().Context(), middleware.GetActor(e), filter)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProfileController) GetMyProfile(e echo.Context) error {
	resp, err := c.service.GetOrCreateProfile(e.Request().Context(), middleware.GetActor(e))
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProfileController) GetProfile(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	resp, err := c.service.GetProfile(e.Request().Context(), middleware.GetActor(e), id)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}

func (c *ProfileController) UpdateProfile(e echo.Context) error {
	id, err := parseID(e)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	payload := dto.ProfileRequest{}
	if err := bindAndValidate(e, &payload, "UpdateProfile"); err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}
	payload.ID = id

	resp, err := c.service.UpdateProfile(e.Request().Context(), middleware.GetActor(e), payload)
	if err != nil {
		return response.WriteErrorResponse(e, err, nil)
	}

	return response.WriteSuccessResponse(e, "", resp)
}
