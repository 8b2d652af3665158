package controller

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
)

func parseID(e echo.Context) (int64, error) {
	id, err := strconv.ParseInt(e.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errs.ErrClient
	}
	return id, nil
}

// bindAndValidate binds the request into payload and runs the registered
// validator over it.
func bindAndValidate(e echo.Context, payload interface{}, component string) error {
	if err := e.Bind(payload); err != nil {
		log.Error().Err(err).Str("component", component).Msg("")
		return errs.ErrClient
	}
	return e.Validate(payload)
}
