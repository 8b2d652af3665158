package response

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/vparmar-art/MarketplaceApp/pkg/errs"
)

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
}

type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Errors  interface{} `json:"errors"`
}

func WriteSuccessResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(http.StatusOK, resp)
}

func WriteCreatedResponse(c echo.Context, message string, data interface{}) error {
	resp := SuccessResponse{}
	resp.Status = "success"
	resp.Data = data
	resp.Message = message

	return c.JSON(http.StatusCreated, resp)
}

// WriteErrorResponse maps err to its status code. Validator errors are
// reported as a bad request with one entry per failing field; unknown errors
// never leak their message.
func WriteErrorResponse(c echo.Context, err error, errors interface{}) error {
	var validationErrs validator.ValidationErrors
	if asValidationErrors(err, &validationErrs) {
		fields := make([]ValidationError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			fields = append(fields, ValidationError{Field: fe.Field(), Tag: fe.Tag()})
		}
		err = errs.ErrClient
		errors = fields
	}

	statusCode := errs.GetErrorStatusCode(err)
	resp := ErrorResponse{}
	resp.Status = "error"
	resp.Message = err.Error()
	if !errs.IsKnown(err) {
		resp.Message = errs.ErrInternalServer.Error()
	}
	resp.Errors = errors

	return c.JSON(statusCode, resp)
}

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	return errors.As(err, target)
}
