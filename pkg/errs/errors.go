package errs

import (
	"errors"
	"net/http"
)

const (
	ErrStatusInternalServer = http.StatusInternalServerError
	ErrStatusClient         = http.StatusBadRequest
	ErrStatusNotLoggedIn    = http.StatusUnauthorized
	ErrStatusNoPermission   = http.StatusForbidden
	ErrStatusUnauthorized   = http.StatusUnauthorized
	ErrStatusNotFound       = http.StatusNotFound
	ErrStatusConflict       = http.StatusConflict
)

var (
	ErrInternalServer        = errors.New("Internal server error")
	ErrClient                = errors.New("Bad request")
	ErrNotLoggedIn           = errors.New("Authentication credentials were not provided")
	ErrInvalidCredentials    = errors.New("Invalid credentials")
	ErrInvalidToken          = errors.New("Invalid or expired token")
	ErrForbidden             = errors.New("You do not have permission to perform this action")
	ErrNotFound              = errors.New("Resource not found")
	ErrAccountNotFound       = errors.New("Account not found")
	ErrCategoryNotFound      = errors.New("Category not found")
	ErrProductNotFound       = errors.New("Product not found")
	ErrOrderNotFound         = errors.New("Order not found")
	ErrProfileNotFound       = errors.New("Profile not found")
	ErrConflict              = errors.New("Conflicting record found")
	ErrUsernameAlreadyUsed   = errors.New("Username already exists")
	ErrEmailAlreadyUsed      = errors.New("Email already exists")
	ErrReviewAlreadyExists   = errors.New("You have already reviewed this product")
	ErrOrderNotCancellable   = errors.New("This order cannot be cancelled")
	ErrOrderClosed           = errors.New("This order is closed and can no longer be modified")
	ErrCategoryInUse         = errors.New("Category still has products")
	ErrOrderLocked           = errors.New("Order details can no longer be changed by the buyer")
	ErrInvalidQuantity       = errors.New("Quantity must be greater than 0")
	ErrInvalidRating         = errors.New("Rating must be between 1 and 5")
	ErrInvalidPrice          = errors.New("Price must be between 0 and 99999999.99")
	ErrOrderTotalTooLarge    = errors.New("Order total exceeds 9999999999999.99")
	ErrInvalidOrderStatus    = errors.New("Invalid order status")
	ErrInvalidPaymentTerms   = errors.New("Invalid payment terms")
	ErrInvalidDocumentType   = errors.New("Invalid document type")
	ErrInvalidUserType       = errors.New("Invalid user type")
	ErrInvalidOrdering       = errors.New("Invalid ordering field")
	ErrInvalidFilter         = errors.New("Invalid filter value")
	ErrMissingCredentials    = errors.New("Username and password are required")
	ErrMissingRegistration   = errors.New("Username, email, and password are required")
	ErrEmptyOrder            = errors.New("Order must contain at least one item")
	ErrMinimumOrderQuantity  = errors.New("Minimum order quantity must be at least 1")
	ErrNegativeAvailableQty  = errors.New("Available quantity must not be negative")
	ErrMissingName           = errors.New("Name is required")
	ErrInvalidDate           = errors.New("Date must be formatted as YYYY-MM-DD")
	ErrStatusChangeForbidden = errors.New("Only staff can change the order status")
	ErrVerifiedReadOnly      = errors.New("Only staff can change the verified flag")
)

var errorMap = map[error]int{
	ErrInternalServer:        ErrStatusInternalServer,
	ErrClient:                ErrStatusClient,
	ErrNotLoggedIn:           ErrStatusNotLoggedIn,
	ErrInvalidCredentials:    ErrStatusUnauthorized,
	ErrInvalidToken:          ErrStatusUnauthorized,
	ErrForbidden:             ErrStatusNoPermission,
	ErrNotFound:              ErrStatusNotFound,
	ErrAccountNotFound:       ErrStatusNotFound,
	ErrCategoryNotFound:      ErrStatusNotFound,
	ErrProductNotFound:       ErrStatusNotFound,
	ErrOrderNotFound:         ErrStatusNotFound,
	ErrProfileNotFound:       ErrStatusNotFound,
	ErrConflict:              ErrStatusConflict,
	ErrUsernameAlreadyUsed:   ErrStatusConflict,
	ErrEmailAlreadyUsed:      ErrStatusConflict,
	ErrReviewAlreadyExists:   ErrStatusConflict,
	ErrOrderNotCancellable:   ErrStatusConflict,
	ErrOrderClosed:           ErrStatusConflict,
	ErrCategoryInUse:         ErrStatusConflict,
	ErrOrderLocked:           ErrStatusConflict,
	ErrInvalidQuantity:       ErrStatusClient,
	ErrInvalidRating:         ErrStatusClient,
	ErrInvalidPrice:          ErrStatusClient,
	ErrOrderTotalTooLarge:    ErrStatusClient,
	ErrInvalidOrderStatus:    ErrStatusClient,
	ErrInvalidPaymentTerms:   ErrStatusClient,
	ErrInvalidDocumentType:   ErrStatusClient,
	ErrInvalidUserType:       ErrStatusClient,
	ErrInvalidOrdering:       ErrStatusClient,
	ErrInvalidFilter:         ErrStatusClient,
	ErrMissingCredentials:    ErrStatusClient,
	ErrMissingRegistration:   ErrStatusClient,
	ErrEmptyOrder:            ErrStatusClient,
	ErrMinimumOrderQuantity:  ErrStatusClient,
	ErrNegativeAvailableQty:  ErrStatusClient,
	ErrMissingName:           ErrStatusClient,
	ErrInvalidDate:           ErrStatusClient,
	ErrStatusChangeForbidden: ErrStatusNoPermission,
	ErrVerifiedReadOnly:      ErrStatusNoPermission,
}

// GetErrorStatusCode resolves the HTTP status for err. Wrapped sentinels keep
// their status; anything unknown is reported as an internal error.
func GetErrorStatusCode(err error) int {
	if errStatusCode, ok := errorMap[err]; ok {
		return errStatusCode
	}

	for sentinel, errStatusCode := range errorMap {
		if errors.Is(err, sentinel) {
			return errStatusCode
		}
	}

	return errorMap[ErrInternalServer]
}

// IsKnown reports whether err (or something it wraps) is one of the sentinels above.
func IsKnown(err error) bool {
	for sentinel := range errorMap {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
