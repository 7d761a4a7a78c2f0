package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	auditdomain "github.com/amancodes12/pharmaease/internal/audit/domain"
	batchdomain "github.com/amancodes12/pharmaease/internal/batch/domain"
	billingdomain "github.com/amancodes12/pharmaease/internal/billing/domain"
	catalogdomain "github.com/amancodes12/pharmaease/internal/catalog/domain"
	customerdomain "github.com/amancodes12/pharmaease/internal/customer/domain"
	inventorydomain "github.com/amancodes12/pharmaease/internal/inventory/domain"
	orderdomain "github.com/amancodes12/pharmaease/internal/order/domain"
	pharmacistdomain "github.com/amancodes12/pharmaease/internal/pharmacist/domain"
	reportdomain "github.com/amancodes12/pharmaease/internal/report/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrConflict       = errors.New("conflict")
	ErrInternal       = errors.New("internal_error")
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := validationErrorCode(err)
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: "invalid value",
				},
			},
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, pharmacistdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, inventorydomain.ErrInsufficientStock):
		return http.StatusConflict, errorPayload{
			Type:    "insufficient_stock",
			Message: "requested quantity exceeds available stock",
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: conflictMessage(err),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, catalogdomain.ErrInvalidID),
		errors.Is(err, catalogdomain.ErrInvalidName),
		errors.Is(err, catalogdomain.ErrInvalidPrice),
		errors.Is(err, catalogdomain.ErrInvalidReorderLevel),
		errors.Is(err, inventorydomain.ErrInvalidID),
		errors.Is(err, batchdomain.ErrInvalidID),
		errors.Is(err, batchdomain.ErrInvalidBatchNo),
		errors.Is(err, batchdomain.ErrInvalidQuantity),
		errors.Is(err, batchdomain.ErrInvalidExpiry),
		errors.Is(err, batchdomain.ErrQuantityUnderflow),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, customerdomain.ErrInvalidName),
		errors.Is(err, pharmacistdomain.ErrInvalidID),
		errors.Is(err, pharmacistdomain.ErrInvalidName),
		errors.Is(err, pharmacistdomain.ErrInvalidEmail),
		errors.Is(err, pharmacistdomain.ErrInvalidPassword),
		errors.Is(err, orderdomain.ErrInvalidID),
		errors.Is(err, orderdomain.ErrEmptyOrder),
		errors.Is(err, orderdomain.ErrInvalidItem),
		errors.Is(err, orderdomain.ErrInvalidStatus),
		errors.Is(err, orderdomain.ErrInvalidPayment),
		errors.Is(err, orderdomain.ErrInvalidDiscount),
		errors.Is(err, billingdomain.ErrInvalidID),
		errors.Is(err, reportdomain.ErrInvalidID),
		errors.Is(err, reportdomain.ErrInvalidRange),
		errors.Is(err, reportdomain.ErrInvalidType),
		errors.Is(err, auditdomain.ErrInvalidAction),
		errors.Is(err, auditdomain.ErrInvalidTimeRange):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, ErrConflict),
		errors.Is(err, orderdomain.ErrAlreadyCompleted),
		errors.Is(err, orderdomain.ErrAlreadyCancelled),
		errors.Is(err, orderdomain.ErrCancelCompleted),
		errors.Is(err, orderdomain.ErrDuplicateOrderNo),
		errors.Is(err, batchdomain.ErrDuplicateBatchNo),
		errors.Is(err, pharmacistdomain.ErrEmailTaken):
		return true
	default:
		return false
	}
}

func conflictMessage(err error) string {
	switch {
	case errors.Is(err, orderdomain.ErrAlreadyCompleted):
		return "order already completed"
	case errors.Is(err, orderdomain.ErrCancelCompleted):
		return "cannot cancel completed order"
	case errors.Is(err, orderdomain.ErrAlreadyCancelled):
		return "order already cancelled"
	default:
		return "conflict"
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, ErrNotFound),
		errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, catalogdomain.ErrSupplierNotFound),
		errors.Is(err, inventorydomain.ErrNotFound),
		errors.Is(err, batchdomain.ErrNotFound),
		errors.Is(err, batchdomain.ErrMedicineNotFound),
		errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, pharmacistdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrPharmacistNotFound),
		errors.Is(err, orderdomain.ErrCustomerNotFound),
		errors.Is(err, orderdomain.ErrMedicineNotFound),
		errors.Is(err, billingdomain.ErrNotFound),
		errors.Is(err, reportdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorCode(err error) string {
	if errors.Is(err, ErrInvalidRequest) {
		return "invalid_request"
	}
	return err.Error()
}

func validationErrorField(code string) string {
	if code == "invalid_request" {
		return "request"
	}
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	return ""
}
