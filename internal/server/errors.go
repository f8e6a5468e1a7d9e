package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	casedomain "github.com/studiolegale/lexora/internal/casefile/domain"
	clientdomain "github.com/studiolegale/lexora/internal/client/domain"
	expensedomain "github.com/studiolegale/lexora/internal/expense/domain"
	invoicedomain "github.com/studiolegale/lexora/internal/invoice/domain"
	studiodomain "github.com/studiolegale/lexora/internal/studio/domain"
	"go.uber.org/zap"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Message }

func invalidRequestError() *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request body"}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Field: field, Message: message}
}

// AbortWithError maps a service error onto the JSON error envelope.
// Domain sentinels carry their own code; everything unrecognized is a
// 500 and gets logged, since it is a bug rather than a bad request.
func AbortWithError(c *gin.Context, err error) {
	if apiErr, ok := err.(*apiError); ok {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	status := http.StatusInternalServerError
	code := "internal_error"
	switch {
	case isNotFoundError(err):
		status = http.StatusNotFound
		code = err.Error()
	case isValidationError(err):
		status = http.StatusBadRequest
		code = err.Error()
	case isConflictError(err):
		status = http.StatusConflict
		code = err.Error()
	default:
		zap.L().Error("unhandled error", zap.Error(err), zap.String("path", c.FullPath()))
	}

	c.AbortWithStatusJSON(status, gin.H{"error": &apiError{
		Status:  status,
		Code:    code,
		Message: err.Error(),
	}})
}

func isNotFoundError(err error) bool {
	switch err {
	case clientdomain.ErrNotFound,
		casedomain.ErrNotFound,
		casedomain.ErrClientNotFound,
		expensedomain.ErrNotFound,
		expensedomain.ErrClientNotFound,
		expensedomain.ErrCaseNotFound,
		invoicedomain.ErrNotFound,
		invoicedomain.ErrClientNotFound,
		invoicedomain.ErrCaseNotFound,
		invoicedomain.ErrLineNotFound,
		invoicedomain.ErrPaymentNotFound,
		invoicedomain.ErrExpenseNotFound:
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch err {
	case clientdomain.ErrInvalidID,
		clientdomain.ErrInvalidName,
		casedomain.ErrInvalidID,
		casedomain.ErrInvalidClient,
		casedomain.ErrInvalidStatus,
		casedomain.ErrManualNumberDisabled,
		expensedomain.ErrInvalidID,
		expensedomain.ErrInvalidType,
		expensedomain.ErrInvalidAmount,
		expensedomain.ErrInvalidDate,
		expensedomain.ErrInvalidClient,
		invoicedomain.ErrInvalidID,
		invoicedomain.ErrInvalidClient,
		invoicedomain.ErrInvalidLineType,
		invoicedomain.ErrInvalidAmount,
		invoicedomain.ErrInvalidDate,
		studiodomain.ErrInvalidPercentage,
		studiodomain.ErrInvalidBollo,
		studiodomain.ErrInvalidPad,
		studiodomain.ErrInvalidPrefix,
		studiodomain.ErrUnknownNumberingKind:
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch err {
	case clientdomain.ErrClientReferenced,
		casedomain.ErrCaseReferenced,
		casedomain.ErrDuplicateNumber,
		expensedomain.ErrAlreadyBilled,
		invoicedomain.ErrHasPayments,
		invoicedomain.ErrAlreadyPaid,
		invoicedomain.ErrExpenseBilled,
		invoicedomain.ErrClientMismatch:
		return true
	default:
		return false
	}
}
