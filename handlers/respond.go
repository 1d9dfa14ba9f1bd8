package handlers

import (
	"errors"
	"net/http"

	"custodyserver/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// kindOf maps a sentinel error to its machine-readable kind and HTTP
// status. Unknown errors collapse to internal_error so no store or
// crypto detail leaks to the client.
func kindOf(err error) (string, int) {
	switch {
	case errors.Is(err, common.ErrDuplicateName):
		return "name_taken", http.StatusConflict
	case errors.Is(err, common.ErrTokenExpired):
		return "token_expired", http.StatusUnauthorized
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return "unauthorized", http.StatusUnauthorized
	case errors.Is(err, common.ErrInvalidVoucher):
		return "invalid_voucher", http.StatusBadRequest
	case errors.Is(err, common.ErrVoucherConsumed):
		return "voucher_consumed", http.StatusConflict
	case errors.Is(err, common.ErrItemNotFound):
		return "item_not_found", http.StatusNotFound
	case errors.Is(err, common.ErrNotFound):
		return "not_found", http.StatusNotFound
	case errors.Is(err, common.ErrNotOwner):
		return "not_owner", http.StatusForbidden
	case errors.Is(err, common.ErrWrongRecipient):
		return "wrong_recipient", http.StatusForbidden
	default:
		return "internal_error", http.StatusInternalServerError
	}
}

func fail(c *gin.Context, logger *zap.Logger, err error) {
	kind, status := kindOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		message = "internal error"
	}
	c.JSON(status, gin.H{"error": kind, "message": message})
}

func malformed(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "malformed_request",
		"message": err.Error(),
	})
}
