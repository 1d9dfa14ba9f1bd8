package handlers

import (
	"net/http"

	"custodyserver/middlewares"
	"custodyserver/transfer"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SendRequest asks for a transfer voucher. UserID is the intended
// recipient, which the protocol requires to be the item's current
// owner.
type SendRequest struct {
	ItemID uint `json:"item_id" binding:"required"`
	UserID uint `json:"user_id" binding:"required"`
}

// ReceiveRequest carries the voucher when redeeming via POST.
type ReceiveRequest struct {
	ItemToken string `json:"item_token" binding:"required"`
}

// SendItem issues a transfer voucher for one of the caller's items.
func SendItem(c *gin.Context, svc *transfer.Service, logger *zap.Logger) {
	var req SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		malformed(c, err)
		return
	}

	voucher, err := svc.InitiateSend(c.Request.Context(), middlewares.UserID(c), req.ItemID, req.UserID)
	if err != nil {
		fail(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item_token": voucher})
}

// ReceiveItem redeems a transfer voucher. The voucher arrives in the
// JSON body on POST or as the item_token query parameter on GET.
func ReceiveItem(c *gin.Context, svc *transfer.Service, logger *zap.Logger) {
	var voucher string
	if c.Request.Method == http.MethodGet {
		voucher = c.Query("item_token")
		if voucher == "" {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "malformed_request",
				"message": "a valid item_token is missing",
			})
			return
		}
	} else {
		var req ReceiveRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			malformed(c, err)
			return
		}
		voucher = req.ItemToken
	}

	if err := svc.Redeem(c.Request.Context(), middlewares.UserID(c), voucher); err != nil {
		fail(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item was transferred successfully"})
}
