package handlers

import (
	"net/http"

	"custodyserver/middlewares"
	"custodyserver/models"
	"custodyserver/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CreateItemRequest is the item creation payload.
type CreateItemRequest struct {
	Name string `json:"name" binding:"required"`
}

// DeleteItemRequest names the item to delete by id.
type DeleteItemRequest struct {
	ID uint `json:"id" binding:"required"`
}

// ListItems returns the items owned by the authenticated user.
func ListItems(c *gin.Context, st store.Store, logger *zap.Logger) {
	userID := middlewares.UserID(c)

	items, err := st.FindItemsByOwner(c.Request.Context(), userID)
	if err != nil {
		fail(c, logger, err)
		return
	}

	output := make([]gin.H, 0, len(items))
	for _, item := range items {
		output = append(output, gin.H{
			"id":      item.ID,
			"user_id": item.UserID,
			"name":    item.Name,
		})
	}

	c.JSON(http.StatusOK, gin.H{"list_of_items": output})
}

// CreateItem creates a new item owned by the authenticated user.
func CreateItem(c *gin.Context, st store.Store, logger *zap.Logger) {
	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		malformed(c, err)
		return
	}

	item := &models.Item{Name: req.Name, UserID: middlewares.UserID(c)}
	if err := st.CreateItem(c.Request.Context(), item); err != nil {
		fail(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "new item created"})
}

// DeleteItem removes one of the caller's own items. Items owned by
// other users are indistinguishable from missing ones.
func DeleteItem(c *gin.Context, st store.Store, logger *zap.Logger) {
	var req DeleteItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		malformed(c, err)
		return
	}

	if err := st.DeleteItem(c.Request.Context(), req.ID, middlewares.UserID(c)); err != nil {
		fail(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}
