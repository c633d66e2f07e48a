package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homechefs/backend/internal/models"
)

// PendingChefs lists chef accounts waiting for moderation.
func (h *Handler) PendingChefs(c *gin.Context) {
	pending, err := h.Dir.PendingChefs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load pending chefs"})
		return
	}

	views := make([]userView, 0, len(pending))
	for i := range pending {
		views = append(views, viewOf(&pending[i]))
	}
	c.JSON(http.StatusOK, views)
}

// ApproveChef moves a chef to the approved state.
func (h *Handler) ApproveChef(c *gin.Context) {
	h.moderateChef(c, h.Dir.ApproveChef)
}

// RejectChef moves a chef to the rejected state.
func (h *Handler) RejectChef(c *gin.Context) {
	h.moderateChef(c, h.Dir.RejectChef)
}

func (h *Handler) moderateChef(c *gin.Context, action func(int64) (*models.User, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chef id"})
		return
	}

	user, err := action(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Moderation failed"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
		return
	}
	c.JSON(http.StatusOK, viewOf(user))
}
