package handlers

import (
	"net/http"

	"lostlink/internal/auth"
	"lostlink/internal/store"
	"lostlink/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	store store.Store
}

func NewNotificationHandler(s store.Store) *NotificationHandler {
	return &NotificationHandler{store: s}
}

// ListByUser returns a user's notifications, newest first. Only the owner
// or an admin may read them.
func (h *NotificationHandler) ListByUser(c *gin.Context) {
	actor, _ := currentUser(c)
	userID := utils.StringToUint(c.Param("userId"))

	if err := auth.RequireOwnerOrAdmin(actor, userID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only view your own notifications"})
		return
	}

	notifications, err := h.store.ListNotificationsByUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkAllViewed flags every notification of a user as seen.
func (h *NotificationHandler) MarkAllViewed(c *gin.Context) {
	actor, _ := currentUser(c)
	userID := utils.StringToUint(c.Param("userId"))

	if err := auth.RequireOwnerOrAdmin(actor, userID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only update your own notifications"})
		return
	}

	if err := h.store.MarkUserNotificationsViewed(c.Request.Context(), userID); err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notifications marked as viewed"})
}

// MarkViewed flags a single notification as seen.
func (h *NotificationHandler) MarkViewed(c *gin.Context) {
	actor, _ := currentUser(c)
	id := utils.StringToUint(c.Param("id"))

	notification, err := h.store.NotificationByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Notification not found")
		return
	}
	if err := auth.RequireOwnerOrAdmin(actor, notification.UserID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only update your own notifications"})
		return
	}

	if err := h.store.MarkNotificationViewed(c.Request.Context(), id); err != nil {
		fail(c, err, "Notification not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as viewed"})
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	actor, _ := currentUser(c)
	id := utils.StringToUint(c.Param("id"))

	notification, err := h.store.NotificationByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "Notification not found")
		return
	}
	if err := auth.RequireOwnerOrAdmin(actor, notification.UserID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only delete your own notifications"})
		return
	}

	if err := h.store.DeleteNotification(c.Request.Context(), id); err != nil {
		fail(c, err, "Notification not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted successfully"})
}
