package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanjida-777/Social-Media-v2/internal/database"
	"github.com/sanjida-777/Social-Media-v2/internal/models"
)

// NotificationResponse defines the structure for a notification in API responses.
type NotificationResponse struct {
	ID               uint                    `json:"id"`
	NotificationType models.NotificationType `json:"notification_type"`
	SenderID         uint                    `json:"sender_id"`
	SenderName       string                  `json:"sender_name,omitempty"`
	ReferenceID      uint                    `json:"reference_id,omitempty"`
	Content          string                  `json:"content,omitempty"`
	IsRead           bool                    `json:"is_read"`
	CreatedAt        time.Time               `json:"created_at"`
}

// GetNotifications godoc
// @Summary      Get the current user's notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[NotificationResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications [get]
func GetNotifications(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	page, limit := pageParams(c)

	query := database.DB.
		Where("user_id = ?", viewerID).
		Order("created_at DESC").
		Preload("Sender")

	paginated, err := Paginate[models.Notification](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch notifications"})
		return
	}

	responses := make([]NotificationResponse, 0, len(paginated.Data))
	for _, n := range paginated.Data {
		responses = append(responses, NotificationResponse{
			ID:               n.ID,
			NotificationType: n.NotificationType,
			SenderID:         n.SenderID,
			SenderName:       n.Sender.Username,
			ReferenceID:      n.ReferenceID,
			Content:          n.Content,
			IsRead:           n.IsRead,
			CreatedAt:        n.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, paginated.Meta.TotalItems, page, limit))
}

// MarkNotificationRead godoc
// @Summary      Mark a notification as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Notification ID"
// @Success      200  {object}  map[string]string "{"message": "Notification marked as read"}"
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [post]
func MarkNotificationRead(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid notification ID"})
		return
	}

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, viewerID).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notification"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

// MarkAllNotificationsRead godoc
// @Summary      Mark all notifications as read
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string "{"message": "All notifications marked as read"}"
// @Router       /notifications/read-all [post]
func MarkAllNotificationsRead(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", viewerID, false).
		Update("is_read", true).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notifications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

// createNotification persists a notification; delivery failures are logged,
// never surfaced to the triggering request.
func createNotification(userID, senderID uint, notificationType models.NotificationType, referenceID uint, content string) {
	notification := models.Notification{
		UserID:           userID,
		SenderID:         senderID,
		NotificationType: notificationType,
		ReferenceID:      referenceID,
		Content:          content,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		log.Warn("failed to create notification", zap.Error(err))
	}
}
