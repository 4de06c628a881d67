package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sanjida-777/Social-Media-v2/internal/database"
	"github.com/sanjida-777/Social-Media-v2/internal/models"
)

// FriendResponse describes one friendship from the viewer's perspective.
type FriendResponse struct {
	User              PublicUserResponse      `json:"user"`
	Status            models.FriendshipStatus `json:"status"`
	RelationshipScore float64                 `json:"relationship_score"`
}

// GetFriends godoc
// @Summary      Get the current user's friendships
// @Description  Lists friendships in either direction, optionally filtered by status.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        status query string false "Filter by status (pending, accepted, declined)"
// @Success      200 {array} FriendResponse
// @Failure      401 {object} ErrorResponse
// @Router       /users/me/friends [get]
func GetFriends(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	statusFilter := c.Query("status")

	query := database.DB.
		Where("user_id = ? OR friend_id = ?", viewerID, viewerID).
		Preload("User").Preload("FriendUser")
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var friendships []models.Friend
	if err := query.Find(&friendships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch friends"})
		return
	}

	responses := make([]FriendResponse, 0, len(friendships))
	for _, f := range friendships {
		// Pick the user on the other side of the edge.
		other := f.FriendUser
		if f.FriendID == viewerID.(uint) {
			other = f.User
		}
		if other.ID == 0 {
			continue
		}

		responses = append(responses, FriendResponse{
			User:              buildPublicUserResponse(other, viewerID.(uint)),
			Status:            f.Status,
			RelationshipScore: f.RelationshipScore,
		})
	}

	c.JSON(http.StatusOK, responses)
}

// SendFriendRequest godoc
// @Summary      Send friend request
// @Description  Sends a friend request to another user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      201  {object}  map[string]string "{"message": "Request sent successfully"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Friendship already exists"
// @Router       /users/{id}/request [post]
func SendFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	if viewerID.(uint) == uint(targetUserID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot send request to yourself"})
		return
	}

	var targetUser models.User
	if err := database.DB.First(&targetUser, uint(targetUserID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// A friendship in either direction blocks a new request.
	var existing models.Friend
	err = database.DB.
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			viewerID, targetUserID, targetUserID, viewerID).
		First(&existing).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": "Friendship already exists or another error occurred"})
		return
	}

	friendship := models.Friend{
		UserID:   viewerID.(uint),
		FriendID: uint(targetUserID),
		Status:   models.StatusPending,
	}
	if err := database.DB.Create(&friendship).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create friend request"})
		return
	}

	createNotification(uint(targetUserID), viewerID.(uint), models.NotificationFriendRequest, friendship.ID, "sent you a friend request")

	c.JSON(http.StatusCreated, gin.H{"message": "Request sent successfully"})
}

// AcceptFriendRequest godoc
// @Summary      Accept friend request
// @Description  Accepts a pending friend request from another user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Requesting User ID"
// @Success      200  {object}  map[string]string "{"message": "Request accepted"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Router       /users/{id}/accept [post]
func AcceptFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requestingUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requesting user ID"})
		return
	}

	var request models.Friend
	err = database.DB.
		Where("user_id = ? AND friend_id = ? AND status = ?", requestingUserID, viewerID, models.StatusPending).
		First(&request).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending request not found"})
		return
	}

	if err := database.DB.Model(&request).Update("status", models.StatusAccepted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept request"})
		return
	}

	createNotification(uint(requestingUserID), viewerID.(uint), models.NotificationFriendAccept, request.ID, "accepted your friend request")

	c.JSON(http.StatusOK, gin.H{"message": "Request accepted"})
}

// DeclineFriendRequest godoc
// @Summary      Decline friend request
// @Description  Declines a pending friend request from another user.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Requesting User ID"
// @Success      200  {object}  map[string]string "{"message": "Request declined"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Request not found"
// @Router       /users/{id}/decline [post]
func DeclineFriendRequest(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	requestingUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid requesting user ID"})
		return
	}

	// Declined requests are kept, not deleted, so the sender cannot
	// immediately re-request.
	result := database.DB.Model(&models.Friend{}).
		Where("user_id = ? AND friend_id = ? AND status = ?", requestingUserID, viewerID, models.StatusPending).
		Update("status", models.StatusDeclined)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decline request"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pending request not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request declined"})
}

// RemoveFriend godoc
// @Summary      Remove friend
// @Description  Cancels a sent request, or removes an existing friendship in either direction.
// @Tags         friendship
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  map[string]string "{"message": "Friendship removed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Friendship not found"
// @Router       /users/{id}/remove [post]
func RemoveFriend(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	result := database.DB.
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			viewerID, targetUserID, targetUserID, viewerID).
		Delete(&models.Friend{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove friendship"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Friendship not found to remove"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friendship removed"})
}
