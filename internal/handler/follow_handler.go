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

// FollowUser godoc
// @Summary      Follow a user
// @Description  Starts following another user. Follows are one-directional and carry no score.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      201  {object}  map[string]string "{"message": "Now following"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Failure      409  {object}  ErrorResponse "Already following"
// @Router       /users/{id}/follow [post]
func FollowUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	if viewerID.(uint) == uint(targetUserID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	var targetUser models.User
	if err := database.DB.First(&targetUser, uint(targetUserID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var existing models.Follower
	err = database.DB.
		Where("user_id = ? AND follower_id = ?", targetUserID, viewerID).
		First(&existing).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": "Already following this user"})
		return
	}

	follow := models.Follower{
		UserID:     uint(targetUserID),
		FollowerID: viewerID.(uint),
	}
	if err := database.DB.Create(&follow).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Now following"})
}

// UnfollowUser godoc
// @Summary      Unfollow a user
// @Description  Stops following another user.
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Target User ID"
// @Success      200  {object}  map[string]string "{"message": "Unfollowed"}"
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Not following"
// @Router       /users/{id}/unfollow [post]
func UnfollowUser(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target user ID"})
		return
	}

	result := database.DB.
		Where("user_id = ? AND follower_id = ?", targetUserID, viewerID).
		Delete(&models.Follower{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not following this user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

// GetFollowers godoc
// @Summary      Get a user's followers
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /users/{id}/followers [get]
func GetFollowers(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var follows []models.Follower
	err = database.DB.Where("user_id = ?", targetUserID).Preload("FollowerUser").Find(&follows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch followers"})
		return
	}

	responses := make([]PublicUserResponse, 0, len(follows))
	for _, f := range follows {
		if f.FollowerUser.ID == 0 {
			continue
		}
		responses = append(responses, buildPublicUserResponse(f.FollowerUser, viewerID.(uint)))
	}

	c.JSON(http.StatusOK, responses)
}

// GetFollowing godoc
// @Summary      Get users a user follows
// @Tags         follow
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "User ID"
// @Success      200  {array}   PublicUserResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /users/{id}/following [get]
func GetFollowing(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	targetUserID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var follows []models.Follower
	err = database.DB.Where("follower_id = ?", targetUserID).Preload("User").Find(&follows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch following"})
		return
	}

	responses := make([]PublicUserResponse, 0, len(follows))
	for _, f := range follows {
		if f.User.ID == 0 {
			continue
		}
		responses = append(responses, buildPublicUserResponse(f.User, viewerID.(uint)))
	}

	c.JSON(http.StatusOK, responses)
}
