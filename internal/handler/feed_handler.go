package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sanjida-777/Social-Media-v2/internal/database"
	"github.com/sanjida-777/Social-Media-v2/internal/models"
)

// GetFeed godoc
// @Summary      Get the personalized feed
// @Description  Returns posts from the viewer, their friends and the users they follow, ordered by the ranking engine when the page holds more than five posts.
// @Tags         feed
// @Produce      json
// @Security     BearerAuth
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[PostResponse]
// @Failure      401  {object}  ErrorResponse
// @Router       /feed [get]
func GetFeed(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	page, limit := pageParams(c)
	offset := (page - 1) * limit

	feedUserIDs, err := feedSourceIDs(viewerID.(uint))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve feed sources"})
		return
	}

	baseQuery := database.DB.Model(&models.Post{}).Where("user_id IN ?", feedUserIDs)

	var totalItems int64
	if err := baseQuery.Count(&totalItems).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count posts"})
		return
	}

	var posts []models.Post
	err = database.DB.
		Where("user_id IN ?", feedUserIDs).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Preload("Author").
		Find(&posts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	// Rank the page with the personalized algorithm. Small pages keep their
	// chronological order; the ranker handles that threshold itself.
	ranked, err := ranker.Rank(posts, viewerID.(uint))
	if err != nil {
		log.Error("feed ranking failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank feed"})
		return
	}

	responses := make([]PostResponse, 0, len(ranked))
	for _, post := range ranked {
		responses = append(responses, buildPostResponse(post, viewerID.(uint)))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, totalItems, page, limit))
}

// feedSourceIDs collects the ids whose posts make up the viewer's feed:
// accepted friends in either direction, followed users, and the viewer.
func feedSourceIDs(viewerID uint) ([]uint, error) {
	var friendships []models.Friend
	err := database.DB.
		Where("(user_id = ? OR friend_id = ?) AND status = ?", viewerID, viewerID, models.StatusAccepted).
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}

	var follows []models.Follower
	if err := database.DB.Where("follower_id = ?", viewerID).Find(&follows).Error; err != nil {
		return nil, err
	}

	ids := map[uint]bool{viewerID: true}
	for _, f := range friendships {
		if f.UserID == viewerID {
			ids[f.FriendID] = true
		} else {
			ids[f.UserID] = true
		}
	}
	for _, f := range follows {
		ids[f.UserID] = true
	}

	result := make([]uint, 0, len(ids))
	for id := range ids {
		result = append(result, id)
	}
	return result, nil
}
