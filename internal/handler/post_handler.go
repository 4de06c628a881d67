package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sanjida-777/Social-Media-v2/internal/database"
	"github.com/sanjida-777/Social-Media-v2/internal/models"
)

// region --- DTOs ---

// CreatePostInput defines the structure for creating a post.
type CreatePostInput struct {
	Content string `json:"content" binding:"required" example:"hello world"`
}

// CreateCommentInput defines the structure for commenting on a post.
type CreateCommentInput struct {
	Content string `json:"content" binding:"required" example:"nice post"`
}

// PostResponse defines the structure for a post in API responses.
type PostResponse struct {
	ID           uint      `json:"id" example:"1"`
	UserID       uint      `json:"user_id" example:"1"`
	Author       string    `json:"author" example:"testuser"`
	ProfilePic   string    `json:"profile_pic,omitempty"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
	LikedByUser  bool      `json:"liked_by_user"`
}

// CommentResponse defines the structure for a comment in API responses.
type CommentResponse struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"post_id"`
	UserID    uint      `json:"user_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// endregion

// region --- Post Handlers ---

// CreatePost godoc
// @Summary      Create a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreatePostInput true "Post content"
// @Success      201  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Router       /posts [post]
func CreatePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input CreatePostInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post := models.Post{
		UserID:  viewerID.(uint),
		Content: input.Content,
	}
	if err := database.DB.Create(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	database.DB.Preload("Author").First(&post, post.ID)
	c.JSON(http.StatusCreated, buildPostResponse(post, viewerID.(uint)))
}

// GetPost godoc
// @Summary      Get a post by ID
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  PostResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [get]
func GetPost(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.Preload("Author").First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// liked_by_user is only meaningful with an authenticated viewer; the
	// route uses the optional auth middleware.
	var viewerID uint
	if id, exists := c.Get("userID"); exists {
		viewerID = id.(uint)
	}

	c.JSON(http.StatusOK, buildPostResponse(post, viewerID))
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Deletes one of the current user's own posts.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  map[string]string "{"message": "Post deleted"}"
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id} [delete]
func DeletePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	if post.UserID != viewerID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete another user's post"})
		return
	}

	if err := database.DB.Delete(&post).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// LikePost godoc
// @Summary      Like a post
// @Description  Likes a post and records the interaction toward its author.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      201  {object}  map[string]string "{"message": "Post liked"}"
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse "Already liked"
// @Router       /posts/{id}/like [post]
func LikePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var existing models.PostLike
	err = database.DB.
		Where("post_id = ? AND user_id = ?", postID, viewerID).
		First(&existing).Error
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusConflict, gin.H{"error": "Post already liked"})
		return
	}

	like := models.PostLike{
		PostID: uint(postID),
		UserID: viewerID.(uint),
	}
	if err := database.DB.Create(&like).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	if err := recorder.Record(viewerID.(uint), post.UserID, models.InteractionLike); err != nil {
		log.Warn("failed to record like interaction", zap.Error(err))
	}
	if post.UserID != viewerID.(uint) {
		createNotification(post.UserID, viewerID.(uint), models.NotificationLike, post.ID, "liked your post")
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Post liked"})
}

// UnlikePost godoc
// @Summary      Unlike a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  map[string]string "{"message": "Like removed"}"
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/unlike [post]
func UnlikePost(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	result := database.DB.
		Where("post_id = ? AND user_id = ?", postID, viewerID).
		Delete(&models.PostLike{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove like"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Like not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Like removed"})
}

// CreateComment godoc
// @Summary      Comment on a post
// @Description  Adds a comment and records the interaction toward the post's author.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int                true "Post ID"
// @Param        input body CreateCommentInput true "Comment content"
// @Success      201  {object}  CommentResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /posts/{id}/comments [post]
func CreateComment(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var input CreateCommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := database.DB.First(&post, uint(postID)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		PostID:  uint(postID),
		UserID:  viewerID.(uint),
		Content: input.Content,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	if err := recorder.Record(viewerID.(uint), post.UserID, models.InteractionComment); err != nil {
		log.Warn("failed to record comment interaction", zap.Error(err))
	}
	if post.UserID != viewerID.(uint) {
		createNotification(post.UserID, viewerID.(uint), models.NotificationComment, post.ID, "commented on your post")
	}

	database.DB.Preload("User").First(&comment, comment.ID)
	c.JSON(http.StatusCreated, buildCommentResponse(comment))
}

// GetComments godoc
// @Summary      Get a post's comments
// @Tags         posts
// @Produce      json
// @Param        id    path  int true  "Post ID"
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[CommentResponse]
// @Failure      400  {object}  ErrorResponse
// @Router       /posts/{id}/comments [get]
func GetComments(c *gin.Context) {
	postID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}
	page, limit := pageParams(c)

	query := database.DB.
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Preload("User")

	paginated, err := Paginate[models.Comment](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}

	responses := make([]CommentResponse, 0, len(paginated.Data))
	for _, comment := range paginated.Data {
		responses = append(responses, buildCommentResponse(comment))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, paginated.Meta.TotalItems, page, limit))
}

// endregion

// region --- Helpers ---

func buildPostResponse(post models.Post, viewerID uint) PostResponse {
	var likeCount, commentCount int64
	database.DB.Model(&models.PostLike{}).Where("post_id = ?", post.ID).Count(&likeCount)
	database.DB.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount)

	var likedByUser bool
	if viewerID != 0 {
		var liked int64
		database.DB.Model(&models.PostLike{}).
			Where("post_id = ? AND user_id = ?", post.ID, viewerID).
			Count(&liked)
		likedByUser = liked > 0
	}

	return PostResponse{
		ID:           post.ID,
		UserID:       post.UserID,
		Author:       post.Author.Username,
		ProfilePic:   post.Author.ProfilePic,
		Content:      post.Content,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
		LikeCount:    likeCount,
		CommentCount: commentCount,
		LikedByUser:  likedByUser,
	}
}

func buildCommentResponse(comment models.Comment) CommentResponse {
	return CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Author:    comment.User.Username,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	}
}

// endregion
