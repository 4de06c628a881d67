package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sanjida-777/Social-Media-v2/internal/database"
	"github.com/sanjida-777/Social-Media-v2/internal/hub"
	"github.com/sanjida-777/Social-Media-v2/internal/models"
)

// region --- DTOs ---

// CreateChatInput defines the structure for opening a direct chat.
type CreateChatInput struct {
	UserID uint `json:"user_id" binding:"required" example:"2"`
}

// SendMessageInput defines the structure for sending a chat message.
type SendMessageInput struct {
	Content string `json:"content" binding:"required" example:"hey!"`
}

// ChatResponse defines the structure for a chat in API responses.
type ChatResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name,omitempty"`
	IsGroup   bool      `json:"is_group"`
	CreatedAt time.Time `json:"created_at"`
	MemberIDs []uint    `json:"member_ids"`
}

// MessageResponse defines the structure for a chat message in API responses.
type MessageResponse struct {
	ID        uint      `json:"id"`
	ChatID    uint      `json:"chat_id"`
	UserID    uint      `json:"user_id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// endregion

// region --- Chat Handlers ---

// CreateChat godoc
// @Summary      Open a direct chat
// @Description  Opens (or returns the existing) direct chat with another user.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input body CreateChatInput true "Chat partner"
// @Success      201  {object}  ChatResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Target user not found"
// @Router       /chats [post]
func CreateChat(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	var input CreateChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.UserID == viewerID.(uint) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot open a chat with yourself"})
		return
	}

	var targetUser models.User
	if err := database.DB.First(&targetUser, input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// Reuse an existing direct chat when one exists.
	if existing, err := findDirectChat(viewerID.(uint), input.UserID); err == nil && existing != nil {
		c.JSON(http.StatusOK, buildChatResponse(*existing))
		return
	}

	chat := models.ChatGroup{
		CreatedBy: viewerID.(uint),
		IsGroup:   false,
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&chat).Error; err != nil {
			return err
		}
		members := []models.ChatMember{
			{ChatID: chat.ID, UserID: viewerID.(uint), Role: "member", JoinedAt: time.Now()},
			{ChatID: chat.ID, UserID: input.UserID, Role: "member", JoinedAt: time.Now()},
		}
		return tx.Create(&members).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create chat"})
		return
	}

	database.DB.Preload("Members").First(&chat, chat.ID)
	c.JSON(http.StatusCreated, buildChatResponse(chat))
}

// GetChats godoc
// @Summary      List the current user's chats
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  ChatResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /chats [get]
func GetChats(c *gin.Context) {
	viewerID, _ := c.Get("userID")

	memberChats := database.DB.Model(&models.ChatMember{}).Select("chat_id").Where("user_id = ?", viewerID)

	var chats []models.ChatGroup
	err := database.DB.
		Where("id IN (?)", memberChats).
		Preload("Members").
		Order("updated_at DESC").
		Find(&chats).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chats"})
		return
	}

	responses := make([]ChatResponse, 0, len(chats))
	for _, chat := range chats {
		responses = append(responses, buildChatResponse(chat))
	}

	c.JSON(http.StatusOK, responses)
}

// SendMessage godoc
// @Summary      Send a chat message
// @Description  Sends a message into a chat the user is a member of, records the interaction, and broadcasts to connected clients.
// @Tags         chat
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path int              true "Chat ID"
// @Param        input body SendMessageInput true "Message content"
// @Success      201  {object}  MessageResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse "Not a chat member"
// @Router       /chats/{id}/messages [post]
func SendMessage(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	chatID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return
	}

	var input SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	members, err := chatMembers(uint(chatID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch chat"})
		return
	}

	isMember := false
	for _, m := range members {
		if m.UserID == viewerID.(uint) {
			isMember = true
			break
		}
	}
	if !isMember {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this chat"})
		return
	}

	message := models.ChatMessage{
		ChatID:      uint(chatID),
		UserID:      viewerID.(uint),
		MessageType: models.MessageTypeText,
		Content:     input.Content,
	}
	if err := database.DB.Create(&message).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
		return
	}

	// In a direct chat the message is a pairwise interaction signal toward
	// the other member. Group chats feed the message-frequency signal through
	// the message rows themselves.
	if len(members) == 2 {
		for _, m := range members {
			if m.UserID != viewerID.(uint) {
				if err := recorder.Record(viewerID.(uint), m.UserID, models.InteractionMessage); err != nil {
					log.Warn("failed to record message interaction", zap.Error(err))
				}
			}
		}
	}

	database.DB.Preload("User").First(&message, message.ID)
	response := buildMessageResponse(message)
	hub.GlobalHub.Broadcast(uint(chatID), hub.Event{Type: "message", Payload: response})

	c.JSON(http.StatusCreated, response)
}

// GetMessages godoc
// @Summary      Get a chat's messages
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int true  "Chat ID"
// @Param        page  query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200  {object}  PaginatedResponse[MessageResponse]
// @Failure      403  {object}  ErrorResponse "Not a chat member"
// @Router       /chats/{id}/messages [get]
func GetMessages(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	chatID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return
	}
	page, limit := pageParams(c)

	if !isChatMember(uint(chatID), viewerID.(uint)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this chat"})
		return
	}

	query := database.DB.
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Preload("User")

	paginated, err := Paginate[models.ChatMessage](query, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
		return
	}

	responses := make([]MessageResponse, 0, len(paginated.Data))
	for _, message := range paginated.Data {
		responses = append(responses, buildMessageResponse(message))
	}

	c.JSON(http.StatusOK, NewPaginatedResponse(responses, paginated.Meta.TotalItems, page, limit))
}

// StreamChat godoc
// @Summary      Stream chat events
// @Description  Subscribes to a chat's events over SSE.
// @Tags         chat
// @Produce      text/event-stream
// @Security     BearerAuth
// @Param        id path int true "Chat ID"
// @Failure      403 {object} ErrorResponse "Not a chat member"
// @Router       /chats/{id}/stream [get]
func StreamChat(c *gin.Context) {
	viewerID, _ := c.Get("userID")
	chatID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chat ID"})
		return
	}

	if !isChatMember(uint(chatID), viewerID.(uint)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a member of this chat"})
		return
	}

	client := make(hub.Client, 16)
	hub.GlobalHub.Subscribe(uint(chatID), client)
	defer hub.GlobalHub.Unsubscribe(uint(chatID), client)

	c.Stream(func(w io.Writer) bool {
		select {
		case message, ok := <-client:
			if !ok {
				return false
			}
			c.SSEvent("message", string(message))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

// endregion

// region --- Helpers ---

func findDirectChat(userA, userB uint) (*models.ChatGroup, error) {
	aChats := database.DB.Model(&models.ChatMember{}).Select("chat_id").Where("user_id = ?", userA)
	bChats := database.DB.Model(&models.ChatMember{}).Select("chat_id").Where("user_id = ?", userB)

	var chat models.ChatGroup
	err := database.DB.
		Where("is_group = ?", false).
		Where("id IN (?)", aChats).
		Where("id IN (?)", bChats).
		Preload("Members").
		First(&chat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &chat, nil
}

func chatMembers(chatID uint) ([]models.ChatMember, error) {
	var members []models.ChatMember
	err := database.DB.Where("chat_id = ?", chatID).Find(&members).Error
	return members, err
}

func isChatMember(chatID, userID uint) bool {
	var count int64
	database.DB.Model(&models.ChatMember{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count)
	return count > 0
}

func buildChatResponse(chat models.ChatGroup) ChatResponse {
	memberIDs := make([]uint, 0, len(chat.Members))
	for _, m := range chat.Members {
		memberIDs = append(memberIDs, m.UserID)
	}

	return ChatResponse{
		ID:        chat.ID,
		Name:      chat.Name,
		IsGroup:   chat.IsGroup,
		CreatedAt: chat.CreatedAt,
		MemberIDs: memberIDs,
	}
}

func buildMessageResponse(message models.ChatMessage) MessageResponse {
	return MessageResponse{
		ID:        message.ID,
		ChatID:    message.ChatID,
		UserID:    message.UserID,
		Author:    message.User.Username,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	}
}

// endregion
