package database

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/sanjida-777/Social-Media-v2/internal/models"
)

// ScoringStore adapts the GORM database to the scoring engine's read-only
// query interface. "Not found" results come back as nil/zero values so the
// engine can treat missing data as a zero signal; every other error is
// returned unchanged.
type ScoringStore struct {
	db *gorm.DB
}

// NewScoringStore creates a ScoringStore backed by the given database handle.
func NewScoringStore(db *gorm.DB) *ScoringStore {
	return &ScoringStore{db: db}
}

// FriendEdge returns the friendship between two users in either direction, or
// nil when none exists.
func (s *ScoringStore) FriendEdge(userID, targetID uint) (*models.Friend, error) {
	var friend models.Friend
	err := s.db.
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			userID, targetID, targetID, userID).
		First(&friend).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &friend, nil
}

// AcceptedFriendIDs returns the ids of every accepted friend of userID,
// whichever side of the edge they are on.
func (s *ScoringStore) AcceptedFriendIDs(userID uint) ([]uint, error) {
	var friendships []models.Friend
	err := s.db.
		Where("(user_id = ? OR friend_id = ?) AND status = ?", userID, userID, models.StatusAccepted).
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(friendships))
	for _, f := range friendships {
		if f.UserID == userID {
			ids = append(ids, f.FriendID)
		} else {
			ids = append(ids, f.UserID)
		}
	}
	return ids, nil
}

// MessageCount counts messages sent by either user since the given time,
// across the chats both are members of.
func (s *ScoringStore) MessageCount(userID, targetID uint, since time.Time) (int64, error) {
	userChats := s.db.Model(&models.ChatMember{}).Select("chat_id").Where("user_id = ?", userID)
	targetChats := s.db.Model(&models.ChatMember{}).Select("chat_id").Where("user_id = ?", targetID)

	var count int64
	err := s.db.Model(&models.ChatMessage{}).
		Where("chat_id IN (?)", userChats).
		Where("chat_id IN (?)", targetChats).
		Where("user_id IN ?", []uint{userID, targetID}).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// EngagementCounts counts the likes and comments actorID placed on targetID's
// posts since the given time.
func (s *ScoringStore) EngagementCounts(actorID, targetID uint, since time.Time) (int64, int64, error) {
	targetPosts := s.db.Model(&models.Post{}).Select("id").Where("user_id = ?", targetID)

	var likes int64
	err := s.db.Model(&models.PostLike{}).
		Where("post_id IN (?)", targetPosts).
		Where("user_id = ?", actorID).
		Where("created_at >= ?", since).
		Count(&likes).Error
	if err != nil {
		return 0, 0, err
	}

	var comments int64
	err = s.db.Model(&models.Comment{}).
		Where("post_id IN (?)", targetPosts).
		Where("user_id = ?", actorID).
		Where("created_at >= ?", since).
		Count(&comments).Error
	if err != nil {
		return 0, 0, err
	}

	return likes, comments, nil
}

// InteractionCounts returns actorID's all-time interaction counts toward
// targetID, keyed by interaction type.
func (s *ScoringStore) InteractionCounts(actorID, targetID uint) (map[models.InteractionType]int64, error) {
	var records []models.UserInteraction
	err := s.db.
		Where("user_id = ? AND target_id = ?", actorID, targetID).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.InteractionType]int64, len(records))
	for _, r := range records {
		counts[r.InteractionType] = int64(r.InteractionCount)
	}
	return counts, nil
}

// PostEngagement returns a post's like and comment counts as of call time.
func (s *ScoringStore) PostEngagement(postID uint) (int64, int64, error) {
	var likes int64
	if err := s.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&likes).Error; err != nil {
		return 0, 0, err
	}

	var comments int64
	if err := s.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&comments).Error; err != nil {
		return 0, 0, err
	}

	return likes, comments, nil
}
