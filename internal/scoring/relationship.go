package scoring

import (
	"time"

	"go.uber.org/zap"

	"github.com/sanjida-777/Social-Media-v2/internal/models"
)

const (
	// Normalization caps: a signal reaches its maximum sub-score at the cap
	// and clamps there.
	maxMessages      = 100 // messages in the trailing 30 days
	maxInteractions  = 50  // weighted likes+comments in the trailing 60 days
	maxProfileVisits = 20  // all-time visits, both directions
	maxMutualFriends = 30

	messageWindow     = 30 * 24 * time.Hour
	interactionWindow = 60 * 24 * time.Hour
)

// Scorer computes the relationship strength between a pair of users.
type Scorer struct {
	store   Store
	weights RelationshipWeights
	now     func() time.Time
	log     *zap.Logger
}

// NewScorer creates a Scorer with the default weight calibration.
func NewScorer(store Store, log *zap.Logger) *Scorer {
	return &Scorer{
		store:   store,
		weights: DefaultWeights().Relationship,
		now:     time.Now,
		log:     log,
	}
}

// Score returns the relationship strength between two users as a value in
// [0,1]. It combines message frequency, post interactions, profile visits and
// mutual friends, each normalized to [0,1] and weighted. Pairs with no
// history of any kind score exactly 0.
//
// The result is not persisted here; the caller owns the write-back to the
// friendship row.
func (s *Scorer) Score(userID, friendID uint) (float64, error) {
	messageScore, err := s.messageScore(userID, friendID)
	if err != nil {
		return 0, err
	}

	interactionScore, err := s.interactionScore(userID, friendID)
	if err != nil {
		return 0, err
	}

	visitScore, err := s.profileVisitScore(userID, friendID)
	if err != nil {
		return 0, err
	}

	mutualScore, err := s.mutualFriendsScore(userID, friendID)
	if err != nil {
		return 0, err
	}

	final := messageScore*s.weights.Messages +
		interactionScore*s.weights.Interactions +
		visitScore*s.weights.ProfileVisits +
		mutualScore*s.weights.MutualFriends

	s.log.Debug("relationship score",
		zap.Uint("user_id", userID),
		zap.Uint("friend_id", friendID),
		zap.Float64("score", final),
		zap.Float64("messages", messageScore),
		zap.Float64("interactions", interactionScore),
		zap.Float64("profile_visits", visitScore),
		zap.Float64("mutual_friends", mutualScore),
	)

	return final, nil
}

// messageScore counts chat messages the pair exchanged in their shared chats
// over the last 30 days. No shared chat means no messages, not an error.
func (s *Scorer) messageScore(userID, friendID uint) (float64, error) {
	since := s.now().Add(-messageWindow)

	count, err := s.store.MessageCount(userID, friendID, since)
	if err != nil {
		return 0, err
	}

	return clamp01(float64(count) / maxMessages), nil
}

// interactionScore counts likes and comments the pair placed on each other's
// posts over the last 60 days. Comments weigh double: leaving one signals
// stronger intent than a like.
func (s *Scorer) interactionScore(userID, friendID uint) (float64, error) {
	since := s.now().Add(-interactionWindow)

	likesGiven, commentsGiven, err := s.store.EngagementCounts(userID, friendID, since)
	if err != nil {
		return 0, err
	}

	likesReceived, commentsReceived, err := s.store.EngagementCounts(friendID, userID, since)
	if err != nil {
		return 0, err
	}

	total := likesGiven + commentsGiven*2 + likesReceived + commentsReceived*2

	return clamp01(float64(total) / maxInteractions), nil
}

// profileVisitScore sums all-time profile visits in both directions.
func (s *Scorer) profileVisitScore(userID, friendID uint) (float64, error) {
	toFriend, err := s.store.InteractionCounts(userID, friendID)
	if err != nil {
		return 0, err
	}

	toUser, err := s.store.InteractionCounts(friendID, userID)
	if err != nil {
		return 0, err
	}

	total := toFriend[models.InteractionProfileVisit] + toUser[models.InteractionProfileVisit]

	return clamp01(float64(total) / maxProfileVisits), nil
}

// mutualFriendsScore measures the overlap of the two users' accepted-friend
// sets.
func (s *Scorer) mutualFriendsScore(userID, friendID uint) (float64, error) {
	userFriends, err := s.store.AcceptedFriendIDs(userID)
	if err != nil {
		return 0, err
	}

	friendFriends, err := s.store.AcceptedFriendIDs(friendID)
	if err != nil {
		return 0, err
	}

	seen := make(map[uint]bool, len(userFriends))
	for _, id := range userFriends {
		seen[id] = true
	}

	var mutual int
	for _, id := range friendFriends {
		if seen[id] {
			mutual++
		}
	}

	return clamp01(float64(mutual) / maxMutualFriends), nil
}
