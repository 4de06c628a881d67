package scoring

import (
	"time"

	"github.com/sanjida-777/Social-Media-v2/internal/models"
)

// Store is the read-only data access the scoring engine needs. Implementations
// translate each call into plain lookups/counts against the backing database.
//
// "Not found" is never an error: lookups return nil (FriendEdge) or zero
// counts, and the engine treats those as zero-signal inputs. Only genuine
// storage failures should surface as errors.
type Store interface {
	// FriendEdge returns the friendship between two users, checking both
	// directions, or nil when no edge exists.
	FriendEdge(userID, targetID uint) (*models.Friend, error)

	// AcceptedFriendIDs returns the ids of every user with an accepted
	// friendship with userID, in either direction.
	AcceptedFriendIDs(userID uint) ([]uint, error)

	// MessageCount counts chat messages sent by either user since the given
	// time, across every chat both users are members of. Zero when the pair
	// shares no chat.
	MessageCount(userID, targetID uint, since time.Time) (int64, error)

	// EngagementCounts counts the likes and comments actorID placed on
	// targetID's posts since the given time.
	EngagementCounts(actorID, targetID uint, since time.Time) (likes, comments int64, err error)

	// InteractionCounts returns the all-time interaction counts recorded from
	// actorID toward targetID, keyed by type. Types with no record are absent
	// from the map.
	InteractionCounts(actorID, targetID uint) (map[models.InteractionType]int64, error)

	// PostEngagement returns a post's like and comment counts as of call time.
	PostEngagement(postID uint) (likes, comments int64, err error)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
