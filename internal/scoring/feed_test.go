package scoring

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sanjida-777/Social-Media-v2/internal/models"
)

var feedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestRanker(store Store) *Ranker {
	r := NewRanker(store, zap.NewNop())
	r.now = func() time.Time { return feedNow }
	return r
}

func makePost(id, authorID uint, createdAt time.Time) models.Post {
	return models.Post{
		Model:  gorm.Model{ID: id, CreatedAt: createdAt},
		UserID: authorID,
	}
}

func postIDs(posts []models.Post) []uint {
	ids := make([]uint, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func TestRankSmallFeedUnchanged(t *testing.T) {
	ranker := newTestRanker(newFakeStore())

	// Deliberately out of chronological order; small feeds must come back
	// exactly as given.
	posts := []models.Post{
		makePost(3, 7, feedNow.Add(-2*time.Hour)),
		makePost(1, 8, feedNow.Add(-30*time.Minute)),
		makePost(5, 7, feedNow.Add(-72*time.Hour)),
		makePost(2, 9, feedNow.Add(-time.Minute)),
		makePost(4, 8, feedNow.Add(-10*time.Hour)),
	}

	ranked, err := ranker.Rank(posts, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1, 5, 2, 4}, postIDs(ranked))
}

func TestRankTiedPostsKeepInputOrder(t *testing.T) {
	// Ten posts all older than the recency window, by non-friends, with no
	// engagement and no interaction history: every post scores the same flat
	// non-friend baseline, so the stable sort must preserve input order.
	ranker := newTestRanker(newFakeStore())

	var posts []models.Post
	for i := uint(1); i <= 10; i++ {
		posts = append(posts, makePost(i, 100+i, feedNow.Add(-96*time.Hour)))
	}

	score, err := ranker.postScore(&posts[0], 1, feedNow)
	require.NoError(t, err)
	assert.InDelta(t, 0.06, score, 1e-9)

	ranked, err := ranker.Rank(posts, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, postIDs(ranked))
}

func TestRankOrdersByScoreDescending(t *testing.T) {
	store := newFakeStore()
	store.edges = []*models.Friend{
		{UserID: 1, FriendID: 20, Status: models.StatusAccepted, RelationshipScore: 0.9},
	}
	store.postLikes[4] = 30
	store.postComments[4] = 10
	ranker := newTestRanker(store)

	posts := []models.Post{
		makePost(1, 50, feedNow.Add(-100*time.Hour)), // stale, stranger
		makePost(2, 20, feedNow.Add(-time.Hour)),     // fresh, close friend
		makePost(3, 50, feedNow.Add(-90*time.Hour)),
		makePost(4, 51, feedNow.Add(-80*time.Hour)), // stale but heavily engaged
		makePost(5, 1, feedNow.Add(-2*time.Hour)),   // viewer's own post
		makePost(6, 52, feedNow.Add(-85*time.Hour)),
	}

	ranked, err := ranker.Rank(posts, 1)
	require.NoError(t, err)

	// Same multiset of posts came back.
	require.Len(t, ranked, len(posts))
	assert.ElementsMatch(t, postIDs(posts), postIDs(ranked))

	// And in non-increasing score order.
	var prev = math.Inf(1)
	for i := range ranked {
		score, err := ranker.postScore(&ranked[i], 1, feedNow)
		require.NoError(t, err)
		assert.LessOrEqual(t, score, prev)
		prev = score
	}

	// The fresh friend post and the viewer's own post outrank all the stale
	// stranger posts.
	assert.Equal(t, []uint{5, 2}, postIDs(ranked)[:2])
}

func TestPostScoreFriendScenario(t *testing.T) {
	// Fresh post by an accepted friend with cached score 0.8, carrying
	// 5 likes and 1 comment, no interaction history:
	// 0.4*1.0 + 0.3*0.9 + 0.2*(ln(8)/10) + 0.1*0 ~ 0.7116
	store := newFakeStore()
	store.edges = []*models.Friend{
		{UserID: 2, FriendID: 1, Status: models.StatusAccepted, RelationshipScore: 0.8},
	}
	store.postLikes[1] = 5
	store.postComments[1] = 1
	ranker := newTestRanker(store)

	post := makePost(1, 2, feedNow)
	score, err := ranker.postScore(&post, 1, feedNow)
	require.NoError(t, err)
	assert.InDelta(t, 0.7116, score, 0.0001)
}

func TestRelationshipSubScore(t *testing.T) {
	tests := []struct {
		name     string
		edges    []*models.Friend
		authorID uint
		viewerID uint
		expected float64
	}{
		{
			name:     "own post",
			authorID: 1,
			viewerID: 1,
			expected: 1.0,
		},
		{
			name: "accepted friend maps cached score into upper half",
			edges: []*models.Friend{
				{UserID: 1, FriendID: 2, Status: models.StatusAccepted, RelationshipScore: 0.8},
			},
			authorID: 2,
			viewerID: 1,
			expected: 0.9,
		},
		{
			name: "accepted friend with zero score still gets the friend floor",
			edges: []*models.Friend{
				{UserID: 2, FriendID: 1, Status: models.StatusAccepted},
			},
			authorID: 2,
			viewerID: 1,
			expected: 0.5,
		},
		{
			name: "pending request is not a friendship",
			edges: []*models.Friend{
				{UserID: 1, FriendID: 2, Status: models.StatusPending},
			},
			authorID: 2,
			viewerID: 1,
			expected: nonFriendRelationship,
		},
		{
			name:     "stranger",
			authorID: 2,
			viewerID: 1,
			expected: nonFriendRelationship,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.edges = tt.edges
			ranker := newTestRanker(store)

			score, err := ranker.relationshipScore(tt.authorID, tt.viewerID)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestEngagementSubScore(t *testing.T) {
	store := newFakeStore()
	store.postLikes[2] = 5
	store.postComments[2] = 1
	store.postLikes[3] = 1_000_000
	store.postComments[3] = 1_000_000
	ranker := newTestRanker(store)

	// No likes and no comments is exactly zero, not log1p(0)/10 noise.
	score, err := ranker.engagementScore(1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	score, err = ranker.engagementScore(2)
	require.NoError(t, err)
	assert.InDelta(t, math.Log1p(7)/10, score, 1e-9)

	// Pathological counts stay clamped inside [0,1].
	score, err = ranker.engagementScore(3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestAuthorEngagementSubScore(t *testing.T) {
	store := newFakeStore()
	store.setInteraction(1, 2, models.InteractionLike, 4)
	store.setInteraction(1, 2, models.InteractionComment, 2)
	store.setInteraction(1, 3, models.InteractionLike, 1000)
	store.setInteraction(1, 3, models.InteractionComment, 1000)
	store.setInteraction(1, 3, models.InteractionProfileVisit, 1000)
	store.setInteraction(1, 3, models.InteractionMessage, 1000)
	ranker := newTestRanker(store)

	// Own posts always score full author engagement.
	score, err := ranker.authorEngagementScore(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)

	// No interaction record at all.
	score, err = ranker.authorEngagementScore(1, 99)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)

	// 0.05*4 + 0.10*2 = 0.4
	score, err = ranker.authorEngagementScore(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.4, score, 1e-9)

	// Every type over its cap clamps to 1.0 overall.
	score, err = ranker.authorEngagementScore(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 1.0, score)
}

func TestRecencySubScore(t *testing.T) {
	ranker := newTestRanker(newFakeStore())

	tests := []struct {
		name     string
		age      time.Duration
		expected float64
	}{
		{"just posted", 0, 1.0},
		{"half the window", 36 * time.Hour, 0.5},
		{"at the window edge", 72 * time.Hour, 0.0},
		{"well past the window", 200 * time.Hour, 0.0},
		{"future timestamp clamps at one", -time.Hour, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := makePost(1, 2, feedNow.Add(-tt.age))
			assert.InDelta(t, tt.expected, ranker.recencyScore(&post, feedNow), 1e-9)
		})
	}
}

func TestRankStorageErrorPropagates(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	ranker := newTestRanker(store)

	var posts []models.Post
	for i := uint(1); i <= 6; i++ {
		posts = append(posts, makePost(i, 50, feedNow))
	}

	_, err := ranker.Rank(posts, 1)
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
}
