package scoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sanjida-777/Social-Media-v2/internal/models"
)

// fakeStore is an in-memory Store for engine tests. Directional data is keyed
// by [actor, target]; pair data (messages) is keyed by the normalized pair.
type fakeStore struct {
	edges        []*models.Friend
	friends      map[uint][]uint
	messages     map[[2]uint]int64
	likes        map[[2]uint]int64
	comments     map[[2]uint]int64
	interactions map[[2]uint]map[models.InteractionType]int64
	postLikes    map[uint]int64
	postComments map[uint]int64
	err          error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		friends:      make(map[uint][]uint),
		messages:     make(map[[2]uint]int64),
		likes:        make(map[[2]uint]int64),
		comments:     make(map[[2]uint]int64),
		interactions: make(map[[2]uint]map[models.InteractionType]int64),
		postLikes:    make(map[uint]int64),
		postComments: make(map[uint]int64),
	}
}

func pairKey(a, b uint) [2]uint {
	if a > b {
		a, b = b, a
	}
	return [2]uint{a, b}
}

func (f *fakeStore) setInteraction(actor, target uint, typ models.InteractionType, count int64) {
	key := [2]uint{actor, target}
	if f.interactions[key] == nil {
		f.interactions[key] = make(map[models.InteractionType]int64)
	}
	f.interactions[key][typ] = count
}

func (f *fakeStore) FriendEdge(userID, targetID uint) (*models.Friend, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, e := range f.edges {
		if (e.UserID == userID && e.FriendID == targetID) || (e.UserID == targetID && e.FriendID == userID) {
			return e, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) AcceptedFriendIDs(userID uint) ([]uint, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.friends[userID], nil
}

func (f *fakeStore) MessageCount(userID, targetID uint, since time.Time) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.messages[pairKey(userID, targetID)], nil
}

func (f *fakeStore) EngagementCounts(actorID, targetID uint, since time.Time) (int64, int64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	key := [2]uint{actorID, targetID}
	return f.likes[key], f.comments[key], nil
}

func (f *fakeStore) InteractionCounts(actorID, targetID uint) (map[models.InteractionType]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.interactions[[2]uint{actorID, targetID}], nil
}

func (f *fakeStore) PostEngagement(postID uint) (int64, int64, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	return f.postLikes[postID], f.postComments[postID], nil
}

func newTestScorer(store Store) *Scorer {
	s := NewScorer(store, zap.NewNop())
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func TestScoreZeroSignals(t *testing.T) {
	scorer := newTestScorer(newFakeStore())

	score, err := scorer.Score(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 0.0, score)
}

func TestScoreSingleSignals(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(f *fakeStore)
		expected float64
	}{
		{
			name: "messages at half cap",
			setup: func(f *fakeStore) {
				f.messages[pairKey(1, 2)] = 50
			},
			expected: 0.3 * 0.5,
		},
		{
			name: "messages above cap clamp to full weight",
			setup: func(f *fakeStore) {
				f.messages[pairKey(1, 2)] = 120
			},
			expected: 0.3,
		},
		{
			name: "likes and comments, comments weigh double",
			setup: func(f *fakeStore) {
				// 10 + 2*5 + 5 + 2*5 = 35 of 50
				f.likes[[2]uint{1, 2}] = 10
				f.comments[[2]uint{1, 2}] = 5
				f.likes[[2]uint{2, 1}] = 5
				f.comments[[2]uint{2, 1}] = 5
			},
			expected: 0.3 * (35.0 / 50.0),
		},
		{
			name: "profile visits in both directions",
			setup: func(f *fakeStore) {
				f.setInteraction(1, 2, models.InteractionProfileVisit, 6)
				f.setInteraction(2, 1, models.InteractionProfileVisit, 4)
			},
			expected: 0.2 * 0.5,
		},
		{
			name: "mutual friends",
			setup: func(f *fakeStore) {
				f.friends[1] = []uint{3, 4, 5, 6}
				f.friends[2] = []uint{4, 5, 7}
			},
			expected: 0.2 * (2.0 / 30.0),
		},
		{
			name: "visit cap",
			setup: func(f *fakeStore) {
				f.setInteraction(1, 2, models.InteractionProfileVisit, 500)
			},
			expected: 0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			tt.setup(store)
			scorer := newTestScorer(store)

			score, err := scorer.Score(1, 2)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, score, 1e-9)
		})
	}
}

func TestScoreMessageClampScenario(t *testing.T) {
	// 120 messages in the window with no other signals: the message sub-score
	// clamps to 1.0 and contributes exactly its weight.
	store := newFakeStore()
	store.messages[pairKey(1, 2)] = 120
	scorer := newTestScorer(store)

	score, err := scorer.Score(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 0.30, score, 1e-9)
}

func TestScoreBounds(t *testing.T) {
	store := newFakeStore()
	store.messages[pairKey(1, 2)] = 10000
	store.likes[[2]uint{1, 2}] = 10000
	store.comments[[2]uint{1, 2}] = 10000
	store.setInteraction(1, 2, models.InteractionProfileVisit, 10000)
	store.setInteraction(2, 1, models.InteractionProfileVisit, 10000)
	store.friends[1] = manyIDs(100, 1000)
	store.friends[2] = manyIDs(100, 1000)
	scorer := newTestScorer(store)

	score, err := scorer.Score(1, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-9)
	assert.LessOrEqual(t, score, 1.0)
}

func TestScoreMonotonicPerSignal(t *testing.T) {
	base := func() *fakeStore {
		f := newFakeStore()
		f.messages[pairKey(1, 2)] = 20
		f.likes[[2]uint{1, 2}] = 5
		f.setInteraction(1, 2, models.InteractionProfileVisit, 3)
		f.friends[1] = []uint{3, 4}
		f.friends[2] = []uint{3}
		return f
	}

	bumps := []struct {
		name string
		bump func(f *fakeStore)
	}{
		{"more messages", func(f *fakeStore) { f.messages[pairKey(1, 2)] = 40 }},
		{"more likes", func(f *fakeStore) { f.likes[[2]uint{1, 2}] = 10 }},
		{"more visits", func(f *fakeStore) { f.setInteraction(1, 2, models.InteractionProfileVisit, 8) }},
		{"more mutual friends", func(f *fakeStore) { f.friends[2] = []uint{3, 4} }},
	}

	baseline, err := newTestScorer(base()).Score(1, 2)
	require.NoError(t, err)

	for _, tt := range bumps {
		t.Run(tt.name, func(t *testing.T) {
			store := base()
			tt.bump(store)

			bumped, err := newTestScorer(store).Score(1, 2)
			require.NoError(t, err)
			assert.Greater(t, bumped, baseline)
		})
	}
}

func TestScoreStorageErrorPropagates(t *testing.T) {
	store := newFakeStore()
	store.err = errors.New("connection refused")
	scorer := newTestScorer(store)

	_, err := scorer.Score(1, 2)
	require.Error(t, err)
	assert.ErrorContains(t, err, "connection refused")
}

func manyIDs(start, count uint) []uint {
	ids := make([]uint, 0, count)
	for i := start; i < start+count; i++ {
		ids = append(ids, i)
	}
	return ids
}
