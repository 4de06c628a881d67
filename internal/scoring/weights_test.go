package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()

	rel := w.Relationship.Messages + w.Relationship.Interactions +
		w.Relationship.ProfileVisits + w.Relationship.MutualFriends
	assert.InDelta(t, 1.0, rel, 1e-9, "relationship weights must sum to 1.0 to keep scores in [0,1]")

	feed := w.Feed.Recency + w.Feed.Relationship + w.Feed.Engagement + w.Feed.AuthorEngagement
	assert.InDelta(t, 1.0, feed, 1e-9, "feed weights must sum to 1.0 to keep scores in [0,1]")
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.5))
	assert.Equal(t, 0.0, clamp01(0))
	assert.Equal(t, 0.25, clamp01(0.25))
	assert.Equal(t, 1.0, clamp01(1))
	assert.Equal(t, 1.0, clamp01(3.7))
}
