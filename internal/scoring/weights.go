package scoring

// RelationshipWeights defines how the four relationship signals are combined.
// The weights sum to 1.0, so a weighted sum of [0,1] sub-scores stays in [0,1].
type RelationshipWeights struct {
	Messages      float64 // chat messages in shared chats, trailing 30 days
	Interactions  float64 // likes and comments on each other's posts, trailing 60 days
	ProfileVisits float64 // all-time profile visits in both directions
	MutualFriends float64 // size of the shared accepted-friend set
}

// FeedWeights defines how the four per-post signals are combined. The weights
// sum to 1.0.
type FeedWeights struct {
	Recency          float64 // post age against the recency window
	Relationship     float64 // viewer's cached relationship with the author
	Engagement       float64 // log-scaled like/comment counts on the post
	AuthorEngagement float64 // viewer's interaction history with the author
}

// Weights holds both scoring weight configurations.
type Weights struct {
	Relationship RelationshipWeights
	Feed         FeedWeights
}

// DefaultWeights returns the calibrated weight configuration.
//
// Relationship formula: (messages * 0.3) + (interactions * 0.3) +
// (profile_visits * 0.2) + (mutual_friends * 0.2).
//
// Feed formula: (recency * 0.4) + (relationship * 0.3) + (engagement * 0.2) +
// (author_engagement * 0.1). Recency dominates so fresh posts surface even
// from weaker ties.
func DefaultWeights() Weights {
	return Weights{
		Relationship: RelationshipWeights{
			Messages:      0.3,
			Interactions:  0.3,
			ProfileVisits: 0.2,
			MutualFriends: 0.2,
		},
		Feed: FeedWeights{
			Recency:          0.4,
			Relationship:     0.3,
			Engagement:       0.2,
			AuthorEngagement: 0.1,
		},
	}
}
