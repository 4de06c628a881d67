package scoring

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sanjida-777/Social-Media-v2/internal/models"
)

const (
	// rankThreshold is the feed size at or below which ranking is skipped and
	// the natural chronological order is kept.
	rankThreshold = 5

	// recencyWindow is the age at which a post's recency contribution reaches
	// zero.
	recencyWindow = 3 * 24 * time.Hour

	// nonFriendRelationship is the flat relationship sub-score for authors the
	// viewer is not friends with, followed or not.
	nonFriendRelationship = 0.2

	// engagementDivisor scales the log of a post's weighted like/comment
	// count into [0,1] territory.
	engagementDivisor = 10
)

// Ranker orders a viewer's candidate posts by personalized relevance.
type Ranker struct {
	store   Store
	weights FeedWeights
	now     func() time.Time
	log     *zap.Logger
}

// NewRanker creates a Ranker with the default weight calibration.
func NewRanker(store Store, log *zap.Logger) *Ranker {
	return &Ranker{
		store:   store,
		weights: DefaultWeights().Feed,
		now:     time.Now,
		log:     log,
	}
}

// Rank returns the given posts reordered by descending personalized score.
// The result is always a permutation of the input: posts with equal scores
// keep their original relative order, and inputs of five posts or fewer are
// returned unchanged.
func (r *Ranker) Rank(posts []models.Post, viewerID uint) ([]models.Post, error) {
	if len(posts) <= rankThreshold {
		return posts, nil
	}

	now := r.now()

	scores := make([]float64, len(posts))
	for i := range posts {
		score, err := r.postScore(&posts[i], viewerID, now)
		if err != nil {
			return nil, err
		}
		scores[i] = score
	}

	order := make([]int, len(posts))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	ranked := make([]models.Post, len(posts))
	for i, idx := range order {
		ranked[i] = posts[idx]
	}

	return ranked, nil
}

// postScore computes the composite score for a single post as seen by the
// viewer.
func (r *Ranker) postScore(post *models.Post, viewerID uint, now time.Time) (float64, error) {
	recency := r.recencyScore(post, now)

	relationship, err := r.relationshipScore(post.UserID, viewerID)
	if err != nil {
		return 0, err
	}

	engagement, err := r.engagementScore(post.ID)
	if err != nil {
		return 0, err
	}

	authorEngagement, err := r.authorEngagementScore(viewerID, post.UserID)
	if err != nil {
		return 0, err
	}

	final := recency*r.weights.Recency +
		relationship*r.weights.Relationship +
		engagement*r.weights.Engagement +
		authorEngagement*r.weights.AuthorEngagement

	r.log.Debug("post score",
		zap.Uint("post_id", post.ID),
		zap.Uint("viewer_id", viewerID),
		zap.Float64("score", final),
		zap.Float64("recency", recency),
		zap.Float64("relationship", relationship),
		zap.Float64("engagement", engagement),
		zap.Float64("author_engagement", authorEngagement),
	)

	return final, nil
}

// recencyScore decays linearly from 1.0 at creation time to 0 at the window
// edge. The clamp also covers future timestamps from clock skew.
func (r *Ranker) recencyScore(post *models.Post, now time.Time) float64 {
	age := now.Sub(post.CreatedAt)
	return clamp01(1 - age.Seconds()/recencyWindow.Seconds())
}

// relationshipScore maps the cached relationship strength with the author
// into [0.5, 1.0] for accepted friends. Own posts score 1.0; everyone else
// gets a flat non-friend base.
func (r *Ranker) relationshipScore(authorID, viewerID uint) (float64, error) {
	if authorID == viewerID {
		return 1.0, nil
	}

	edge, err := r.store.FriendEdge(viewerID, authorID)
	if err != nil {
		return 0, err
	}

	if edge != nil && edge.Status == models.StatusAccepted {
		return 0.5 + edge.RelationshipScore/2, nil
	}

	return nonFriendRelationship, nil
}

// engagementScore log-scales the post's like and comment counts so viral
// posts cannot dominate the feed. Comments weigh double.
func (r *Ranker) engagementScore(postID uint) (float64, error) {
	likes, comments, err := r.store.PostEngagement(postID)
	if err != nil {
		return 0, err
	}

	if likes == 0 && comments == 0 {
		return 0, nil
	}

	return clamp01(math.Log1p(float64(likes+comments*2)) / engagementDivisor), nil
}

// authorEngagementScore reflects how much the viewer has engaged with this
// author before, from the viewer's interaction records. Each interaction type
// contributes up to a fixed cap; messages and visits count for more than
// likes.
func (r *Ranker) authorEngagementScore(viewerID, authorID uint) (float64, error) {
	if viewerID == authorID {
		return 1.0, nil
	}

	counts, err := r.store.InteractionCounts(viewerID, authorID)
	if err != nil {
		return 0, err
	}

	if len(counts) == 0 {
		return 0, nil
	}

	score := 0.05*float64(min(counts[models.InteractionLike], 10)) +
		0.10*float64(min(counts[models.InteractionComment], 5)) +
		0.15*float64(min(counts[models.InteractionProfileVisit], 3)) +
		0.20*float64(min(counts[models.InteractionMessage], 5))

	return clamp01(score), nil
}
