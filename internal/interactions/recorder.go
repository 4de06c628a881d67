// Package interactions records directed user interactions and keeps the
// cached relationship score on the friendship row fresh.
package interactions

import (
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sanjida-777/Social-Media-v2/internal/models"
	"github.com/sanjida-777/Social-Media-v2/internal/scoring"
)

// Recorder upserts interaction records and triggers the relationship score
// recomputation the scoring engine itself never performs.
type Recorder struct {
	db     *gorm.DB
	scorer *scoring.Scorer
	log    *zap.Logger
}

// NewRecorder creates a Recorder over the given database and scorer.
func NewRecorder(db *gorm.DB, scorer *scoring.Scorer, log *zap.Logger) *Recorder {
	return &Recorder{db: db, scorer: scorer, log: log}
}

// Record notes one interaction from actorID toward targetID. A single row per
// (actor, target, type) holds a running count; repeats increment it. When an
// accepted friendship exists between the pair, in either direction, the
// relationship score is recomputed and written back to the friendship row in
// a single update (last-writer-wins: the score is a pure function of current
// data, so a stale write is corrected by the next interaction).
//
// Interactions between non-friends are still recorded so the history is
// already there when a friendship forms later.
func (r *Recorder) Record(actorID, targetID uint, interactionType models.InteractionType) error {
	if actorID == targetID {
		return nil
	}

	now := time.Now()
	record := models.UserInteraction{
		UserID:           actorID,
		TargetID:         targetID,
		InteractionType:  interactionType,
		InteractionCount: 1,
		LastInteraction:  now,
	}

	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "target_id"}, {Name: "interaction_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"interaction_count": gorm.Expr("user_interactions.interaction_count + 1"),
			"last_interaction":  now,
		}),
	}).Create(&record).Error
	if err != nil {
		return err
	}

	return r.refreshScore(actorID, targetID)
}

// refreshScore recomputes and persists the relationship score for the pair,
// if they are accepted friends. Pending or declined edges are left untouched.
func (r *Recorder) refreshScore(actorID, targetID uint) error {
	var friendship models.Friend
	err := r.db.
		Where("(user_id = ? AND friend_id = ?) OR (user_id = ? AND friend_id = ?)",
			actorID, targetID, targetID, actorID).
		First(&friendship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if friendship.Status != models.StatusAccepted {
		return nil
	}

	score, err := r.scorer.Score(actorID, targetID)
	if err != nil {
		return err
	}

	err = r.db.Model(&models.Friend{}).
		Where("id = ?", friendship.ID).
		Update("relationship_score", score).Error
	if err != nil {
		return err
	}

	r.log.Debug("relationship score refreshed",
		zap.Uint("user_id", friendship.UserID),
		zap.Uint("friend_id", friendship.FriendID),
		zap.Float64("score", score),
	)

	return nil
}
