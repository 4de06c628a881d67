package handler

import (
	"go.uber.org/zap"

	"github.com/sanjida-777/Social-Media-v2/internal/database"
	"github.com/sanjida-777/Social-Media-v2/internal/interactions"
	"github.com/sanjida-777/Social-Media-v2/internal/scoring"
)

var (
	ranker   *scoring.Ranker
	recorder *interactions.Recorder
	log      *zap.Logger
)

// Init wires the scoring engine and interaction recorder over the database
// handle. Must be called after database.Connect.
func Init(logger *zap.Logger) {
	store := database.NewScoringStore(database.DB)
	scorer := scoring.NewScorer(store, logger)
	ranker = scoring.NewRanker(store, logger)
	recorder = interactions.NewRecorder(database.DB, scorer, logger)
	log = logger
}

// ErrorResponse represents a generic error response.
type ErrorResponse struct {
	Error string `json:"error" example:"An error message"`
}
