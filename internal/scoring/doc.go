// Package scoring implements the relationship-strength and feed-ranking
// calculations.
//
// Both components are pure functions over data supplied through the Store
// interface: Scorer computes a [0,1] strength score for a pair of users, and
// Ranker reorders a viewer's candidate posts by personalized relevance.
// Neither holds mutable state, so concurrent calls for different pairs or
// viewers are safe.
//
// Missing data (no friendship, no interactions, no shared chats) is a valid
// zero-signal input and never produces an error. Storage failures are the
// only errors either component returns, and they are propagated unchanged so
// callers never persist a score computed from silently defaulted inputs.
package scoring
