package graph

import (
	"go.uber.org/zap"

	apperrors "socialgraph/backend/pkg/errors"
)

// ============================================================================
// Follow Relationship Operations
// ============================================================================

// Follow records that follower now follows followee. The edge is inserted
// into both endpoint slices as one unit; on any failure neither side changes.
func (s *Store) Follow(follower, followee *User) error {
	if follower == nil {
		return apperrors.NewNullArgument("follower")
	}
	if followee == nil {
		return apperrors.NewNullArgument("followee")
	}
	if follower.Equal(followee) {
		return apperrors.NewSelfFollow(follower.Username)
	}

	edge := Following{Follower: follower, Followee: followee}
	if containsEdge(follower.Following, edge) {
		return apperrors.NewAlreadyFollowing(follower.Username, followee.Username)
	}

	s.insertEdge(edge)
	s.logger.Info("Follow edge added",
		zap.String("follower", follower.Username),
		zap.String("followee", followee.Username),
	)
	return nil
}

// Unfollow removes the follower->followee edge from both endpoints.
func (s *Store) Unfollow(follower, followee *User) error {
	if follower == nil {
		return apperrors.NewNullArgument("follower")
	}
	if followee == nil {
		return apperrors.NewNullArgument("followee")
	}

	edge := Following{Follower: follower, Followee: followee}
	if !containsEdge(follower.Following, edge) {
		return apperrors.NewNotFollowing(follower.Username, followee.Username)
	}

	s.removeEdge(edge)
	s.logger.Info("Follow edge removed",
		zap.String("follower", follower.Username),
		zap.String("followee", followee.Username),
	)
	return nil
}

// RemoveFollower lets user evict follower from their followers. The edge runs
// follower->user, and both mirrors are removed together.
func (s *Store) RemoveFollower(user, follower *User) error {
	if user == nil {
		return apperrors.NewNullArgument("user")
	}
	if follower == nil {
		return apperrors.NewNullArgument("follower")
	}

	edge := Following{Follower: follower, Followee: user}
	if !containsEdge(user.Followers, edge) {
		return apperrors.NewNotAFollower(follower.Username, user.Username)
	}

	s.removeEdge(edge)
	s.logger.Info("Follower removed",
		zap.String("user", user.Username),
		zap.String("follower", follower.Username),
	)
	return nil
}
