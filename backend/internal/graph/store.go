package graph

import (
	"go.uber.org/zap"

	"socialgraph/backend/pkg/logger"
)

// Store owns the social graph for the lifetime of the process: the user
// roster in insertion order, the identity indexes, and every follow edge.
// All mutation goes through its operations, and a failed operation never
// leaves partial state behind. The store itself does no locking; callers
// that share it across goroutines must serialize each operation.
type Store struct {
	users      []*User
	byUsername map[string]*User
	byEmail    map[string]*User
	logger     *zap.Logger
}

// NewStore creates an empty social graph store
func NewStore() *Store {
	return &Store{
		byUsername: make(map[string]*User),
		byEmail:    make(map[string]*User),
		logger:     logger.Get(),
	}
}

// insertEdge records the edge on both endpoints. This is the only place a
// Following is ever added to a user slice: both sides or neither.
func (s *Store) insertEdge(edge Following) {
	edge.Follower.Following = append(edge.Follower.Following, edge)
	edge.Followee.Followers = append(edge.Followee.Followers, edge)
}

// removeEdge deletes the edge from both endpoints. This is the only place a
// Following is ever removed from a user slice.
func (s *Store) removeEdge(edge Following) {
	edge.Follower.Following = deleteEdge(edge.Follower.Following, edge)
	edge.Followee.Followers = deleteEdge(edge.Followee.Followers, edge)
}

func containsEdge(edges []Following, target Following) bool {
	for _, e := range edges {
		if e.Equal(target) {
			return true
		}
	}
	return false
}

func deleteEdge(edges []Following, target Following) []Following {
	for i, e := range edges {
		if e.Equal(target) {
			return append(edges[:i], edges[i+1:]...)
		}
	}
	return edges
}
