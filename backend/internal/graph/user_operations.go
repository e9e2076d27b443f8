package graph

import (
	"regexp"

	"go.uber.org/zap"

	apperrors "socialgraph/backend/pkg/errors"
)

// ============================================================================
// User Operations
// ============================================================================

// emailPattern accepts letters, digits and ._%+- in the local part, letters,
// digits and dots in the domain, and a TLD of at least two letters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.]+\.[a-zA-Z]{2,}$`)

// AddUser registers a new user on the platform. Username and email must both
// be unique across the roster; the email must match the accepted shape.
func (s *Store) AddUser(username, email string, role Role) (*User, error) {
	if username == "" {
		return nil, apperrors.NewNullArgument("username")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperrors.NewInvalidEmailFormat(email)
	}
	if _, exists := s.byUsername[username]; exists {
		return nil, apperrors.NewDuplicateUsername(username)
	}
	if _, exists := s.byEmail[email]; exists {
		return nil, apperrors.NewDuplicateEmail(email)
	}

	user := &User{Username: username, Email: email, Role: role}
	s.users = append(s.users, user)
	s.byUsername[username] = user
	s.byEmail[email] = user

	s.logger.Info("User added",
		zap.String("username", username),
		zap.String("role", string(role)),
	)
	return user, nil
}

// FindByUsername returns the user registered under the given username, or nil.
func (s *Store) FindByUsername(username string) *User {
	return s.byUsername[username]
}

// FindByEmail returns the user registered under the given email, or nil.
func (s *Store) FindByEmail(email string) *User {
	return s.byEmail[email]
}

// Users returns a snapshot of the roster in insertion order.
func (s *Store) Users() []*User {
	snapshot := make([]*User, len(s.users))
	copy(snapshot, s.users)
	return snapshot
}

// DeleteUser removes target from the platform. Only admins may delete users.
// Every follow edge referencing the target is scrubbed from both endpoints,
// so no other user is left holding a dangling edge.
func (s *Store) DeleteUser(actor, target *User) error {
	if actor == nil {
		return apperrors.NewNullArgument("actor")
	}
	if target == nil {
		return apperrors.NewNullArgument("target")
	}
	if !actor.IsAdmin() {
		return apperrors.NewForbidden(actor.Username, "delete users")
	}

	idx := -1
	for i, u := range s.users {
		if u.Equal(target) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperrors.NewUserNotFound(target.Username)
	}
	canonical := s.users[idx]

	// removeEdge mutates the slices being walked, so iterate over copies.
	for _, edge := range append([]Following(nil), canonical.Following...) {
		s.removeEdge(edge)
	}
	for _, edge := range append([]Following(nil), canonical.Followers...) {
		s.removeEdge(edge)
	}

	s.users = append(s.users[:idx], s.users[idx+1:]...)
	delete(s.byUsername, canonical.Username)
	delete(s.byEmail, canonical.Email)
	actor.DeletedUsers = append(actor.DeletedUsers, canonical.Username)

	s.logger.Info("User deleted",
		zap.String("username", canonical.Username),
		zap.String("actor", actor.Username),
	)
	return nil
}
