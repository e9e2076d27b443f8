package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "socialgraph/backend/pkg/errors"
)

func TestAddUser_Validation(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		wantErr  error
	}{
		{
			name:     "valid regular user",
			username: "sam",
			email:    "s@x.com",
		},
		{
			name:     "valid with dots and plus in local part",
			username: "sam2",
			email:    "sam.p+tag@mail.example.com",
		},
		{
			name:     "empty username",
			username: "",
			email:    "e@x.com",
			wantErr:  &apperrors.ErrNullArgument{},
		},
		{
			name:     "missing at sign",
			username: "noat",
			email:    "noat.example.com",
			wantErr:  &apperrors.ErrInvalidEmailFormat{},
		},
		{
			name:     "missing tld",
			username: "notld",
			email:    "notld@example",
			wantErr:  &apperrors.ErrInvalidEmailFormat{},
		},
		{
			name:     "one letter tld",
			username: "short",
			email:    "short@example.c",
			wantErr:  &apperrors.ErrInvalidEmailFormat{},
		},
		{
			name:     "digits in tld",
			username: "digits",
			email:    "digits@example.c0m",
			wantErr:  &apperrors.ErrInvalidEmailFormat{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			user, err := s.AddUser(tt.username, tt.email, RoleRegular)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.IsType(t, tt.wantErr, err)
				assert.Nil(t, user)
				assert.Empty(t, s.Users())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
			assert.Equal(t, RoleRegular, user.Role)
			assert.Same(t, user, s.FindByUsername(tt.username))
			assert.Same(t, user, s.FindByEmail(tt.email))
		})
	}
}

func TestAddUser_Duplicates(t *testing.T) {
	s := NewStore()
	_, err := s.AddUser("sam", "s@x.com", RoleRegular)
	require.NoError(t, err)

	_, err = s.AddUser("sam", "t@y.com", RoleRegular)
	var dupName *apperrors.ErrDuplicateUsername
	require.ErrorAs(t, err, &dupName)

	_, err = s.AddUser("sam2", "s@x.com", RoleRegular)
	var dupMail *apperrors.ErrDuplicateEmail
	require.ErrorAs(t, err, &dupMail)

	assert.Len(t, s.Users(), 1)
}

func TestFind_Misses(t *testing.T) {
	s := NewStore()
	assert.Nil(t, s.FindByUsername("ghost"))
	assert.Nil(t, s.FindByEmail("ghost@x.com"))
}

func TestUsers_InsertionOrder(t *testing.T) {
	s := NewStore()
	for _, name := range []string{"carol", "alice", "bob"} {
		_, err := s.AddUser(name, name+"@x.com", RoleRegular)
		require.NoError(t, err)
	}

	var names []string
	for _, u := range s.Users() {
		names = append(names, u.Username)
	}
	assert.Equal(t, []string{"carol", "alice", "bob"}, names)
}

func TestDeleteUser_CascadesEdges(t *testing.T) {
	s := NewStore()
	admin, err := s.AddUser("root", "root@platform.com", RoleAdmin)
	require.NoError(t, err)
	alice, bob := seedUsers(t, s)

	require.NoError(t, s.Follow(alice, bob))
	require.NoError(t, s.Follow(bob, alice))
	require.NoError(t, s.Follow(admin, bob))

	require.NoError(t, s.DeleteUser(admin, bob))

	assert.Nil(t, s.FindByUsername("bob"))
	assert.Nil(t, s.FindByEmail("b@b.com"))
	assert.Empty(t, alice.Following, "alice must not keep an edge to a deleted user")
	assert.Empty(t, alice.Followers)
	assert.Empty(t, admin.Following)
	assert.Equal(t, []string{"bob"}, admin.DeletedUsers)
	assert.Len(t, s.Users(), 2)
}

func TestDeleteUser_Forbidden(t *testing.T) {
	s := NewStore()
	alice, bob := seedUsers(t, s)

	err := s.DeleteUser(alice, bob)

	var forbidden *apperrors.ErrForbidden
	require.ErrorAs(t, err, &forbidden)
	assert.NotNil(t, s.FindByUsername("bob"))
}

func TestDeleteUser_NotFound(t *testing.T) {
	s := NewStore()
	admin, err := s.AddUser("root", "root@platform.com", RoleAdmin)
	require.NoError(t, err)
	ghost := &User{Username: "ghost", Email: "g@g.com"}

	err = s.DeleteUser(admin, ghost)

	var notFound *apperrors.ErrUserNotFound
	require.ErrorAs(t, err, &notFound)
	assert.Empty(t, admin.DeletedUsers)
}
