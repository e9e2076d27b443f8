package graph

import "fmt"

// ============================================================================
// Social Graph Types
// ============================================================================

// Role tags a user with its capability level. Privileged operations check the
// tag; there is no subtype dispatch.
type Role string

const (
	RoleRegular Role = "regular"
	RoleAdmin   Role = "admin"
)

// User is a member of the platform. Username and Email together form the
// user's identity and are frozen after creation: the store indexes users by
// both, and mutating either would corrupt the indexes and every edge keyed on
// this identity.
type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`

	Posts     []*Post     `json:"-"`
	Following []Following `json:"-"`
	Followers []Following `json:"-"`

	// Audit trail, populated only for admins by the privileged operations.
	DeletedUsers []string `json:"-"`
	DeletedPosts []*Post  `json:"-"`
}

// Equal reports identity equality: same username and same email.
func (u *User) Equal(o *User) bool {
	if u == nil || o == nil {
		return u == o
	}
	return u.Username == o.Username && u.Email == o.Email
}

// IsAdmin reports whether the user carries the admin capability.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

func (u *User) label() string {
	if u.Role == RoleAdmin {
		return "Admin User"
	}
	return "Regular User"
}

// Summary returns the one-line roster entry for reports.
func (u *User) Summary() string {
	return fmt.Sprintf("%s: %s, Email: %s, Posts: %d, Following: %d, Followers: %d",
		u.label(), u.Username, u.Email, len(u.Posts), len(u.Following), len(u.Followers))
}

// Following is one directed follow edge. The same logical edge is mirrored in
// the follower's Following slice and the followee's Followers slice; the store
// inserts and removes both mirrors as a unit.
type Following struct {
	Follower *User `json:"-"`
	Followee *User `json:"-"`
}

// Equal compares both endpoints by user identity.
func (f Following) Equal(o Following) bool {
	return f.Follower.Equal(o.Follower) && f.Followee.Equal(o.Followee)
}

func (f Following) String() string {
	return fmt.Sprintf("%s following %s", f.Follower.Username, f.Followee.Username)
}

// Post is a piece of content authored by a user. Two posts with the same
// content by the same author are the same post: this content-based identity
// governs contains/remove semantics for admin deletion and is intentional,
// inherited platform behavior.
type Post struct {
	Content  string    `json:"content"`
	Author   *User     `json:"-"`
	Comments []Comment `json:"comments,omitempty"`
}

// Equal reports content-based identity: same content and same author.
func (p *Post) Equal(o *Post) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Content == o.Content && p.Author.Equal(o.Author)
}

// Summary returns the report line with a bounded content preview.
func (p *Post) Summary() string {
	preview := p.Content
	if len(preview) > 150 {
		preview = preview[:150]
	}
	line := fmt.Sprintf("Posted by %s: %s", p.Author.Username, preview)
	if len(p.Comments) == 0 {
		return line + " [no comments]"
	}
	return fmt.Sprintf("%s [%d comments]", line, len(p.Comments))
}

// Comment is a reply attached to a post. It has no lifecycle of its own; it
// lives and dies with the post it was appended to.
type Comment struct {
	Content string `json:"content"`
	Author  *User  `json:"-"`
}

// Equal reports content-based identity: same content and same author.
func (c Comment) Equal(o Comment) bool {
	return c.Content == o.Content && c.Author.Equal(o.Author)
}

// Summary returns the display line with a bounded content preview.
func (c Comment) Summary() string {
	preview := c.Content
	if len(preview) > 80 {
		preview = preview[:80]
	}
	return fmt.Sprintf("Comment by %s: %s", c.Author.Username, preview)
}
