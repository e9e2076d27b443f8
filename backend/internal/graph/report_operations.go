package graph

// ============================================================================
// Query and Report Operations
// ============================================================================

// Followers returns the usernames currently following the user. The slice is
// re-derived from the edge set on every call.
func (s *Store) Followers(u *User) []string {
	if u == nil {
		return nil
	}
	names := make([]string, 0, len(u.Followers))
	for _, edge := range u.Followers {
		names = append(names, edge.Follower.Username)
	}
	return names
}

// FollowingOf returns the usernames the user currently follows.
func (s *Store) FollowingOf(u *User) []string {
	if u == nil {
		return nil
	}
	names := make([]string, 0, len(u.Following))
	for _, edge := range u.Following {
		names = append(names, edge.Followee.Username)
	}
	return names
}

// UserReport is one entry of the platform report.
type UserReport struct {
	Summary string   `json:"summary"`
	Posts   []string `json:"posts,omitempty"`
}

// Report builds the full platform report, one entry per user in insertion
// order. Pure read; no state changes.
func (s *Store) Report() []UserReport {
	reports := make([]UserReport, 0, len(s.users))
	for _, u := range s.users {
		entry := UserReport{Summary: u.Summary()}
		for _, p := range u.Posts {
			entry.Posts = append(entry.Posts, p.Summary())
		}
		reports = append(reports, entry)
	}
	return reports
}

// PostDetail is one post with its comment lines, for the user info view.
type PostDetail struct {
	Line     string   `json:"line"`
	Comments []string `json:"comments,omitempty"`
}

// UserDetail is the per-user detail view.
type UserDetail struct {
	Header string       `json:"header"`
	Posts  []PostDetail `json:"posts,omitempty"`
}

// UserInfo builds the detail view for one user: role-tagged header plus every
// post with its comments.
func (s *Store) UserInfo(u *User) *UserDetail {
	if u == nil {
		return nil
	}
	detail := &UserDetail{
		Header: u.label() + ": " + u.Username + ", Email: " + u.Email,
	}
	for _, p := range u.Posts {
		pd := PostDetail{Line: "Posted by " + p.Author.Username + ": " + p.Content}
		for _, c := range p.Comments {
			pd.Comments = append(pd.Comments, c.Summary())
		}
		detail.Posts = append(detail.Posts, pd)
	}
	return detail
}
