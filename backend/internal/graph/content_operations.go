package graph

import (
	"go.uber.org/zap"

	apperrors "socialgraph/backend/pkg/errors"
)

// ============================================================================
// Post and Comment Operations
// ============================================================================

// AddPost appends a new post to the author's post sequence.
func (s *Store) AddPost(author *User, content string) (*Post, error) {
	if author == nil {
		return nil, apperrors.NewNullArgument("author")
	}

	post := &Post{Content: content, Author: author}
	author.Posts = append(author.Posts, post)

	s.logger.Info("Post added", zap.String("author", author.Username))
	return post, nil
}

// AddComment appends a comment by author to the post's comment sequence.
func (s *Store) AddComment(post *Post, author *User, content string) (Comment, error) {
	if post == nil {
		return Comment{}, apperrors.NewNullArgument("post")
	}
	if author == nil {
		return Comment{}, apperrors.NewNullArgument("author")
	}
	if content == "" {
		return Comment{}, apperrors.ErrEmptyContent
	}

	comment := Comment{Content: content, Author: author}
	post.Comments = append(post.Comments, comment)

	s.logger.Info("Comment added",
		zap.String("author", author.Username),
		zap.String("post_author", post.Author.Username),
	)
	return comment, nil
}

// DeletePost removes the first post in owner's sequence equal to post. Only
// admins may delete posts. Posts with identical content by the same author
// share an identity, so the earliest matching entry is the one removed.
func (s *Store) DeletePost(actor, owner *User, post *Post) error {
	if actor == nil {
		return apperrors.NewNullArgument("actor")
	}
	if owner == nil {
		return apperrors.NewNullArgument("owner")
	}
	if post == nil {
		return apperrors.NewNullArgument("post")
	}
	if !actor.IsAdmin() {
		return apperrors.NewForbidden(actor.Username, "delete posts")
	}

	for i, p := range owner.Posts {
		if p.Equal(post) {
			removed := owner.Posts[i]
			owner.Posts = append(owner.Posts[:i], owner.Posts[i+1:]...)
			actor.DeletedPosts = append(actor.DeletedPosts, removed)

			s.logger.Info("Post deleted",
				zap.String("owner", owner.Username),
				zap.String("actor", actor.Username),
			)
			return nil
		}
	}
	return apperrors.NewPostNotFound(owner.Username)
}
