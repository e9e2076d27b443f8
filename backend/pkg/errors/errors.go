package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents malformed or missing input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeUser represents user registration and roster errors
	ErrorTypeUser ErrorType = "user"
	// ErrorTypeFollow represents follow-edge errors
	ErrorTypeFollow ErrorType = "follow"
	// ErrorTypeContent represents post and comment errors
	ErrorTypeContent ErrorType = "content"
	// ErrorTypeAuth represents privileged-operation errors
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Validation Errors

// ErrNullArgument is returned when a required argument is nil or empty
type ErrNullArgument struct {
	*BaseError
	Argument string
}

func NewNullArgument(argument string) *ErrNullArgument {
	return &ErrNullArgument{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("missing required argument: %s", argument), nil),
		Argument:  argument,
	}
}

// ErrInvalidEmailFormat is returned when an email does not match the accepted shape
type ErrInvalidEmailFormat struct {
	*BaseError
	Email string
}

func NewInvalidEmailFormat(email string) *ErrInvalidEmailFormat {
	return &ErrInvalidEmailFormat{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("invalid email format: %s", email), nil),
		Email:     email,
	}
}

// ErrEmptyContent is returned when a comment has no content
var ErrEmptyContent = NewBaseError(ErrorTypeValidation, "content must not be empty", nil)

// User Errors

// ErrDuplicateUsername is returned when a username is already registered
type ErrDuplicateUsername struct {
	*BaseError
	Username string
}

func NewDuplicateUsername(username string) *ErrDuplicateUsername {
	return &ErrDuplicateUsername{
		BaseError: NewBaseError(ErrorTypeUser, fmt.Sprintf("username already exists: %s", username), nil),
		Username:  username,
	}
}

// ErrDuplicateEmail is returned when an email is already registered
type ErrDuplicateEmail struct {
	*BaseError
	Email string
}

func NewDuplicateEmail(email string) *ErrDuplicateEmail {
	return &ErrDuplicateEmail{
		BaseError: NewBaseError(ErrorTypeUser, fmt.Sprintf("email already registered: %s", email), nil),
		Email:     email,
	}
}

// ErrUserNotFound is returned when a user is absent from the roster
type ErrUserNotFound struct {
	*BaseError
	Username string
}

func NewUserNotFound(username string) *ErrUserNotFound {
	return &ErrUserNotFound{
		BaseError: NewBaseError(ErrorTypeUser, fmt.Sprintf("user not found: %s", username), nil),
		Username:  username,
	}
}

// Follow Errors

// ErrSelfFollow is returned when a user tries to follow themselves
type ErrSelfFollow struct {
	*BaseError
	Username string
}

func NewSelfFollow(username string) *ErrSelfFollow {
	return &ErrSelfFollow{
		BaseError: NewBaseError(ErrorTypeFollow, "cannot follow yourself", nil),
		Username:  username,
	}
}

// ErrAlreadyFollowing is returned when the follow edge already exists
type ErrAlreadyFollowing struct {
	*BaseError
	Follower string
	Followee string
}

func NewAlreadyFollowing(follower, followee string) *ErrAlreadyFollowing {
	return &ErrAlreadyFollowing{
		BaseError: NewBaseError(ErrorTypeFollow, fmt.Sprintf("%s is already following %s", follower, followee), nil),
		Follower:  follower,
		Followee:  followee,
	}
}

// ErrNotFollowing is returned when unfollowing without an existing edge
type ErrNotFollowing struct {
	*BaseError
	Follower string
	Followee string
}

func NewNotFollowing(follower, followee string) *ErrNotFollowing {
	return &ErrNotFollowing{
		BaseError: NewBaseError(ErrorTypeFollow, fmt.Sprintf("%s is not following %s", follower, followee), nil),
		Follower:  follower,
		Followee:  followee,
	}
}

// ErrNotAFollower is returned when removing a follower that never followed
type ErrNotAFollower struct {
	*BaseError
	Follower string
	Followee string
}

func NewNotAFollower(follower, followee string) *ErrNotAFollower {
	return &ErrNotAFollower{
		BaseError: NewBaseError(ErrorTypeFollow, fmt.Sprintf("%s is not a follower of %s", follower, followee), nil),
		Follower:  follower,
		Followee:  followee,
	}
}

// Content Errors

// ErrPostNotFound is returned when a post is absent from its author's sequence
type ErrPostNotFound struct {
	*BaseError
	Author string
}

func NewPostNotFound(author string) *ErrPostNotFound {
	return &ErrPostNotFound{
		BaseError: NewBaseError(ErrorTypeContent, fmt.Sprintf("post not found for author: %s", author), nil),
		Author:    author,
	}
}

// Auth Errors

// ErrForbidden is returned when a non-admin invokes a privileged operation
type ErrForbidden struct {
	*BaseError
	Username string
	Action   string
}

func NewForbidden(username, action string) *ErrForbidden {
	return &ErrForbidden{
		BaseError: NewBaseError(ErrorTypeAuth, fmt.Sprintf("%s is not allowed to %s", username, action), nil),
		Username:  username,
		Action:    action,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if baseErr, ok := err.(*BaseError); ok {
		return baseErr.Type == errType
	}
	// Check wrapped errors
	if baseErr, ok := err.(interface{ Unwrap() error }); ok {
		return IsErrorType(baseErr.Unwrap(), errType)
	}
	return false
}

// IsNotFound reports whether the error is a user or post lookup failure
func IsNotFound(err error) bool {
	switch err.(type) {
	case *ErrUserNotFound, *ErrPostNotFound:
		return true
	}
	return false
}
