package main

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"socialgraph/backend/internal/graph"
	apperrors "socialgraph/backend/pkg/errors"
)

// service exposes the graph store over HTTP. Every store operation is one
// critical section under the mutex, so an observer can never see a follow
// edge present on only one side.
type service struct {
	store *graph.Store
	log   *zap.Logger
	mu    sync.RWMutex
}

func setupRouter(store *graph.Store, log *zap.Logger) *gin.Engine {
	svc := &service{store: store, log: log}

	router := gin.New()
	router.Use(requestID())
	router.Use(ginLogger(log))
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/users", svc.addUser)
		api.GET("/users/:username", svc.getUser)
		api.GET("/users/:username/connections", svc.getConnections)
		api.POST("/users/:username/follow", svc.follow)
		api.POST("/users/:username/unfollow", svc.unfollow)
		api.POST("/users/:username/followers/remove", svc.removeFollower)
		api.POST("/users/:username/posts", svc.addPost)
		api.POST("/users/:username/posts/:index/comments", svc.addComment)
		api.DELETE("/users/:username", svc.deleteUser)
		api.DELETE("/users/:username/posts/:index", svc.deletePost)
		api.GET("/report", svc.report)
	}

	return router
}

// statusFor maps core error kinds onto HTTP status codes.
func statusFor(err error) int {
	if apperrors.IsNotFound(err) {
		return http.StatusNotFound
	}
	switch err.(type) {
	case *apperrors.ErrForbidden:
		return http.StatusForbidden
	case *apperrors.ErrNullArgument, *apperrors.ErrInvalidEmailFormat:
		return http.StatusBadRequest
	case *apperrors.ErrDuplicateUsername, *apperrors.ErrDuplicateEmail,
		*apperrors.ErrSelfFollow, *apperrors.ErrAlreadyFollowing,
		*apperrors.ErrNotFollowing, *apperrors.ErrNotAFollower:
		return http.StatusConflict
	}
	if err == apperrors.ErrEmptyContent {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (s *service) renderError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// resolve looks up a user under the read lock, answering 404 on a miss.
func (s *service) resolve(c *gin.Context, username string) *graph.User {
	s.mu.RLock()
	user := s.store.FindByUsername(username)
	s.mu.RUnlock()
	if user == nil {
		s.renderError(c, apperrors.NewUserNotFound(username))
	}
	return user
}

func (s *service) addUser(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := graph.RoleRegular
	if req.Role == string(graph.RoleAdmin) {
		role = graph.RoleAdmin
	}

	s.mu.Lock()
	user, err := s.store.AddUser(req.Username, req.Email, role)
	s.mu.Unlock()
	if err != nil {
		s.renderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (s *service) getUser(c *gin.Context) {
	user := s.resolve(c, c.Param("username"))
	if user == nil {
		return
	}

	s.mu.RLock()
	detail := s.store.UserInfo(user)
	followers := len(user.Followers)
	following := len(user.Following)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"username":  user.Username,
		"email":     user.Email,
		"role":      user.Role,
		"followers": followers,
		"following": following,
		"detail":    detail,
	})
}

func (s *service) getConnections(c *gin.Context) {
	user := s.resolve(c, c.Param("username"))
	if user == nil {
		return
	}

	s.mu.RLock()
	followers := s.store.Followers(user)
	following := s.store.FollowingOf(user)
	s.mu.RUnlock()

	c.JSON(http.StatusOK, gin.H{
		"followers": followers,
		"following": following,
	})
}

// edgeRequest names the other endpoint of a follow mutation.
type edgeRequest struct {
	Target string `json:"target" binding:"required"`
}

func (s *service) follow(c *gin.Context) {
	var req edgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	follower := s.resolve(c, c.Param("username"))
	if follower == nil {
		return
	}
	followee := s.resolve(c, req.Target)
	if followee == nil {
		return
	}

	s.mu.Lock()
	err := s.store.Follow(follower, followee)
	s.mu.Unlock()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "following"})
}

func (s *service) unfollow(c *gin.Context) {
	var req edgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	follower := s.resolve(c, c.Param("username"))
	if follower == nil {
		return
	}
	followee := s.resolve(c, req.Target)
	if followee == nil {
		return
	}

	s.mu.Lock()
	err := s.store.Unfollow(follower, followee)
	s.mu.Unlock()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "unfollowed"})
}

func (s *service) removeFollower(c *gin.Context) {
	var req struct {
		Follower string `json:"follower" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user := s.resolve(c, c.Param("username"))
	if user == nil {
		return
	}
	follower := s.resolve(c, req.Follower)
	if follower == nil {
		return
	}

	s.mu.Lock()
	err := s.store.RemoveFollower(user, follower)
	s.mu.Unlock()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

func (s *service) addPost(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	author := s.resolve(c, c.Param("username"))
	if author == nil {
		return
	}

	s.mu.Lock()
	post, err := s.store.AddPost(author, req.Content)
	s.mu.Unlock()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"author":  author.Username,
		"content": post.Content,
	})
}

// pickPost resolves the zero-based post index route parameter.
func (s *service) pickPost(c *gin.Context, owner *graph.User) *graph.Post {
	index, err := strconv.Atoi(c.Param("index"))
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err != nil || index < 0 || index >= len(owner.Posts) {
		s.renderError(c, apperrors.NewPostNotFound(owner.Username))
		return nil
	}
	return owner.Posts[index]
}

func (s *service) addComment(c *gin.Context) {
	var req struct {
		Author  string `json:"author" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	owner := s.resolve(c, c.Param("username"))
	if owner == nil {
		return
	}
	author := s.resolve(c, req.Author)
	if author == nil {
		return
	}
	post := s.pickPost(c, owner)
	if post == nil {
		return
	}

	s.mu.Lock()
	comment, err := s.store.AddComment(post, author, req.Content)
	s.mu.Unlock()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"author":  author.Username,
		"content": comment.Content,
	})
}

// actor resolves the X-Actor header for privileged routes. An unknown or
// missing actor gets 403, not 404, to avoid leaking roster contents.
func (s *service) actor(c *gin.Context) *graph.User {
	username := c.GetHeader("X-Actor")
	s.mu.RLock()
	user := s.store.FindByUsername(username)
	s.mu.RUnlock()
	if user == nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "unknown actor"})
	}
	return user
}

func (s *service) deleteUser(c *gin.Context) {
	actor := s.actor(c)
	if actor == nil {
		return
	}
	target := s.resolve(c, c.Param("username"))
	if target == nil {
		return
	}

	s.mu.Lock()
	err := s.store.DeleteUser(actor, target)
	s.mu.Unlock()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *service) deletePost(c *gin.Context) {
	actor := s.actor(c)
	if actor == nil {
		return
	}
	owner := s.resolve(c, c.Param("username"))
	if owner == nil {
		return
	}
	post := s.pickPost(c, owner)
	if post == nil {
		return
	}

	s.mu.Lock()
	err := s.store.DeletePost(actor, owner, post)
	s.mu.Unlock()
	if err != nil {
		s.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (s *service) report(c *gin.Context) {
	s.mu.RLock()
	report := s.store.Report()
	s.mu.RUnlock()
	c.JSON(http.StatusOK, gin.H{"report": report})
}

// requestID tags every request with a unique id for log correlation.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

// corsMiddleware allows browser clients to reach the API
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, X-Actor, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

// ginLogger is a custom logger middleware for Gin
func ginLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		raw := c.Request.URL.RawQuery

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		log.Info("HTTP Request",
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Duration("latency", latency),
			zap.String("request_id", c.GetString("request_id")),
			zap.String("ip", c.ClientIP()),
		)
	}
}
