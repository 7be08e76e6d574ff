package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/arif404/devconnector/backend/internal/models"
	"github.com/arif404/devconnector/backend/internal/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository // To snapshot name/avatar into posts and comments
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
	}
}

// RegisterPostRoutes registers post-related routes. Reads are public,
// mutations go on the authenticated group.
func (h *PostHandler) RegisterPostRoutes(public, protected *echo.Group) {
	public.GET("/posts", h.GetPosts)
	public.GET("/posts/:postId", h.GetPost)
	protected.POST("/posts", h.CreatePost)
	protected.DELETE("/posts/:postId", h.DeletePost)
	protected.PUT("/posts/like/:postId", h.LikePost)
	protected.PUT("/posts/unlike/:postId", h.UnlikePost)
	protected.POST("/posts/comment/:postId", h.CreateComment)
	protected.DELETE("/posts/comment/:postId/:commentId", h.DeleteComment)
}

// CreatePost creates a new post owned by the authenticated user, with the
// user's name and avatar denormalized into the post document
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID := c.Get("userID").(string) // Set by auth middleware

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return serverError(c, err)
	}

	post := &models.Post{
		User:   userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
	}

	if err := h.postRepository.CreatePost(c.Request().Context(), post); err != nil {
		return serverError(c, err)
	}

	return c.JSON(http.StatusCreated, post)
}

// GetPosts retrieves all posts, newest first
func (h *PostHandler) GetPosts(c echo.Context) error {
	posts, err := h.postRepository.GetAllPosts(c.Request().Context())
	if err != nil {
		return serverError(c, err)
	}

	return c.JSON(http.StatusOK, posts)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	postID := c.Param("postId")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return serverError(c, err)
	}

	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post owned by the authenticated user
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID := c.Get("userID").(string)
	postID := c.Param("postId")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return serverError(c, err)
	}

	if post.User != userID {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authorized")
	}

	if err := h.postRepository.DeletePost(c.Request().Context(), postID); err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return serverError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"msg": "Post deleted!"})
}

// LikePost adds the authenticated user's like to a post. Liking a post
// twice is rejected, so a user appears at most once in the likes array.
func (h *PostHandler) LikePost(c echo.Context) error {
	userID := c.Get("userID").(string)
	postID := c.Param("postId")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return serverError(c, err)
	}

	for _, like := range post.Likes {
		if like.User == userID {
			return echo.NewHTTPError(http.StatusBadRequest, "Post already liked!")
		}
	}

	post.Likes = append([]models.Like{{User: userID}}, post.Likes...)

	if err := h.postRepository.UpdateLikes(c.Request().Context(), postID, post.Likes); err != nil {
		return serverError(c, err)
	}

	return c.JSON(http.StatusOK, post.Likes)
}

// UnlikePost removes the authenticated user's like from a post
func (h *PostHandler) UnlikePost(c echo.Context) error {
	userID := c.Get("userID").(string)
	postID := c.Param("postId")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return serverError(c, err)
	}

	liked := false
	for _, like := range post.Likes {
		if like.User == userID {
			liked = true
			break
		}
	}
	if !liked {
		return echo.NewHTTPError(http.StatusBadRequest, "Post not yet liked!")
	}

	remaining := make([]models.Like, 0, len(post.Likes)-1)
	for _, like := range post.Likes {
		if like.User != userID {
			remaining = append(remaining, like)
		}
	}
	post.Likes = remaining

	if err := h.postRepository.UpdateLikes(c.Request().Context(), postID, post.Likes); err != nil {
		return serverError(c, err)
	}

	return c.JSON(http.StatusOK, post.Likes)
}

// CreateComment adds a comment to a post, snapshotting the commenting
// user's name and avatar into the embedded comment
func (h *PostHandler) CreateComment(c echo.Context) error {
	userID := c.Get("userID").(string)
	postID := c.Param("postId")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userRepository.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return serverError(c, err)
	}

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return serverError(c, err)
	}

	comment := models.Comment{
		ID:     primitive.NewObjectID(),
		User:   userID,
		Text:   req.Text,
		Name:   user.Name,
		Avatar: user.Avatar,
		Date:   time.Now(),
	}

	post.Comments = append([]models.Comment{comment}, post.Comments...)

	if err := h.postRepository.UpdateComments(c.Request().Context(), postID, post.Comments); err != nil {
		return serverError(c, err)
	}

	return c.JSON(http.StatusCreated, post.Comments)
}

// DeleteComment removes a comment from a post. Authorization is checked
// against the post's owner: the owner of a post curates its comment thread.
func (h *PostHandler) DeleteComment(c echo.Context) error {
	userID := c.Get("userID").(string)
	postID := c.Param("postId")
	commentID := c.Param("commentId")

	post, err := h.postRepository.GetPostByID(c.Request().Context(), postID)
	if err != nil {
		if errors.Is(err, repositories.ErrPostNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Post not found")
		}
		return serverError(c, err)
	}

	if post.User != userID {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authorized")
	}

	found := false
	remaining := make([]models.Comment, 0, len(post.Comments))
	for _, comment := range post.Comments {
		if comment.ID.Hex() == commentID {
			found = true
			continue
		}
		remaining = append(remaining, comment)
	}
	if !found {
		return echo.NewHTTPError(http.StatusNotFound, "Comment not found")
	}
	post.Comments = remaining

	if err := h.postRepository.UpdateComments(c.Request().Context(), postID, post.Comments); err != nil {
		return serverError(c, err)
	}

	return c.JSON(http.StatusOK, post.Comments)
}

// serverError logs the underlying failure and returns a generic 500 so
// storage details never leak to the caller
func serverError(c echo.Context, err error) error {
	c.Logger().Error(err)
	return echo.NewHTTPError(http.StatusInternalServerError, "Server error")
}
