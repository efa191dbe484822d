package handlers

import (
	"net/http"

	"lostlink/internal/auth"
	"lostlink/internal/models"
	"lostlink/internal/services"
	"lostlink/internal/store"
	"lostlink/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	store    store.Store
	counters *services.Counters
	notifier *services.Notifier
}

func NewCommentHandler(s store.Store, counters *services.Counters, notifier *services.Notifier) *CommentHandler {
	return &CommentHandler{store: s, counters: counters, notifier: notifier}
}

type addCommentRequest struct {
	Text string `json:"text"`
}

// Add creates a comment carrying a snapshot of the author at creation time;
// later profile edits do not rewrite historical comments.
func (h *CommentHandler) Add(c *gin.Context) {
	user, _ := currentUser(c)
	postID := utils.StringToUint(c.Param("id"))

	post, err := h.store.PostByID(c.Request.Context(), postID)
	if err != nil {
		fail(c, err, "Post not found")
		return
	}

	var req addCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	text := cleanText(req.Text)
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Comment text is required"})
		return
	}

	comment := models.Comment{
		PostID:         post.ID,
		UserID:         user.ID,
		StudentName:    user.StudentName,
		UserProfilePic: user.ProfilePic,
		IsAdmin:        user.IsAdmin,
		Text:           text,
	}
	if err := h.store.CreateComment(c.Request.Context(), &comment); err != nil {
		fail(c, err, "")
		return
	}
	if err := h.counters.CommentAdded(c.Request.Context(), post.ID); err != nil {
		fail(c, err, "")
		return
	}

	if err := h.notifier.CommentAdded(c.Request.Context(), post, user); err != nil {
		fail(c, err, "")
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) List(c *gin.Context) {
	postID := utils.StringToUint(c.Param("id"))
	comments, err := h.store.ListCommentsByPost(c.Request.Context(), postID)
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Delete removes a comment. Only the author may delete it; there is no
// admin override on this route.
func (h *CommentHandler) Delete(c *gin.Context) {
	user, _ := currentUser(c)
	commentID := utils.StringToUint(c.Param("commentId"))

	comment, err := h.store.CommentByID(c.Request.Context(), commentID)
	if err != nil {
		fail(c, err, "Comment not found")
		return
	}

	if err := auth.RequireOwner(user, comment.UserID); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only delete your own comments"})
		return
	}

	if err := h.store.DeleteComment(c.Request.Context(), comment.ID); err != nil {
		fail(c, err, "")
		return
	}
	if err := h.counters.CommentRemoved(c.Request.Context(), comment.PostID, 1); err != nil {
		fail(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
