package handlers

import (
	"net/http"

	"lostlink/internal/media"
	"lostlink/internal/models"
	"lostlink/internal/services"
	"lostlink/internal/store"
	"lostlink/internal/utils"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	store   store.Store
	media   media.Store
	cascade *services.Cascade
}

func NewUserHandler(s store.Store, m media.Store, cascade *services.Cascade) *UserHandler {
	return &UserHandler{store: s, media: m, cascade: cascade}
}

// Stats returns live per-caller counts, computed from the collections
// rather than the denormalized counters.
func (h *UserHandler) Stats(c *gin.Context) {
	user, _ := currentUser(c)
	ctx := c.Request.Context()

	totalPosts, err := h.store.CountPostsByUser(ctx, user.ID)
	if err != nil {
		fail(c, err, "")
		return
	}
	resolvedPosts, err := h.store.CountPostsByUserAndStatus(ctx, user.ID, models.StatusResolved)
	if err != nil {
		fail(c, err, "")
		return
	}
	unresolvedPosts, err := h.store.CountPostsByUserAndStatus(ctx, user.ID, models.StatusUnresolved)
	if err != nil {
		fail(c, err, "")
		return
	}
	totalComments, err := h.store.CountCommentsByUser(ctx, user.ID)
	if err != nil {
		fail(c, err, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalPosts":      totalPosts,
		"resolvedPosts":   resolvedPosts,
		"unresolvedPosts": unresolvedPosts,
		"totalComments":   totalComments,
	})
}

func (h *UserHandler) Get(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))
	user, err := h.store.UserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update edits a profile. Self or admin only. A new profile picture
// replaces the old one, which is deleted from the media store.
func (h *UserHandler) Update(c *gin.Context) {
	actor, _ := currentUser(c)
	id := utils.StringToUint(c.Param("id"))

	if actor.ID != id && !actor.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Unauthorized to update this user"})
		return
	}

	user, err := h.store.UserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "User not found")
		return
	}

	if name := cleanText(c.PostForm("studentname")); name != "" {
		user.StudentName = name
	}
	if email := c.PostForm("email"); email != "" {
		user.Email = email
	}
	if collegeYear := c.PostForm("college_year"); collegeYear != "" {
		user.CollegeYear = collegeYear
	}
	if department := c.PostForm("department"); department != "" {
		user.Department = department
	}

	if password := c.PostForm("password"); password != "" {
		hash, err := utils.HashPassword(password)
		if err != nil {
			fail(c, err, "")
			return
		}
		user.Password = hash
	}

	if header, err := c.FormFile("profilePic"); err == nil {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error reading uploaded file"})
			return
		}
		result, err := h.media.Upload(c.Request.Context(), file, header, "profile-pics")
		file.Close()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error uploading files"})
			return
		}
		h.cascade.DeleteMedia(c.Request.Context(), user.ProfilePic.PublicID)
		user.ProfilePic = models.Image{URL: result.URL, PublicID: result.PublicID}
	}

	if err := h.store.SaveUser(c.Request.Context(), user); err != nil {
		fail(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

// Delete removes an account: self-service or admin. Admins may not delete
// their own account through this path either. The self-service cascade
// variant prunes the user's comments from other posts with exact-count
// decrements.
func (h *UserHandler) Delete(c *gin.Context) {
	actor, _ := currentUser(c)
	id := utils.StringToUint(c.Param("id"))

	target, err := h.store.UserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err, "User not found")
		return
	}

	if actor.IsAdmin && actor.ID == target.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin cannot delete their own account"})
		return
	}
	if !actor.IsAdmin && actor.ID != target.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only delete your own account"})
		return
	}

	if err := h.cascade.DeleteUser(c.Request.Context(), target, true); err != nil {
		fail(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account and all associated content deleted successfully"})
}
