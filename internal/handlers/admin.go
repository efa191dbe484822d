package handlers

import (
	"net/http"
	"time"

	"lostlink/internal/auth"
	"lostlink/internal/models"
	"lostlink/internal/services"
	"lostlink/internal/store"
	"lostlink/internal/utils"

	"github.com/gin-gonic/gin"
)

const statsCacheKey = "admin:stats"

type AdminHandler struct {
	store   store.Store
	cascade *services.Cascade
	cache   *utils.Cache
}

func NewAdminHandler(s store.Store, cascade *services.Cascade) *AdminHandler {
	cache, err := utils.NewCache(8)
	if err != nil {
		// lru.New fails only on a non-positive size.
		panic(err)
	}
	return &AdminHandler{store: s, cascade: cascade, cache: cache}
}

// ensureAdmin rejects callers that are not verified admins.
func (h *AdminHandler) ensureAdmin(c *gin.Context) (*models.User, bool) {
	user, _ := currentUser(c)
	if err := auth.RequireAdmin(user); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admin access required"})
		return nil, false
	}
	return user, true
}

func (h *AdminHandler) Users(c *gin.Context) {
	if _, ok := h.ensureAdmin(c); !ok {
		return
	}
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		fail(c, err, "")
		return
	}
	c.JSON(http.StatusOK, users)
}

// Stats returns platform-wide aggregates, cached briefly so a dashboard
// polling this route does not hammer the store.
func (h *AdminHandler) Stats(c *gin.Context) {
	if _, ok := h.ensureAdmin(c); !ok {
		return
	}

	if cached := h.cache.Get(statsCacheKey); cached != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	ctx := c.Request.Context()
	users, err := h.store.CountUsers(ctx)
	if err != nil {
		fail(c, err, "")
		return
	}
	totalPosts, err := h.store.CountPosts(ctx)
	if err != nil {
		fail(c, err, "")
		return
	}
	resolvedPosts, err := h.store.CountPostsByStatus(ctx, models.StatusResolved)
	if err != nil {
		fail(c, err, "")
		return
	}
	unresolvedPosts, err := h.store.CountPostsByStatus(ctx, models.StatusUnresolved)
	if err != nil {
		fail(c, err, "")
		return
	}
	totalComments, err := h.store.CountComments(ctx)
	if err != nil {
		fail(c, err, "")
		return
	}

	stats := gin.H{
		"users":           users,
		"totalPosts":      totalPosts,
		"resolvedPosts":   resolvedPosts,
		"unresolvedPosts": unresolvedPosts,
		"totalComments":   totalComments,
	}
	h.cache.Set(statsCacheKey, stats, 30*time.Second)

	c.JSON(http.StatusOK, stats)
}

// DeleteUser removes any account except the admin's own.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	admin, ok := h.ensureAdmin(c)
	if !ok {
		return
	}

	target, err := h.store.UserByID(c.Request.Context(), utils.StringToUint(c.Param("id")))
	if err != nil {
		fail(c, err, "User not found")
		return
	}
	if target.ID == admin.ID {
		c.JSON(http.StatusForbidden, gin.H{"message": "Admins cannot delete their own account"})
		return
	}

	if err := h.cascade.DeleteUser(c.Request.Context(), target, false); err != nil {
		fail(c, err, "User not found")
		return
	}
	h.cache.Delete(statsCacheKey)

	c.JSON(http.StatusOK, gin.H{"message": "User and all associated content deleted successfully"})
}

// Cleanup wipes all posts and comments platform-wide. Users and their
// notifications survive.
func (h *AdminHandler) Cleanup(c *gin.Context) {
	if _, ok := h.ensureAdmin(c); !ok {
		return
	}

	if err := h.cascade.Cleanup(c.Request.Context()); err != nil {
		fail(c, err, "")
		return
	}
	h.cache.Delete(statsCacheKey)

	c.JSON(http.StatusOK, gin.H{"message": "All posts and comments deleted successfully"})
}
