package services

import (
	"context"
	"log/slog"

	"lostlink/internal/media"
	"lostlink/internal/models"
	"lostlink/internal/store"
)

// Cascade orchestrates multi-collection deletions: removing a parent entity
// must remove all dependent records and their hosted media, in a fixed step
// order. Steps are individually idempotent (delete-if-absent is a no-op),
// so a cascade interrupted mid-sequence can be re-invoked. Media store
// failures are logged and never abort the cascade.
type Cascade struct {
	store    store.Store
	media    media.Store
	counters *Counters
	logger   *slog.Logger
}

func NewCascade(s store.Store, m media.Store, counters *Counters, logger *slog.Logger) *Cascade {
	return &Cascade{store: s, media: m, counters: counters, logger: logger}
}

// DeleteMedia is the best-effort media cleanup used by every cascade step
// and by the post-update image merge.
func (c *Cascade) DeleteMedia(ctx context.Context, publicID string) {
	if publicID == "" {
		return
	}
	if err := c.media.Delete(ctx, publicID); err != nil {
		c.logger.Warn("media delete failed, object orphaned", "public_id", publicID, "err", err)
	}
}

// DeleteUser removes a user and everything that depends on them: profile
// picture, posts (with images, comments, and notifications), and comments
// the user left elsewhere. When pruneCommentCounters is set (self-service
// path), posts the user commented on have their commentCount decremented by
// the exact number of matching comments before those comments are removed.
func (c *Cascade) DeleteUser(ctx context.Context, target *models.User, pruneCommentCounters bool) error {
	c.DeleteMedia(ctx, target.ProfilePic.PublicID)

	if pruneCommentCounters {
		counts, err := c.store.CommentCountsByUser(ctx, target.ID)
		if err != nil {
			return err
		}
		for postID, n := range counts {
			if err := c.counters.CommentRemoved(ctx, postID, n); err != nil {
				return err
			}
		}
	}

	posts, err := c.store.ListPostsByUser(ctx, target.ID)
	if err != nil {
		return err
	}
	for _, post := range posts {
		for _, image := range post.Images {
			c.DeleteMedia(ctx, image.PublicID)
		}
		if err := c.store.DeleteCommentsByPost(ctx, post.ID); err != nil {
			return err
		}
		if err := c.store.DeleteNotificationsByPost(ctx, post.ID); err != nil {
			return err
		}
	}

	if err := c.store.DeletePostsByUser(ctx, target.ID); err != nil {
		return err
	}
	// Covers comments left on other users' posts.
	if err := c.store.DeleteCommentsByUser(ctx, target.ID); err != nil {
		return err
	}
	return c.store.DeleteUser(ctx, target.ID)
}

// DeletePost removes a post, its hosted images, and the comments and
// notifications keyed to it, keeping the owner's counters consistent.
func (c *Cascade) DeletePost(ctx context.Context, post *models.Post) error {
	if err := c.counters.PostDeleted(ctx, post.UserID, post.Status); err != nil {
		return err
	}

	for _, image := range post.Images {
		c.DeleteMedia(ctx, image.PublicID)
	}

	if err := c.store.DeleteCommentsByPost(ctx, post.ID); err != nil {
		return err
	}
	if err := c.store.DeleteNotificationsByPost(ctx, post.ID); err != nil {
		return err
	}
	return c.store.DeletePost(ctx, post.ID)
}

// Cleanup deletes every post and every comment system-wide, after
// best-effort image cleanup. Users and user-keyed notifications are left
// untouched.
func (c *Cascade) Cleanup(ctx context.Context) error {
	posts, err := c.store.ListPosts(ctx)
	if err != nil {
		return err
	}
	for _, post := range posts {
		for _, image := range post.Images {
			c.DeleteMedia(ctx, image.PublicID)
		}
	}

	if err := c.store.DeleteAllComments(ctx); err != nil {
		return err
	}
	return c.store.DeleteAllPosts(ctx)
}
