package services

import (
	"context"

	"lostlink/internal/errs"
	"lostlink/internal/models"
	"lostlink/internal/store"
)

// Counters is the single place denormalized counters are mutated, so the
// invariant (user counters == post counts by status, post commentCount ==
// comment count) has one owner. All updates go through the store's atomic
// increment operations.
type Counters struct {
	store store.Store
}

func NewCounters(s store.Store) *Counters {
	return &Counters{store: s}
}

// PostCreated bumps the owner's postCount and the status bucket of the new
// post (always unresolved at creation).
func (c *Counters) PostCreated(ctx context.Context, userID uint) error {
	return c.store.AddUserCounters(ctx, userID, 1, 0, 1)
}

// PostDeleted decrements postCount and exactly one of resolvedCount or
// unresolvedCount, branched on the post's status at deletion time.
func (c *Counters) PostDeleted(ctx context.Context, userID uint, status string) error {
	if status == models.StatusResolved {
		return c.store.AddUserCounters(ctx, userID, -1, -1, 0)
	}
	return c.store.AddUserCounters(ctx, userID, -1, 0, -1)
}

// PostStatusChanged moves one post between the resolved and unresolved
// buckets when an edit flips its status.
func (c *Counters) PostStatusChanged(ctx context.Context, userID uint, oldStatus, newStatus string) error {
	if newStatus != models.StatusResolved && newStatus != models.StatusUnresolved {
		return errs.ErrInvalid
	}
	if oldStatus == newStatus {
		return nil
	}
	if newStatus == models.StatusResolved {
		return c.store.AddUserCounters(ctx, userID, 0, 1, -1)
	}
	return c.store.AddUserCounters(ctx, userID, 0, -1, 1)
}

// CommentAdded bumps the parent post's commentCount.
func (c *Counters) CommentAdded(ctx context.Context, postID uint) error {
	return c.store.AddPostCommentCount(ctx, postID, 1)
}

// CommentRemoved decrements the parent post's commentCount by n.
func (c *Counters) CommentRemoved(ctx context.Context, postID uint, n int) error {
	return c.store.AddPostCommentCount(ctx, postID, -n)
}
