package services

import (
	"context"
	"fmt"

	"lostlink/internal/models"
	"lostlink/internal/store"
)

// Notifier creates in-app notifications as side effects of interactions.
// Delivery transport (email, push) is out of scope.
type Notifier struct {
	store store.Store
}

func NewNotifier(s store.Store) *Notifier {
	return &Notifier{store: s}
}

// CommentAdded notifies the post owner about a new comment. Commenting on
// your own post creates no notification.
func (n *Notifier) CommentAdded(ctx context.Context, post *models.Post, commenter *models.User) error {
	if post.UserID == commenter.ID {
		return nil
	}
	notification := models.Notification{
		UserID:  post.UserID,
		PostID:  post.ID,
		Kind:    models.NotificationKindComment,
		Message: fmt.Sprintf("%s commented on your post \"%s\"", commenter.StudentName, post.Title),
	}
	return n.store.CreateNotification(ctx, &notification)
}
