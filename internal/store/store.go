// Package store defines the document-store collaborator contract. Services
// and handlers receive a Store by injection so tests can substitute the
// in-memory implementation for the Postgres one.
package store

import (
	"context"

	"lostlink/internal/models"
)

// Store is the persistence surface for the four record collections. Counter
// mutations (AddUserCounters, AddPostCommentCount, IncrementPostViews) must
// be atomic per record so parallel updates cannot lose increments.
//
// Delete operations are idempotent: deleting an absent record is a no-op,
// not an error.
type Store interface {
	// Users
	CreateUser(ctx context.Context, u *models.User) error
	UserByID(ctx context.Context, id uint) (*models.User, error)
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByStudentName(ctx context.Context, name string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	// SaveUser writes every field except the counter columns; those move
	// only through AddUserCounters, so a read-modify-write save cannot
	// erase an increment interleaved between the read and the write.
	SaveUser(ctx context.Context, u *models.User) error
	AddUserCounters(ctx context.Context, id uint, post, resolved, unresolved int) error
	DeleteUser(ctx context.Context, id uint) error
	CountUsers(ctx context.Context) (int64, error)

	// Posts
	CreatePost(ctx context.Context, p *models.Post) error
	PostByID(ctx context.Context, id uint) (*models.Post, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	ListPostsByUser(ctx context.Context, userID uint) ([]models.Post, error)
	// SavePost writes every field except views and commentCount; those move
	// only through IncrementPostViews and AddPostCommentCount.
	SavePost(ctx context.Context, p *models.Post) error
	DeletePost(ctx context.Context, id uint) error
	DeletePostsByUser(ctx context.Context, userID uint) error
	DeleteAllPosts(ctx context.Context) error
	IncrementPostViews(ctx context.Context, id uint) error
	AddPostCommentCount(ctx context.Context, id uint, delta int) error
	CountPosts(ctx context.Context) (int64, error)
	CountPostsByStatus(ctx context.Context, status string) (int64, error)
	CountPostsByUser(ctx context.Context, userID uint) (int64, error)
	CountPostsByUserAndStatus(ctx context.Context, userID uint, status string) (int64, error)

	// Comments
	CreateComment(ctx context.Context, c *models.Comment) error
	CommentByID(ctx context.Context, id uint) (*models.Comment, error)
	ListCommentsByPost(ctx context.Context, postID uint) ([]models.Comment, error)
	DeleteComment(ctx context.Context, id uint) error
	DeleteCommentsByPost(ctx context.Context, postID uint) error
	DeleteCommentsByUser(ctx context.Context, userID uint) error
	DeleteAllComments(ctx context.Context) error
	// CommentCountsByUser returns, per post, how many comments the user has
	// left on it. Feeds the exact-count decrement in the self-delete cascade.
	CommentCountsByUser(ctx context.Context, userID uint) (map[uint]int, error)
	CountComments(ctx context.Context) (int64, error)
	CountCommentsByUser(ctx context.Context, userID uint) (int64, error)

	// Notifications
	CreateNotification(ctx context.Context, n *models.Notification) error
	NotificationByID(ctx context.Context, id uint) (*models.Notification, error)
	ListNotificationsByUser(ctx context.Context, userID uint) ([]models.Notification, error)
	MarkNotificationViewed(ctx context.Context, id uint) error
	MarkUserNotificationsViewed(ctx context.Context, userID uint) error
	DeleteNotification(ctx context.Context, id uint) error
	DeleteNotificationsByPost(ctx context.Context, postID uint) error
}
