// Package gormstore is the Postgres-backed Store implementation.
package gormstore

import (
	"context"
	"errors"

	"lostlink/internal/errs"
	"lostlink/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

// Open connects to Postgres and migrates the four collections.
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Notification{},
	); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return err
}

// Users

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).Create(u).Error
}

func (s *Store) UserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) UserByStudentName(ctx context.Context, name string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("student_name = ?", name).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

// SaveUser persists profile fields. Counter columns are omitted so a
// read-modify-write save cannot overwrite increments applied concurrently
// through AddUserCounters.
func (s *Store) SaveUser(ctx context.Context, u *models.User) error {
	return s.db.WithContext(ctx).
		Omit("post_count", "resolved_count", "unresolved_count").
		Save(u).Error
}

// AddUserCounters applies the deltas as a single atomic column update so
// concurrent cascades cannot lose increments.
func (s *Store) AddUserCounters(ctx context.Context, id uint, post, resolved, unresolved int) error {
	return s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"post_count":       gorm.Expr("post_count + ?", post),
			"resolved_count":   gorm.Expr("resolved_count + ?", resolved),
			"unresolved_count": gorm.Expr("unresolved_count + ?", unresolved),
		}).Error
}

func (s *Store) DeleteUser(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&models.User{}, id).Error
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

// Posts

func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	return s.db.WithContext(ctx).Create(p).Error
}

func (s *Store) PostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&posts).Error
	return posts, err
}

func (s *Store) ListPostsByUser(ctx context.Context, userID uint) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&posts).Error
	return posts, err
}

// SavePost persists edited fields. Views and comment_count are omitted so
// a save cannot overwrite increments applied concurrently through
// IncrementPostViews and AddPostCommentCount.
func (s *Store) SavePost(ctx context.Context, p *models.Post) error {
	return s.db.WithContext(ctx).
		Omit("views", "comment_count").
		Save(p).Error
}

func (s *Store) DeletePost(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Unscoped().Delete(&models.Post{}, id).Error
}

func (s *Store) DeletePostsByUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("user_id = ?", userID).
		Delete(&models.Post{}).Error
}

func (s *Store) DeleteAllPosts(ctx context.Context) error {
	return s.db.WithContext(ctx).Unscoped().
		Where("1 = 1").
		Delete(&models.Post{}).Error
}

func (s *Store) IncrementPostViews(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

func (s *Store) AddPostCommentCount(ctx context.Context, id uint, delta int) error {
	return s.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("comment_count", gorm.Expr("comment_count + ?", delta)).Error
}

func (s *Store) CountPosts(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Post{}).Count(&count).Error
	return count, err
}

func (s *Store) CountPostsByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

func (s *Store) CountPostsByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *Store) CountPostsByUserAndStatus(ctx context.Context, userID uint, status string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("user_id = ? AND status = ?", userID, status).Count(&count).Error
	return count, err
}

// Comments

func (s *Store) CreateComment(ctx context.Context, c *models.Comment) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *Store) CommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (s *Store) ListCommentsByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	return comments, err
}

func (s *Store) DeleteComment(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Comment{}, id).Error
}

func (s *Store) DeleteCommentsByPost(ctx context.Context, postID uint) error {
	return s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.Comment{}).Error
}

func (s *Store) DeleteCommentsByUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Comment{}).Error
}

func (s *Store) DeleteAllComments(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.Comment{}).Error
}

func (s *Store) CommentCountsByUser(ctx context.Context, userID uint) (map[uint]int, error) {
	type countRow struct {
		PostID uint
		Count  int
	}
	var rows []countRow
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.PostID] = r.Count
	}
	return counts, nil
}

func (s *Store) CountComments(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Comment{}).Count(&count).Error
	return count, err
}

func (s *Store) CountCommentsByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// Notifications

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *Store) NotificationByID(ctx context.Context, id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.WithContext(ctx).First(&notification, id).Error; err != nil {
		return nil, translate(err)
	}
	return &notification, nil
}

func (s *Store) ListNotificationsByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	var notifications []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&notifications).Error
	return notifications, err
}

func (s *Store) MarkNotificationViewed(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ?", id).
		Update("viewed", true).Error
}

func (s *Store) MarkUserNotificationsViewed(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND viewed = ?", userID, false).
		Update("viewed", true).Error
}

func (s *Store) DeleteNotification(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Notification{}, id).Error
}

func (s *Store) DeleteNotificationsByPost(ctx context.Context, postID uint) error {
	return s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.Notification{}).Error
}
