// Package memory is a mutex-guarded in-memory Store used by tests and as a
// dev fallback when no DATABASE_URL is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"lostlink/internal/errs"
	"lostlink/internal/models"
)

type Store struct {
	mu sync.RWMutex

	users         map[uint]models.User
	posts         map[uint]models.Post
	comments      map[uint]models.Comment
	notifications map[uint]models.Notification

	nextUserID         uint
	nextPostID         uint
	nextCommentID      uint
	nextNotificationID uint
}

func New() *Store {
	return &Store{
		users:         make(map[uint]models.User),
		posts:         make(map[uint]models.Post),
		comments:      make(map[uint]models.Comment),
		notifications: make(map[uint]models.Notification),
	}
}

// Users

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email || existing.StudentName == u.StudentName {
			return errs.ErrConflict
		}
	}
	s.nextUserID++
	u.ID = s.nextUserID
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	s.users[u.ID] = *u
	return nil
}

func (s *Store) UserByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &u, nil
}

func (s *Store) UserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s *Store) UserByStudentName(_ context.Context, name string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.StudentName == name {
			u := u
			return &u, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID > users[j].ID })
	return users, nil
}

func (s *Store) SaveUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.users[u.ID]
	if !ok {
		return errs.ErrNotFound
	}
	// Counter columns move only through AddUserCounters; a save carries
	// whatever the current record holds, not the caller's stale read.
	u.PostCount = cur.PostCount
	u.ResolvedCount = cur.ResolvedCount
	u.UnresolvedCount = cur.UnresolvedCount
	u.UpdatedAt = time.Now()
	s.users[u.ID] = *u
	return nil
}

func (s *Store) AddUserCounters(_ context.Context, id uint, post, resolved, unresolved int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	u.PostCount += post
	u.ResolvedCount += resolved
	u.UnresolvedCount += unresolved
	s.users[id] = u
	return nil
}

func (s *Store) DeleteUser(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
	return nil
}

func (s *Store) CountUsers(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}

// Posts

func (s *Store) CreatePost(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextPostID++
	p.ID = s.nextPostID
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.posts[p.ID] = *p
	return nil
}

func (s *Store) PostByID(_ context.Context, id uint) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &p, nil
}

func (s *Store) ListPosts(_ context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	sortPostsNewestFirst(posts)
	return posts, nil
}

func (s *Store) ListPostsByUser(_ context.Context, userID uint) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var posts []models.Post
	for _, p := range s.posts {
		if p.UserID == userID {
			posts = append(posts, p)
		}
	}
	sortPostsNewestFirst(posts)
	return posts, nil
}

func sortPostsNewestFirst(posts []models.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func (s *Store) SavePost(_ context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.posts[p.ID]
	if !ok {
		return errs.ErrNotFound
	}
	// Views and commentCount move only through their increment operations.
	p.Views = cur.Views
	p.CommentCount = cur.CommentCount
	p.UpdatedAt = time.Now()
	s.posts[p.ID] = *p
	return nil
}

func (s *Store) DeletePost(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.posts, id)
	return nil
}

func (s *Store) DeletePostsByUser(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.posts {
		if p.UserID == userID {
			delete(s.posts, id)
		}
	}
	return nil
}

func (s *Store) DeleteAllPosts(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = make(map[uint]models.Post)
	return nil
}

func (s *Store) IncrementPostViews(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil
	}
	p.Views++
	s.posts[id] = p
	return nil
}

func (s *Store) AddPostCommentCount(_ context.Context, id uint, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil
	}
	p.CommentCount += delta
	s.posts[id] = p
	return nil
}

func (s *Store) CountPosts(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.posts)), nil
}

func (s *Store) CountPostsByStatus(_ context.Context, status string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, p := range s.posts {
		if p.Status == status {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountPostsByUser(_ context.Context, userID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, p := range s.posts {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

func (s *Store) CountPostsByUserAndStatus(_ context.Context, userID uint, status string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, p := range s.posts {
		if p.UserID == userID && p.Status == status {
			count++
		}
	}
	return count, nil
}

// Comments

func (s *Store) CreateComment(_ context.Context, c *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCommentID++
	c.ID = s.nextCommentID
	c.CreatedAt = time.Now()
	s.comments[c.ID] = *c
	return nil
}

func (s *Store) CommentByID(_ context.Context, id uint) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &c, nil
}

func (s *Store) ListCommentsByPost(_ context.Context, postID uint) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var comments []models.Comment
	for _, c := range s.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

func (s *Store) DeleteComment(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.comments, id)
	return nil
}

func (s *Store) DeleteCommentsByPost(_ context.Context, postID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
	return nil
}

func (s *Store) DeleteCommentsByUser(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, c := range s.comments {
		if c.UserID == userID {
			delete(s.comments, id)
		}
	}
	return nil
}

func (s *Store) DeleteAllComments(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comments = make(map[uint]models.Comment)
	return nil
}

func (s *Store) CommentCountsByUser(_ context.Context, userID uint) (map[uint]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[uint]int)
	for _, c := range s.comments {
		if c.UserID == userID {
			counts[c.PostID]++
		}
	}
	return counts, nil
}

func (s *Store) CountComments(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.comments)), nil
}

func (s *Store) CountCommentsByUser(_ context.Context, userID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, c := range s.comments {
		if c.UserID == userID {
			count++
		}
	}
	return count, nil
}

// Notifications

func (s *Store) CreateNotification(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextNotificationID++
	n.ID = s.nextNotificationID
	n.CreatedAt = time.Now()
	s.notifications[n.ID] = *n
	return nil
}

func (s *Store) NotificationByID(_ context.Context, id uint) (*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.notifications[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	return &n, nil
}

func (s *Store) ListNotificationsByUser(_ context.Context, userID uint) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var notifications []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			notifications = append(notifications, n)
		}
	}
	sort.Slice(notifications, func(i, j int) bool { return notifications[i].ID > notifications[j].ID })
	return notifications, nil
}

func (s *Store) MarkNotificationViewed(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok {
		return nil
	}
	n.Viewed = true
	s.notifications[id] = n
	return nil
}

func (s *Store) MarkUserNotificationsViewed(_ context.Context, userID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.notifications {
		if n.UserID == userID && !n.Viewed {
			n.Viewed = true
			s.notifications[id] = n
		}
	}
	return nil
}

func (s *Store) DeleteNotification(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.notifications, id)
	return nil
}

func (s *Store) DeleteNotificationsByPost(_ context.Context, postID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, n := range s.notifications {
		if n.PostID == postID {
			delete(s.notifications, id)
		}
	}
	return nil
}
