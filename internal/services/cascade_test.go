package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"lostlink/internal/errs"
	"lostlink/internal/media"
	"lostlink/internal/models"
	"lostlink/internal/store/memory"
)

func newCascadeFixture() (*memory.Store, *media.Memory, *Cascade) {
	s := memory.New()
	m := media.NewMemory()
	counters := NewCounters(s)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return s, m, NewCascade(s, m, counters, logger)
}

func seedUser(t *testing.T, s *memory.Store, name string) *models.User {
	t.Helper()
	u := &models.User{StudentName: name, Email: name + "@campus.edu", Password: "x"}
	if err := s.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedPost(t *testing.T, s *memory.Store, owner *models.User, status string, images ...models.Image) *models.Post {
	t.Helper()
	p := &models.Post{
		UserID:      owner.ID,
		StudentName: owner.StudentName,
		Title:       "lost wallet",
		Status:      status,
		Images:      images,
	}
	if err := s.CreatePost(context.Background(), p); err != nil {
		t.Fatalf("seed post: %v", err)
	}
	return p
}

func TestDeletePostCascades(t *testing.T) {
	ctx := context.Background()
	s, m, cascade := newCascadeFixture()

	owner := seedUser(t, s, "owner")
	commenter := seedUser(t, s, "commenter")

	img := models.Image{URL: "memory://posts/1", PublicID: "posts/1"}
	m.Objects[img.PublicID] = "wallet.jpg"
	post := seedPost(t, s, owner, models.StatusResolved, img)
	s.AddUserCounters(ctx, owner.ID, 1, 1, 0)

	comment := &models.Comment{PostID: post.ID, UserID: commenter.ID, Text: "seen it"}
	if err := s.CreateComment(ctx, comment); err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	notification := &models.Notification{UserID: owner.ID, PostID: post.ID, Kind: models.NotificationKindComment}
	if err := s.CreateNotification(ctx, notification); err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	if err := cascade.DeletePost(ctx, post); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}

	if _, err := s.PostByID(ctx, post.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Post should be gone, got %v", err)
	}
	if _, err := s.CommentByID(ctx, comment.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Comment should be gone, got %v", err)
	}
	if _, err := s.NotificationByID(ctx, notification.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Notification should be gone, got %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Expected 0 media objects, got %d", m.Len())
	}

	u, err := s.UserByID(ctx, owner.ID)
	if err != nil {
		t.Fatalf("owner lookup: %v", err)
	}
	if u.PostCount != 0 || u.ResolvedCount != 0 || u.UnresolvedCount != 0 {
		t.Errorf("Counters not restored: %+v", u)
	}
}

func TestDeletePostDecrementsStatusBucket(t *testing.T) {
	ctx := context.Background()
	s, _, cascade := newCascadeFixture()

	owner := seedUser(t, s, "owner")
	resolved := seedPost(t, s, owner, models.StatusResolved)
	unresolved := seedPost(t, s, owner, models.StatusUnresolved)
	s.AddUserCounters(ctx, owner.ID, 2, 1, 1)

	if err := cascade.DeletePost(ctx, resolved); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	u, _ := s.UserByID(ctx, owner.ID)
	if u.PostCount != 1 || u.ResolvedCount != 0 || u.UnresolvedCount != 1 {
		t.Errorf("Resolved delete hit the wrong bucket: %+v", u)
	}

	if err := cascade.DeletePost(ctx, unresolved); err != nil {
		t.Fatalf("DeletePost failed: %v", err)
	}
	u, _ = s.UserByID(ctx, owner.ID)
	if u.PostCount != 0 || u.UnresolvedCount != 0 {
		t.Errorf("Unresolved delete hit the wrong bucket: %+v", u)
	}
}

func TestDeleteUserSelfServicePrunesCommentCounters(t *testing.T) {
	ctx := context.Background()
	s, m, cascade := newCascadeFixture()

	leaver := seedUser(t, s, "leaver")
	stayer := seedUser(t, s, "stayer")

	// The leaver commented twice on the stayer's post.
	stayerPost := seedPost(t, s, stayer, models.StatusUnresolved)
	for i := 0; i < 2; i++ {
		c := &models.Comment{PostID: stayerPost.ID, UserID: leaver.ID, Text: "mine?"}
		if err := s.CreateComment(ctx, c); err != nil {
			t.Fatalf("seed comment: %v", err)
		}
	}
	s.AddPostCommentCount(ctx, stayerPost.ID, 2)

	// The leaver's own post, with an image and a comment from the stayer.
	img := models.Image{URL: "memory://posts/1", PublicID: "posts/1"}
	m.Objects[img.PublicID] = "keys.jpg"
	leaverPost := seedPost(t, s, leaver, models.StatusUnresolved, img)
	stayerComment := &models.Comment{PostID: leaverPost.ID, UserID: stayer.ID, Text: "found them"}
	if err := s.CreateComment(ctx, stayerComment); err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	notification := &models.Notification{UserID: leaver.ID, PostID: leaverPost.ID, Kind: models.NotificationKindComment}
	if err := s.CreateNotification(ctx, notification); err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	if err := cascade.DeleteUser(ctx, leaver, true); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, err := s.UserByID(ctx, leaver.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("User should be gone, got %v", err)
	}
	if _, err := s.PostByID(ctx, leaverPost.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Post should be gone, got %v", err)
	}
	if n, _ := s.CountCommentsByUser(ctx, leaver.ID); n != 0 {
		t.Errorf("Expected 0 comments by deleted user, got %d", n)
	}
	if _, err := s.CommentByID(ctx, stayerComment.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Comment on deleted post should be gone, got %v", err)
	}
	if _, err := s.NotificationByID(ctx, notification.ID); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Notification keyed to deleted post should be gone, got %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Expected 0 media objects, got %d", m.Len())
	}

	p, err := s.PostByID(ctx, stayerPost.ID)
	if err != nil {
		t.Fatalf("stayer post lookup: %v", err)
	}
	if p.CommentCount != 0 {
		t.Errorf("Expected pruned commentCount 0, got %d", p.CommentCount)
	}
}

func TestDeleteUserAdminVariantSkipsPruning(t *testing.T) {
	ctx := context.Background()
	s, _, cascade := newCascadeFixture()

	target := seedUser(t, s, "target")
	stayer := seedUser(t, s, "stayer")

	stayerPost := seedPost(t, s, stayer, models.StatusUnresolved)
	c := &models.Comment{PostID: stayerPost.ID, UserID: target.ID, Text: "hm"}
	if err := s.CreateComment(ctx, c); err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	s.AddPostCommentCount(ctx, stayerPost.ID, 1)

	if err := cascade.DeleteUser(ctx, target, false); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	// The comment row is removed but the counter is deliberately left as-is.
	p, _ := s.PostByID(ctx, stayerPost.ID)
	if p.CommentCount != 1 {
		t.Errorf("Admin variant should not prune counters, got %d", p.CommentCount)
	}
}

func TestCleanupLeavesUsersAndNotifications(t *testing.T) {
	ctx := context.Background()
	s, m, cascade := newCascadeFixture()

	owner := seedUser(t, s, "owner")
	img := models.Image{URL: "memory://posts/1", PublicID: "posts/1"}
	m.Objects[img.PublicID] = "wallet.jpg"
	post := seedPost(t, s, owner, models.StatusUnresolved, img)
	c := &models.Comment{PostID: post.ID, UserID: owner.ID, Text: "bump"}
	if err := s.CreateComment(ctx, c); err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	n := &models.Notification{UserID: owner.ID, PostID: post.ID, Kind: models.NotificationKindSystem}
	if err := s.CreateNotification(ctx, n); err != nil {
		t.Fatalf("seed notification: %v", err)
	}

	if err := cascade.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	if count, _ := s.CountPosts(ctx); count != 0 {
		t.Errorf("Expected 0 posts, got %d", count)
	}
	if count, _ := s.CountComments(ctx); count != 0 {
		t.Errorf("Expected 0 comments, got %d", count)
	}
	if m.Len() != 0 {
		t.Errorf("Expected 0 media objects, got %d", m.Len())
	}
	if _, err := s.UserByID(ctx, owner.ID); err != nil {
		t.Errorf("Users must survive cleanup: %v", err)
	}
	if _, err := s.NotificationByID(ctx, n.ID); err != nil {
		t.Errorf("Notifications must survive cleanup: %v", err)
	}
}

func TestCascadeStepsAreIdempotent(t *testing.T) {
	ctx := context.Background()
	s, _, cascade := newCascadeFixture()

	owner := seedUser(t, s, "owner")
	post := seedPost(t, s, owner, models.StatusUnresolved)
	s.AddUserCounters(ctx, owner.ID, 1, 0, 1)

	if err := cascade.DeletePost(ctx, post); err != nil {
		t.Fatalf("First delete failed: %v", err)
	}
	// Re-running after the post row is gone must not error; the store
	// deletes are delete-if-absent no-ops.
	if err := s.DeletePost(ctx, post.ID); err != nil {
		t.Errorf("Repeated DeletePost errored: %v", err)
	}
	if err := s.DeleteCommentsByPost(ctx, post.ID); err != nil {
		t.Errorf("Repeated DeleteCommentsByPost errored: %v", err)
	}
	if err := s.DeleteNotificationsByPost(ctx, post.ID); err != nil {
		t.Errorf("Repeated DeleteNotificationsByPost errored: %v", err)
	}
}
