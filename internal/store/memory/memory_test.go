package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"lostlink/internal/errs"
	"lostlink/internal/models"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateUser(ctx, &models.User{StudentName: "a", Email: "a@campus.edu"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	err := s.CreateUser(ctx, &models.User{StudentName: "b", Email: "a@campus.edu"})
	if !errors.Is(err, errs.ErrConflict) {
		t.Errorf("Expected ErrConflict, got %v", err)
	}
}

func TestCreateUserRejectsDuplicateStudentName(t *testing.T) {
	s := New()
	ctx := context.Background()

	if err := s.CreateUser(ctx, &models.User{StudentName: "a", Email: "a@campus.edu"}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	err := s.CreateUser(ctx, &models.User{StudentName: "a", Email: "b@campus.edu"})
	if !errors.Is(err, errs.ErrConflict) {
		t.Errorf("Expected ErrConflict, got %v", err)
	}
}

func TestSavePostKeepsInterleavedCounterIncrements(t *testing.T) {
	s := New()
	ctx := context.Background()

	post := &models.Post{UserID: 1, Title: "Lost wallet", Status: models.StatusUnresolved}
	if err := s.CreatePost(ctx, post); err != nil {
		t.Fatalf("CreatePost failed: %v", err)
	}

	// An editor reads the post, then a comment and a view land before the
	// edit is written back.
	read, err := s.PostByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("PostByID failed: %v", err)
	}
	s.AddPostCommentCount(ctx, post.ID, 1)
	s.IncrementPostViews(ctx, post.ID)

	read.Title = "Lost brown wallet"
	if err := s.SavePost(ctx, read); err != nil {
		t.Fatalf("SavePost failed: %v", err)
	}

	got, _ := s.PostByID(ctx, post.ID)
	if got.CommentCount != 1 {
		t.Errorf("Save erased the commentCount increment: got %d, want 1", got.CommentCount)
	}
	if got.Views != 1 {
		t.Errorf("Save erased the views increment: got %d, want 1", got.Views)
	}
	if got.Title != "Lost brown wallet" {
		t.Errorf("Edit lost: got %q", got.Title)
	}
}

func TestSaveUserKeepsInterleavedCounterIncrements(t *testing.T) {
	s := New()
	ctx := context.Background()

	u := &models.User{StudentName: "a", Email: "a@campus.edu"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	read, err := s.UserByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("UserByID failed: %v", err)
	}
	s.AddUserCounters(ctx, u.ID, 1, 0, 1)

	read.Department = "Physics"
	if err := s.SaveUser(ctx, read); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	got, _ := s.UserByID(ctx, u.ID)
	if got.PostCount != 1 || got.UnresolvedCount != 1 {
		t.Errorf("Save erased counter increments: %+v", got)
	}
	if got.Department != "Physics" {
		t.Errorf("Edit lost: got %q", got.Department)
	}
}

func TestListPostsOrder(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.CreatePost(ctx, &models.Post{UserID: 1, Title: "p", Status: models.StatusUnresolved}); err != nil {
			t.Fatalf("CreatePost failed: %v", err)
		}
	}

	posts, err := s.ListPosts(ctx)
	if err != nil {
		t.Fatalf("ListPosts failed: %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("Expected 3 posts, got %d", len(posts))
	}
	for i := 1; i < len(posts); i++ {
		prev, cur := posts[i-1], posts[i]
		if cur.CreatedAt.After(prev.CreatedAt) ||
			(cur.CreatedAt.Equal(prev.CreatedAt) && cur.ID > prev.ID) {
			t.Errorf("Posts not newest first at index %d", i)
		}
	}
}

func TestAddUserCountersIsAbsoluteDelta(t *testing.T) {
	s := New()
	ctx := context.Background()

	u := &models.User{StudentName: "a", Email: "a@campus.edu"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	s.AddUserCounters(ctx, u.ID, 1, 0, 1)
	s.AddUserCounters(ctx, u.ID, 1, 1, 0)
	s.AddUserCounters(ctx, u.ID, -1, 0, -1)

	got, _ := s.UserByID(ctx, u.ID)
	if got.PostCount != 1 || got.ResolvedCount != 1 || got.UnresolvedCount != 0 {
		t.Errorf("Unexpected counters: %+v", got)
	}

	// Absent user is a no-op, not an error.
	if err := s.AddUserCounters(ctx, 9999, 1, 1, 1); err != nil {
		t.Errorf("Expected no-op for absent user, got %v", err)
	}
}

func TestCommentCountsByUser(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, postID := range []uint{1, 1, 2} {
		if err := s.CreateComment(ctx, &models.Comment{PostID: postID, UserID: 7, Text: "x"}); err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}
	}
	s.CreateComment(ctx, &models.Comment{PostID: 1, UserID: 8, Text: "x"})

	counts, err := s.CommentCountsByUser(ctx, 7)
	if err != nil {
		t.Fatalf("CommentCountsByUser failed: %v", err)
	}
	if counts[1] != 2 || counts[2] != 1 || len(counts) != 2 {
		t.Errorf("Unexpected counts: %v", counts)
	}
}

func TestSaveUserTouchesUpdatedAt(t *testing.T) {
	s := New()
	ctx := context.Background()

	u := &models.User{StudentName: "a", Email: "a@campus.edu"}
	if err := s.CreateUser(ctx, u); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	created := u.UpdatedAt

	time.Sleep(2 * time.Millisecond)
	u.Department = "Physics"
	if err := s.SaveUser(ctx, u); err != nil {
		t.Fatalf("SaveUser failed: %v", err)
	}

	got, _ := s.UserByID(ctx, u.ID)
	if !got.UpdatedAt.After(created) {
		t.Error("UpdatedAt not advanced on save")
	}
	if got.Department != "Physics" {
		t.Errorf("Save lost the edit: %+v", got)
	}

	if err := s.SaveUser(ctx, &models.User{ID: 9999}); !errors.Is(err, errs.ErrNotFound) {
		t.Errorf("Expected ErrNotFound for absent user, got %v", err)
	}
}
