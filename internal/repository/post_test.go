package repository

import (
	"context"
	"fmt"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CreateAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	first := &models.Post{Content: "first post", UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, first))
	second := &models.Post{Content: "second post", UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, second))

	posts, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	// Oldest first, author preloaded
	assert.Equal(t, "first post", posts[0].Content)
	assert.Equal(t, "second post", posts[1].Content)
	assert.Equal(t, "alice", posts[0].User.Username)
}

func TestPostRepository_ListNoLimitReturnsEveryPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	for i := 0; i < 120; i++ {
		require.NoError(t, repo.Create(ctx, &models.Post{
			Content: fmt.Sprintf("post %03d", i),
			UserID:  alice.ID,
		}))
	}

	posts, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 120)
	assert.Equal(t, "post 000", posts[0].Content)
	assert.Equal(t, "post 119", posts[119].Content)
}

func TestPostRepository_Like(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post := &models.Post{Content: "hello", UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.Like(ctx, bob.ID, post.ID))

	// Second like from the same user is rejected
	err := repo.Like(ctx, bob.ID, post.ID)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "ALREADY_LIKED", appErr.Code)

	// A different user can still like
	require.NoError(t, repo.Like(ctx, alice.ID, post.ID))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, got.Likes, 2)
}

func TestPostRepository_LikeMissingPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	err := repo.Like(ctx, alice.ID, 424242)
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostRepository_AddComment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	post := &models.Post{Content: "hello", UserID: alice.ID}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.AddComment(ctx, &models.Comment{PostID: post.ID, UserID: bob.ID, Text: "nice"}))
	require.NoError(t, repo.AddComment(ctx, &models.Comment{PostID: post.ID, UserID: alice.ID, Text: "thanks"}))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 2)
	assert.Equal(t, "nice", got.Comments[0].Text)
	assert.Equal(t, "bob", got.Comments[0].User.Username)

	err = repo.AddComment(ctx, &models.Comment{PostID: 424242, UserID: bob.ID, Text: "lost"})
	require.Error(t, err)
}
