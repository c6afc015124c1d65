package repository

import (
	"context"
	"sync"
	"testing"

	"photoshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededMemoryStore(t *testing.T) *MemoryStore {
	t.Helper()
	s := NewMemoryStore()
	require.NoError(t, s.Seed(context.Background(), DefaultImages()))
	return s
}

func TestMemoryStore_CreateUser_Duplicate(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.CreateUser(ctx, models.User{Username: "alice", Email: "a@x.io", PasswordHash: "h1"}))

	err := s.CreateUser(ctx, models.User{Username: "alice", Email: "other@x.io", PasswordHash: "h2"})
	require.ErrorIs(t, err, ErrDuplicateUser)

	u, err := s.GetUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "a@x.io", u.Email)
	assert.Equal(t, "h1", u.PasswordHash)
	assert.False(t, u.CreatedAt.IsZero())
}

func TestMemoryStore_GetUser_NotFound(t *testing.T) {
	_, err := NewMemoryStore().GetUser(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_LikeUnlike(t *testing.T) {
	ctx := context.Background()
	s := seededMemoryStore(t)

	img, err := s.IncrementLikes(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 23, img.Likes)

	img, err = s.DecrementLikes(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 22, img.Likes)

	for i := 0; i < 30; i++ {
		img, err = s.DecrementLikes(ctx, 3)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, img.Likes)
}

func TestMemoryStore_MutationsOnMissingImage(t *testing.T) {
	ctx := context.Background()
	s := seededMemoryStore(t)
	before, err := s.ListImages(ctx)
	require.NoError(t, err)

	_, err = s.GetImage(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.IncrementLikes(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.DecrementLikes(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.AppendComment(ctx, 99, "hi")
	assert.ErrorIs(t, err, ErrNotFound)

	after, err := s.ListImages(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestMemoryStore_AppendComment_OrderAndBlank(t *testing.T) {
	ctx := context.Background()
	s := seededMemoryStore(t)

	inputs := []string{"first", "", "  ", "second", " third "}
	var img models.Image
	var err error
	for _, c := range inputs {
		img, err = s.AppendComment(ctx, 3, c)
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"first", "second", " third "}, img.Comments)
}

func TestMemoryStore_CreateImage_IDsIncreaseAndFeedOrder(t *testing.T) {
	ctx := context.Background()
	s := seededMemoryStore(t)

	a, err := s.CreateImage(ctx, "a", UploadPlaceholderURL)
	require.NoError(t, err)
	b, err := s.CreateImage(ctx, "b", UploadPlaceholderURL)
	require.NoError(t, err)

	assert.Equal(t, 7, a.ID)
	assert.Equal(t, 8, b.ID)
	assert.Equal(t, "https://via.placeholder.com/300x200.png?text=New+Post+8", b.URL)
	assert.Empty(t, b.Comments)
	assert.Zero(t, b.Likes)

	feed, err := s.ListImages(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 8)
	for i := 1; i < len(feed); i++ {
		assert.Greater(t, feed[i-1].ID, feed[i].ID)
	}
	assert.Equal(t, 8, feed[0].ID)
}

func TestMemoryStore_SnapshotsDoNotAlias(t *testing.T) {
	ctx := context.Background()
	s := seededMemoryStore(t)

	img, err := s.GetImage(ctx, 1)
	require.NoError(t, err)
	img.Comments[0] = "mutated"
	img.Comments = append(img.Comments, "extra")

	again, err := s.GetImage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"Great shot!", "Beautiful."}, again.Comments)
}

func TestMemoryStore_Seed_RejectsDuplicateAndInvalid(t *testing.T) {
	ctx := context.Background()
	s := seededMemoryStore(t)

	assert.Error(t, s.Seed(ctx, []models.Image{{ID: 1}}))
	assert.Error(t, s.Seed(ctx, []models.Image{{ID: 0}}))
}

func TestMemoryStore_ConcurrentLikesAreNotLost(t *testing.T) {
	ctx := context.Background()
	s := seededMemoryStore(t)

	const workers = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, _ = s.IncrementLikes(ctx, 5)
			_, _ = s.AppendComment(ctx, 5, "c")
		}()
	}
	wg.Wait()

	img, err := s.GetImage(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 8+workers, img.Likes)
	assert.Len(t, img.Comments, workers)
}

func TestOpen_Drivers(t *testing.T) {
	repo, closeFn, err := Open(DriverMemory, "")
	require.NoError(t, err)
	require.NotNil(t, repo.Images)
	require.NoError(t, closeFn())

	_, _, err = Open("postgres", "")
	assert.Error(t, err)
}
