package ram

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliptube/cmd/catalog/dal"
	"cliptube/cmd/model"
	"cliptube/pkg/errno"
)

const (
	owner    = "giancafferata@hotmail.com"
	reactor  = "cafferatagian@hotmail.com"
	stranger = "asd@asd.com"
)

func videoData(title, description string, creation time.Time) dal.VideoData {
	return dal.VideoData{
		Title:        title,
		Description:  description,
		CreationTime: creation,
		Visible:      true,
		Location:     "Buenos Aires",
		FileLocation: "file_location",
	}
}

func TestAddAndListUserVideos(t *testing.T) {
	ctx := context.Background()
	store := New()
	now := time.Now()

	require.NoError(t, store.AddVideo(ctx, owner, videoData("Titulo", "Descripcion coso", now)))
	require.NoError(t, store.AddVideo(ctx, owner, videoData("Titulo2", "Descripcion2 coso", now.Add(24*time.Hour))))

	videos, err := store.ListUserVideos(ctx, owner)
	require.NoError(t, err)
	require.Len(t, videos, 2)
	// most recent first
	assert.Equal(t, "Titulo2", videos[0].Video.Title)
	assert.Equal(t, "Titulo", videos[1].Video.Title)
	assert.Equal(t, dal.ReactionCounts{}, videos[0].Counts)
}

func TestListUserVideosEmptyOwner(t *testing.T) {
	store := New()
	videos, err := store.ListUserVideos(context.Background(), "nobody@nowhere.com")
	require.NoError(t, err)
	assert.Empty(t, videos)
}

func TestDuplicateTitleRejected(t *testing.T) {
	ctx := context.Background()
	store := New()
	now := time.Now()

	require.NoError(t, store.AddVideo(ctx, owner, videoData("Titulo", "uno", now)))
	err := store.AddVideo(ctx, owner, videoData("Titulo", "dos", now))
	require.ErrorIs(t, err, errno.DuplicateVideoErr)

	// same title under another owner is fine
	require.NoError(t, store.AddVideo(ctx, stranger, videoData("Titulo", "ajeno", now)))
}

func TestReactionOverwriteAndCounts(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.AddVideo(ctx, owner, videoData("Titulo", "Descripcion coso", time.Now())))

	_, ok, err := store.GetVideoReaction(ctx, reactor, owner, "Titulo")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.ReactVideo(ctx, reactor, owner, "Titulo", dal.ReactionLike))
	reaction, ok, err := store.GetVideoReaction(ctx, reactor, owner, "Titulo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, dal.ReactionLike, reaction)

	videos, err := store.ListUserVideos(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, dal.ReactionCounts{Likes: 1}, videos[0].Counts)

	// a second reaction replaces, never adds
	require.NoError(t, store.ReactVideo(ctx, reactor, owner, "Titulo", dal.ReactionDislike))
	videos, err = store.ListUserVideos(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, dal.ReactionCounts{Dislikes: 1}, videos[0].Counts)

	require.NoError(t, store.DeleteReaction(ctx, reactor, owner, "Titulo"))
	videos, err = store.ListUserVideos(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, dal.ReactionCounts{}, videos[0].Counts)

	// idempotent
	require.NoError(t, store.DeleteReaction(ctx, reactor, owner, "Titulo"))
}

func TestReactUnknownVideo(t *testing.T) {
	store := New()
	err := store.ReactVideo(context.Background(), reactor, owner, "Fantasma", dal.ReactionLike)
	require.ErrorIs(t, err, errno.VideoNotFoundErr)
}

func TestCommentOrderingAndRecords(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.AddVideo(ctx, owner, videoData("Titulo", "Descripcion coso", time.Now())))
	require.NoError(t, store.UpsertUser(ctx, &model.User{Email: stranger, Fullname: "Asd Asd"}))

	require.NoError(t, store.CommentVideo(ctx, reactor, owner, "Titulo", "Comentario 1"))
	require.NoError(t, store.CommentVideo(ctx, stranger, owner, "Titulo", "Comentario 2"))
	require.NoError(t, store.CommentVideo(ctx, reactor, owner, "Titulo", "Comentario 3"))

	users, comments, err := store.GetComments(ctx, owner, "Titulo")
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.Len(t, comments, 3)

	// newest first, commenters aligned index by index
	assert.Equal(t, "Comentario 3", comments[0].Content)
	assert.Equal(t, "Comentario 2", comments[1].Content)
	assert.Equal(t, "Comentario 1", comments[2].Content)
	assert.Equal(t, reactor, users[0].Email)
	assert.Equal(t, stranger, users[1].Email)
	assert.Equal(t, "Asd Asd", users[1].Fullname)
	assert.Equal(t, reactor, users[2].Email)
}

func TestCommentUnknownVideo(t *testing.T) {
	store := New()
	err := store.CommentVideo(context.Background(), reactor, owner, "Fantasma", "hola")
	require.ErrorIs(t, err, errno.VideoNotFoundErr)
}

func TestDeleteVideoCascades(t *testing.T) {
	ctx := context.Background()
	store := New()
	require.NoError(t, store.AddVideo(ctx, owner, videoData("Titulo", "Descripcion coso", time.Now())))
	require.NoError(t, store.ReactVideo(ctx, reactor, owner, "Titulo", dal.ReactionLike))
	require.NoError(t, store.CommentVideo(ctx, reactor, owner, "Titulo", "Comentario"))

	require.NoError(t, store.DeleteVideo(ctx, owner, "Titulo"))

	videos, err := store.ListUserVideos(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, videos)

	_, ok, err := store.GetVideoReaction(ctx, reactor, owner, "Titulo")
	require.NoError(t, err)
	assert.False(t, ok)

	users, comments, err := store.GetComments(ctx, owner, "Titulo")
	require.NoError(t, err)
	assert.Empty(t, users)
	assert.Empty(t, comments)

	// the key now behaves as if it never existed
	require.ErrorIs(t, store.DeleteVideo(ctx, owner, "Titulo"), errno.VideoNotFoundErr)
}

func TestGetPaginatedVideos(t *testing.T) {
	ctx := context.Background()
	store := New()

	t.Run("empty catalog", func(t *testing.T) {
		page, totalPages, err := store.GetPaginatedVideos(ctx, 0, 1)
		require.NoError(t, err)
		assert.Empty(t, page)
		assert.Equal(t, int64(0), totalPages)

		_, _, err = store.GetPaginatedVideos(ctx, 1, 1)
		require.ErrorIs(t, err, errno.NoMoreVideosErr)
	})

	now := time.Now()
	require.NoError(t, store.AddVideo(ctx, owner, videoData("Titulo", "uno", now)))
	require.NoError(t, store.AddVideo(ctx, stranger, videoData("Titulo2", "dos", now.Add(time.Minute))))
	require.NoError(t, store.AddVideo(ctx, owner, videoData("Titulo3", "tres", now.Add(2*time.Minute))))

	t.Run("three videos per two", func(t *testing.T) {
		page0, totalPages, err := store.GetPaginatedVideos(ctx, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), totalPages)
		require.Len(t, page0, 2)
		assert.Equal(t, "Titulo3", page0[0].Video.Title)
		assert.Equal(t, owner, page0[0].Owner.Email)
		assert.Equal(t, "Titulo2", page0[1].Video.Title)
		assert.Equal(t, stranger, page0[1].Owner.Email)

		page1, totalPages, err := store.GetPaginatedVideos(ctx, 1, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), totalPages)
		require.Len(t, page1, 1)
		assert.Equal(t, "Titulo", page1[0].Video.Title)

		_, _, err = store.GetPaginatedVideos(ctx, 2, 2)
		require.ErrorIs(t, err, errno.NoMoreVideosErr)
	})
}

func TestSearchVideos(t *testing.T) {
	ctx := context.Background()
	store := New()
	now := time.Now()
	require.NoError(t, store.AddVideo(ctx, owner, videoData("Titulo", "Descripcion coso", now)))
	require.NoError(t, store.AddVideo(ctx, owner, videoData("Titulo2", "Descripcion2 coso", now.Add(24*time.Hour))))

	result, err := store.SearchVideos(ctx, "titulo")
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Titulo", result[0].Video.Title)

	result, err = store.SearchVideos(ctx, "coso")
	require.NoError(t, err)
	assert.Len(t, result, 2)

	result, err = store.SearchVideos(ctx, "coso titulo")
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Titulo", result[0].Video.Title)
}

func TestListTopVideos(t *testing.T) {
	ctx := context.Background()
	store := New()
	now := time.Now()

	require.NoError(t, store.AddVideo(ctx, owner, videoData("meh", "x", now)))
	require.NoError(t, store.AddVideo(ctx, owner, videoData("hit", "x", now.Add(time.Minute))))
	hidden := videoData("secreto", "x", now.Add(2*time.Minute))
	hidden.Visible = false
	require.NoError(t, store.AddVideo(ctx, owner, hidden))

	require.NoError(t, store.ReactVideo(ctx, "r1@x.com", owner, "hit", dal.ReactionLike))
	require.NoError(t, store.ReactVideo(ctx, "r2@x.com", owner, "hit", dal.ReactionLike))
	require.NoError(t, store.ReactVideo(ctx, "r1@x.com", owner, "meh", dal.ReactionDislike))
	// reactions on the hidden video never surface
	require.NoError(t, store.ReactVideo(ctx, "r1@x.com", owner, "secreto", dal.ReactionLike))

	ranked, err := store.ListTopVideos(ctx)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "hit", ranked[0].Video.Title)
	assert.Equal(t, int64(2), ranked[0].Engagement)
	assert.Equal(t, "meh", ranked[1].Video.Title)
	assert.Equal(t, int64(-1), ranked[1].Engagement)
}
