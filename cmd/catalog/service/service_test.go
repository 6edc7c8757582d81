package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cliptube/cmd/catalog/dal"
	"cliptube/cmd/catalog/dal/ram"
	"cliptube/pkg/constants"
	"cliptube/pkg/errno"
)

const owner = "giancafferata@hotmail.com"

func newServices(t *testing.T) (*VideoService, *InteractionService, *DiscoveryService) {
	t.Helper()
	ctx := context.Background()
	store := ram.New()
	return NewVideoService(ctx, store),
		NewInteractionService(ctx, store),
		NewDiscoveryService(ctx, store)
}

func TestPublishVideoValidation(t *testing.T) {
	videos, _, _ := newServices(t)

	err := videos.PublishVideo(owner, dal.VideoData{Title: "   "})
	require.ErrorIs(t, err, errno.ParamErr)

	err = videos.PublishVideo("", dal.VideoData{Title: "Titulo"})
	require.ErrorIs(t, err, errno.ParamErr)
}

func TestPublishVideoStampsCreationTime(t *testing.T) {
	videos, _, _ := newServices(t)

	before := time.Now()
	require.NoError(t, videos.PublishVideo(owner, dal.VideoData{Title: "Titulo", Visible: true}))

	listed, err := videos.ListUserVideos(owner)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.False(t, listed[0].Video.CreationTime.Before(before))
}

func TestCommentValidation(t *testing.T) {
	videos, interactions, _ := newServices(t)
	require.NoError(t, videos.PublishVideo(owner, dal.VideoData{Title: "Titulo", Visible: true}))

	err := interactions.CommentVideo("a@a.com", owner, "Titulo", "   ")
	require.ErrorIs(t, err, errno.ParamErr)

	tooLong := strings.Repeat("a", constants.MaxCommentLength+1)
	err = interactions.CommentVideo("a@a.com", owner, "Titulo", tooLong)
	require.ErrorIs(t, err, errno.CommentTooLongErr)

	require.NoError(t, interactions.CommentVideo("a@a.com", owner, "Titulo",
		strings.Repeat("a", constants.MaxCommentLength)))
}

func TestReactionFlow(t *testing.T) {
	videos, interactions, _ := newServices(t)
	require.NoError(t, videos.PublishVideo(owner, dal.VideoData{Title: "Titulo", Visible: true}))

	require.ErrorIs(t, interactions.ReactVideo("", owner, "Titulo", dal.ReactionLike), errno.ParamErr)

	require.NoError(t, interactions.ReactVideo("r@x.com", owner, "Titulo", dal.ReactionLike))
	require.NoError(t, interactions.ReactVideo("r@x.com", owner, "Titulo", dal.ReactionDislike))

	reaction, ok, err := interactions.GetVideoReaction("r@x.com", owner, "Titulo")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, dal.ReactionDislike, reaction)

	listed, err := videos.ListUserVideos(owner)
	require.NoError(t, err)
	assert.Equal(t, dal.ReactionCounts{Dislikes: 1}, listed[0].Counts)
}

func TestSearchRejectsBlankQuery(t *testing.T) {
	_, _, discovery := newServices(t)
	_, err := discovery.SearchVideos("   ")
	require.ErrorIs(t, err, errno.ParamErr)
}

func TestDiscoveryFlow(t *testing.T) {
	videos, interactions, discovery := newServices(t)
	now := time.Now()
	require.NoError(t, videos.PublishVideo(owner, dal.VideoData{
		Title: "Titulo", Description: "Descripcion coso", CreationTime: now, Visible: true,
	}))
	require.NoError(t, videos.PublishVideo(owner, dal.VideoData{
		Title: "Titulo2", Description: "Descripcion2 coso", CreationTime: now.Add(24 * time.Hour), Visible: true,
	}))
	require.NoError(t, interactions.ReactVideo("r@x.com", owner, "Titulo", dal.ReactionLike))

	found, err := discovery.SearchVideos("coso titulo")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Titulo", found[0].Video.Title)

	top, err := discovery.ListTopVideos()
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "Titulo", top[0].Video.Title)
	assert.Equal(t, int64(1), top[0].Engagement)
}

func TestGetPaginatedVideosDefaultsPerPage(t *testing.T) {
	videos, _, _ := newServices(t)
	page, totalPages, err := videos.GetPaginatedVideos(0, 0)
	require.NoError(t, err)
	assert.Empty(t, page)
	assert.Equal(t, int64(0), totalPages)
}

func TestDeleteVideoNotFound(t *testing.T) {
	videos, _, _ := newServices(t)
	require.ErrorIs(t, videos.DeleteVideo(owner, "Fantasma"), errno.VideoNotFoundErr)
}
