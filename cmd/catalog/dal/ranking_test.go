package dal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryTokens(t *testing.T) {
	assert.Equal(t, []string{"coso", "titulo"}, QueryTokens("  Coso   titulo coso "))
	assert.Nil(t, QueryTokens("   "))
}

func TestMatchScoreIsWordExact(t *testing.T) {
	// "titulo" must not match the word "Titulo2"
	assert.Equal(t, 0, MatchScore("Titulo2", "Descripcion2 coso", []string{"titulo"}))
	assert.Equal(t, 1, MatchScore("Titulo", "Descripcion coso", []string{"titulo"}))
	assert.Equal(t, 1, MatchScore("Titulo", "Descripcion coso", []string{"coso"}))
	assert.Equal(t, 2, MatchScore("Titulo", "Descripcion coso", []string{"coso", "titulo"}))
	assert.Equal(t, 1, MatchScore("Titulo", "Descripcion coso", []string{"TITULO"} /* tokens are lowercased upstream */))
}

func searchCorpus(t *testing.T) []SearchCandidate {
	t.Helper()
	now := time.Now()
	return []SearchCandidate{
		{
			Owner:   UserRecord{Email: "giancafferata@hotmail.com"},
			Video:   VideoData{Title: "Titulo", Description: "Descripcion coso", CreationTime: now},
			VideoID: 1,
		},
		{
			Owner:   UserRecord{Email: "giancafferata@hotmail.com"},
			Video:   VideoData{Title: "Titulo2", Description: "Descripcion2 coso", CreationTime: now.Add(24 * time.Hour)},
			VideoID: 2,
		},
	}
}

func TestRankSearch(t *testing.T) {
	corpus := searchCorpus(t)

	t.Run("single word matches one video", func(t *testing.T) {
		result := RankSearch("titulo", corpus)
		require.Len(t, result, 1)
		assert.Equal(t, "Titulo", result[0].Video.Title)
	})

	t.Run("shared word matches both", func(t *testing.T) {
		result := RankSearch("coso", corpus)
		require.Len(t, result, 2)
		// equal score, newer video first
		assert.Equal(t, "Titulo2", result[0].Video.Title)
	})

	t.Run("higher score ranks first", func(t *testing.T) {
		result := RankSearch("coso titulo", corpus)
		require.Len(t, result, 2)
		assert.Equal(t, "Titulo", result[0].Video.Title)
		assert.Equal(t, "Titulo2", result[1].Video.Title)
	})

	t.Run("no match drops out", func(t *testing.T) {
		assert.Empty(t, RankSearch("nada", corpus))
		assert.Empty(t, RankSearch("   ", corpus))
	})
}

func TestRankByEngagement(t *testing.T) {
	now := time.Now()
	candidates := []EngagementCandidate{
		{
			Owner:   UserRecord{Email: "a@a.com"},
			Video:   VideoData{Title: "low", CreationTime: now},
			VideoID: 1,
			Counts:  ReactionCounts{Likes: 1, Dislikes: 1},
		},
		{
			Owner:   UserRecord{Email: "b@b.com"},
			Video:   VideoData{Title: "high", CreationTime: now},
			VideoID: 2,
			Counts:  ReactionCounts{Likes: 3, Dislikes: 1},
		},
		{
			Owner:   UserRecord{Email: "c@c.com"},
			Video:   VideoData{Title: "newer-tie", CreationTime: now.Add(time.Hour)},
			VideoID: 3,
			Counts:  ReactionCounts{Likes: 2, Dislikes: 2},
		},
	}

	result := RankByEngagement(candidates)
	require.Len(t, result, 3)
	assert.Equal(t, "high", result[0].Video.Title)
	assert.Equal(t, int64(2), result[0].Engagement)
	// net zero tie broken by creation time descending
	assert.Equal(t, "newer-tie", result[1].Video.Title)
	assert.Equal(t, "low", result[2].Video.Title)
}
