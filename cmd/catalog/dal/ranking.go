package dal

import (
	"sort"
	"strings"
)

// SearchCandidate is a catalog row an engine feeds into RankSearch.
// VideoID breaks ordering ties deterministically (snowflake IDs grow
// with insertion time).
type SearchCandidate struct {
	Owner   UserRecord
	Video   VideoData
	VideoID int64
}

// EngagementCandidate is a visible catalog row plus its live counts.
type EngagementCandidate struct {
	Owner   UserRecord
	Video   VideoData
	VideoID int64
	Counts  ReactionCounts
}

// QueryTokens splits a query on whitespace into distinct lowercase words.
func QueryTokens(query string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, word := range strings.Fields(query) {
		word = strings.ToLower(word)
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		tokens = append(tokens, word)
	}
	return tokens
}

// MatchScore counts the distinct query tokens equal to a whole word of
// the title or description. Substring hits do not count: "titulo" never
// matches "Titulo2".
func MatchScore(title, description string, tokens []string) int {
	words := make(map[string]struct{})
	for _, w := range strings.Fields(title) {
		words[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range strings.Fields(description) {
		words[strings.ToLower(w)] = struct{}{}
	}
	score := 0
	for _, token := range tokens {
		if _, ok := words[token]; ok {
			score++
		}
	}
	return score
}

// RankSearch scores candidates for a query and orders them score
// descending, then creation time descending, then ID descending.
// Zero-score candidates are dropped.
func RankSearch(query string, candidates []SearchCandidate) []OwnedVideo {
	tokens := QueryTokens(query)
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		SearchCandidate
		score int
	}
	var matched []scored
	for _, c := range candidates {
		if s := MatchScore(c.Video.Title, c.Video.Description, tokens); s > 0 {
			matched = append(matched, scored{SearchCandidate: c, score: s})
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].score != matched[j].score {
			return matched[i].score > matched[j].score
		}
		if !matched[i].Video.CreationTime.Equal(matched[j].Video.CreationTime) {
			return matched[i].Video.CreationTime.After(matched[j].Video.CreationTime)
		}
		return matched[i].VideoID > matched[j].VideoID
	})

	result := make([]OwnedVideo, 0, len(matched))
	for _, m := range matched {
		result = append(result, OwnedVideo{Owner: m.Owner, Video: m.Video})
	}
	return result
}

// RankByEngagement orders candidates by likes-dislikes descending, then
// creation time descending, then ID descending.
func RankByEngagement(candidates []EngagementCandidate) []RankedVideo {
	ranked := make([]EngagementCandidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		ei := ranked[i].Counts.Likes - ranked[i].Counts.Dislikes
		ej := ranked[j].Counts.Likes - ranked[j].Counts.Dislikes
		if ei != ej {
			return ei > ej
		}
		if !ranked[i].Video.CreationTime.Equal(ranked[j].Video.CreationTime) {
			return ranked[i].Video.CreationTime.After(ranked[j].Video.CreationTime)
		}
		return ranked[i].VideoID > ranked[j].VideoID
	})

	result := make([]RankedVideo, 0, len(ranked))
	for _, c := range ranked {
		result = append(result, RankedVideo{
			Owner:      c.Owner,
			Video:      c.Video,
			Engagement: c.Counts.Likes - c.Counts.Dislikes,
		})
	}
	return result
}
