// Package ram is the in-memory engine behind the catalog's storage port.
// It backs the test suites and local runs; semantics are identical to the
// mysql engine, including error values and result ordering.
package ram

import (
	"context"
	"sort"
	"sync"
	"time"

	"cliptube/cmd/catalog/dal"
	"cliptube/cmd/model"
	"cliptube/pkg/errno"
	"cliptube/pkg/pagination"
	"cliptube/pkg/utils"
)

type videoRow struct {
	id    int64
	owner string
	data  dal.VideoData
}

type commentRow struct {
	id        int64
	owner     string
	title     string
	commenter string
	content   string
	creation  time.Time
}

type reactionKey struct {
	reactor string
	owner   string
	title   string
}

type VideoDB struct {
	mu        sync.RWMutex
	users     map[string]model.User
	videos    []videoRow
	reactions map[reactionKey]dal.Reaction
	comments  []commentRow
}

func New() *VideoDB {
	return &VideoDB{
		users:     make(map[string]model.User),
		reactions: make(map[reactionKey]dal.Reaction),
	}
}

func (v *VideoDB) UpsertUser(_ context.Context, user *model.User) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.users[user.Email] = *user
	return nil
}

func (v *VideoDB) AddVideo(_ context.Context, ownerEmail string, data dal.VideoData) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, row := range v.videos {
		if row.owner == ownerEmail && row.data.Title == data.Title {
			return errno.DuplicateVideoErr
		}
	}
	v.videos = append(v.videos, videoRow{
		id:    utils.GenerateVideoID(),
		owner: ownerEmail,
		data:  data,
	})
	return nil
}

func (v *VideoDB) ListUserVideos(_ context.Context, ownerEmail string) ([]dal.VideoWithCounts, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	var rows []videoRow
	for _, row := range v.videos {
		if row.owner == ownerEmail {
			rows = append(rows, row)
		}
	}
	sortMostRecentFirst(rows)

	result := make([]dal.VideoWithCounts, 0, len(rows))
	for _, row := range rows {
		result = append(result, dal.VideoWithCounts{
			Video:  row.data,
			Counts: v.countsLocked(row.owner, row.data.Title),
		})
	}
	return result, nil
}

func (v *VideoDB) DeleteVideo(_ context.Context, ownerEmail, title string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	idx := -1
	for i, row := range v.videos {
		if row.owner == ownerEmail && row.data.Title == title {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errno.VideoNotFoundErr
	}
	v.videos = append(v.videos[:idx], v.videos[idx+1:]...)
	for key := range v.reactions {
		if key.owner == ownerEmail && key.title == title {
			delete(v.reactions, key)
		}
	}
	kept := v.comments[:0]
	for _, comment := range v.comments {
		if comment.owner != ownerEmail || comment.title != title {
			kept = append(kept, comment)
		}
	}
	v.comments = kept
	return nil
}

func (v *VideoDB) GetPaginatedVideos(_ context.Context, page, perPage int64) ([]dal.OwnedVideo, int64, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	total := int64(len(v.videos))
	totalPages := pagination.PageCount(total, perPage)
	if err := pagination.Validate(page, perPage, total); err != nil {
		return nil, 0, err
	}

	rows := make([]videoRow, len(v.videos))
	copy(rows, v.videos)
	sortMostRecentFirst(rows)

	offset, limit := pagination.Window(page, perPage)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	result := make([]dal.OwnedVideo, 0, end-offset)
	for _, row := range rows[offset:end] {
		result = append(result, dal.OwnedVideo{
			Owner: v.ownerLocked(row.owner),
			Video: row.data,
		})
	}
	return result, totalPages, nil
}

func (v *VideoDB) ReactVideo(_ context.Context, reactorEmail, ownerEmail, title string, reaction dal.Reaction) error {
	if reaction != dal.ReactionLike && reaction != dal.ReactionDislike {
		return errno.ParamErr.WithMessage("reaction must be like or dislike")
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.videoExistsLocked(ownerEmail, title) {
		return errno.VideoNotFoundErr
	}
	v.reactions[reactionKey{reactor: reactorEmail, owner: ownerEmail, title: title}] = reaction
	return nil
}

func (v *VideoDB) GetVideoReaction(_ context.Context, reactorEmail, ownerEmail, title string) (dal.Reaction, bool, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	reaction, ok := v.reactions[reactionKey{reactor: reactorEmail, owner: ownerEmail, title: title}]
	if !ok {
		return dal.ReactionNone, false, nil
	}
	return reaction, true, nil
}

func (v *VideoDB) DeleteReaction(_ context.Context, reactorEmail, ownerEmail, title string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.reactions, reactionKey{reactor: reactorEmail, owner: ownerEmail, title: title})
	return nil
}

func (v *VideoDB) CommentVideo(_ context.Context, commenterEmail, ownerEmail, title, content string) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if !v.videoExistsLocked(ownerEmail, title) {
		return errno.VideoNotFoundErr
	}
	v.comments = append(v.comments, commentRow{
		id:        utils.GenerateCommentID(),
		owner:     ownerEmail,
		title:     title,
		commenter: commenterEmail,
		content:   content,
		creation:  time.Now(),
	})
	return nil
}

func (v *VideoDB) GetComments(_ context.Context, ownerEmail, title string) ([]dal.UserRecord, []dal.Comment, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	var rows []commentRow
	for _, comment := range v.comments {
		if comment.owner == ownerEmail && comment.title == title {
			rows = append(rows, comment)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].creation.Equal(rows[j].creation) {
			return rows[i].creation.After(rows[j].creation)
		}
		return rows[i].id > rows[j].id
	})

	records := make([]dal.UserRecord, 0, len(rows))
	comments := make([]dal.Comment, 0, len(rows))
	for _, row := range rows {
		records = append(records, v.ownerLocked(row.commenter))
		comments = append(comments, dal.Comment{
			Content:      row.content,
			CreationTime: row.creation,
		})
	}
	return records, comments, nil
}

func (v *VideoDB) SearchVideos(_ context.Context, query string) ([]dal.OwnedVideo, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	candidates := make([]dal.SearchCandidate, 0, len(v.videos))
	for _, row := range v.videos {
		candidates = append(candidates, dal.SearchCandidate{
			Owner:   v.ownerLocked(row.owner),
			Video:   row.data,
			VideoID: row.id,
		})
	}
	return dal.RankSearch(query, candidates), nil
}

func (v *VideoDB) ListTopVideos(_ context.Context) ([]dal.RankedVideo, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	var candidates []dal.EngagementCandidate
	for _, row := range v.videos {
		if !row.data.Visible {
			continue
		}
		candidates = append(candidates, dal.EngagementCandidate{
			Owner:   v.ownerLocked(row.owner),
			Video:   row.data,
			VideoID: row.id,
			Counts:  v.countsLocked(row.owner, row.data.Title),
		})
	}
	return dal.RankByEngagement(candidates), nil
}

func (v *VideoDB) Close() error { return nil }

func (v *VideoDB) videoExistsLocked(ownerEmail, title string) bool {
	for _, row := range v.videos {
		if row.owner == ownerEmail && row.data.Title == title {
			return true
		}
	}
	return false
}

func (v *VideoDB) countsLocked(ownerEmail, title string) dal.ReactionCounts {
	var counts dal.ReactionCounts
	for key, reaction := range v.reactions {
		if key.owner != ownerEmail || key.title != title {
			continue
		}
		switch reaction {
		case dal.ReactionLike:
			counts.Likes++
		case dal.ReactionDislike:
			counts.Dislikes++
		}
	}
	return counts
}

func (v *VideoDB) ownerLocked(email string) dal.UserRecord {
	if user, ok := v.users[email]; ok {
		return dal.UserRecord{
			Email:       user.Email,
			Fullname:    user.Fullname,
			PhoneNumber: user.PhoneNumber,
			Photo:       user.Photo,
		}
	}
	return dal.UserRecord{Email: email}
}

func sortMostRecentFirst(rows []videoRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].data.CreationTime.Equal(rows[j].data.CreationTime) {
			return rows[i].data.CreationTime.After(rows[j].data.CreationTime)
		}
		return rows[i].id > rows[j].id
	})
}
