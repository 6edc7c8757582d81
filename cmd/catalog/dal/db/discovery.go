package db

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"cliptube/cmd/catalog/dal"
)

// SearchVideos scans the catalog and ranks rows with the shared
// word-exact scorer, so the mysql and in-memory engines agree on every
// result and its order.
func (v *VideoDB) SearchVideos(ctx context.Context, query string) ([]dal.OwnedVideo, error) {
	rows, err := ownedRows(v.db.WithContext(ctx), false)
	if err != nil {
		return nil, err
	}
	candidates := make([]dal.SearchCandidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, dal.SearchCandidate{
			Owner:   row.owner(),
			Video:   row.video(),
			VideoID: row.VideoID,
		})
	}
	return dal.RankSearch(query, candidates), nil
}

// ListTopVideos ranks visible videos by net likes. The rows and the
// grouped counts come from one transaction so the ranking never mixes
// two states of the catalog.
func (v *VideoDB) ListTopVideos(ctx context.Context) ([]dal.RankedVideo, error) {
	var rows []ownedVideoRow
	var counts map[videoKey]dal.ReactionCounts
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if rows, err = ownedRows(tx, true); err != nil {
			return err
		}
		counts, err = catalogReactionCounts(tx)
		return err
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]dal.EngagementCandidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, dal.EngagementCandidate{
			Owner:   row.owner(),
			Video:   row.video(),
			VideoID: row.VideoID,
			Counts:  counts[videoKey{owner: row.UserEmail, title: row.Title}],
		})
	}
	return dal.RankByEngagement(candidates), nil
}

func ownedRows(tx *gorm.DB, visibleOnly bool) ([]ownedVideoRow, error) {
	var rows []ownedVideoRow
	q := tx.Table("videos").
		Select("videos.*, users.email, users.fullname, users.phone_number, users.photo").
		Joins("LEFT JOIN users ON users.email = videos.user_email")
	if visibleOnly {
		q = q.Where("videos.visible = ?", true)
	}
	if err := q.Scan(&rows).Error; err != nil {
		return nil, errors.WithMessage(err, "failed to scan catalog")
	}
	return rows, nil
}
