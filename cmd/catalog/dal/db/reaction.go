package db

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cliptube/cmd/catalog/dal"
	"cliptube/cmd/model"
	"cliptube/pkg/errno"
)

// ReactVideo upserts the reactor's reaction for the video. The composite
// primary key plus ON DUPLICATE KEY UPDATE makes two concurrent reacts
// for the same (reactor, video) collapse to the last writer's value.
func (v *VideoDB) ReactVideo(ctx context.Context, reactorEmail, ownerEmail, title string, reaction dal.Reaction) error {
	if reaction != dal.ReactionLike && reaction != dal.ReactionDislike {
		return errno.ParamErr.WithMessage("reaction must be like or dislike")
	}
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := videoExists(tx, ownerEmail, title); err != nil {
			return err
		}
		row := &model.VideoReaction{
			UserEmail:  reactorEmail,
			OwnerEmail: ownerEmail,
			Title:      title,
			Value:      reaction.String(),
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "user_email"}, {Name: "owner_email"}, {Name: "title"},
			},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).Create(row).Error; err != nil {
			return errors.WithMessage(err, "failed to upsert reaction")
		}
		return nil
	})
	if err != nil {
		return err
	}
	v.invalidateCounts(ctx, ownerEmail)
	return nil
}

func (v *VideoDB) GetVideoReaction(ctx context.Context, reactorEmail, ownerEmail, title string) (dal.Reaction, bool, error) {
	var row model.VideoReaction
	err := v.db.WithContext(ctx).
		Where("user_email = ? AND owner_email = ? AND title = ?", reactorEmail, ownerEmail, title).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dal.ReactionNone, false, nil
	}
	if err != nil {
		return dal.ReactionNone, false, errors.WithMessage(err, "failed to get reaction")
	}
	reaction, err := dal.ParseReaction(row.Value)
	if err != nil {
		return dal.ReactionNone, false, err
	}
	return reaction, true, nil
}

func (v *VideoDB) DeleteReaction(ctx context.Context, reactorEmail, ownerEmail, title string) error {
	if err := v.db.WithContext(ctx).
		Where("user_email = ? AND owner_email = ? AND title = ?", reactorEmail, ownerEmail, title).
		Delete(&model.VideoReaction{}).Error; err != nil {
		return errors.WithMessage(err, "failed to delete reaction")
	}
	// deleting an absent reaction is a no-op, the version bump is harmless
	v.invalidateCounts(ctx, ownerEmail)
	return nil
}

// invalidateCounts bumps the owner's count cache version. By the time it
// runs the row mutation is committed, so a cache failure only costs
// freshness until the entry expires and must not fail the call.
func (v *VideoDB) invalidateCounts(ctx context.Context, ownerEmail string) {
	if err := v.counts.Invalidate(ctx, ownerEmail); err != nil {
		logrus.Warnf("count cache invalidation failed for %s: %v", ownerEmail, err)
	}
}

// countRow receives one grouped aggregate row.
type countRow struct {
	OwnerEmail string
	Title      string
	Value      string
	Cnt        int64
}

// ownerReactionCounts aggregates the owner's reaction rows per title in
// a single grouped query, run against the caller's transaction.
func ownerReactionCounts(tx *gorm.DB, ownerEmail string) (map[string]dal.ReactionCounts, error) {
	var rows []countRow
	if err := tx.Model(&model.VideoReaction{}).
		Select("title, value, COUNT(*) AS cnt").
		Where("owner_email = ?", ownerEmail).
		Group("title, value").
		Scan(&rows).Error; err != nil {
		return nil, errors.WithMessage(err, "failed to count reactions")
	}
	return countsByTitle(rows), nil
}

// catalogReactionCounts aggregates every reaction row, keyed by
// (owner, title), for the catalog-wide rankings.
func catalogReactionCounts(tx *gorm.DB) (map[videoKey]dal.ReactionCounts, error) {
	var rows []countRow
	if err := tx.Model(&model.VideoReaction{}).
		Select("owner_email, title, value, COUNT(*) AS cnt").
		Group("owner_email, title, value").
		Scan(&rows).Error; err != nil {
		return nil, errors.WithMessage(err, "failed to count reactions")
	}
	counts := make(map[videoKey]dal.ReactionCounts, len(rows))
	for _, row := range rows {
		key := videoKey{owner: row.OwnerEmail, title: row.Title}
		entry := counts[key]
		applyCount(&entry, row.Value, row.Cnt)
		counts[key] = entry
	}
	return counts, nil
}

type videoKey struct {
	owner string
	title string
}

func countsByTitle(rows []countRow) map[string]dal.ReactionCounts {
	counts := make(map[string]dal.ReactionCounts, len(rows))
	for _, row := range rows {
		entry := counts[row.Title]
		applyCount(&entry, row.Value, row.Cnt)
		counts[row.Title] = entry
	}
	return counts
}

func applyCount(counts *dal.ReactionCounts, value string, cnt int64) {
	switch value {
	case dal.ReactionLike.String():
		counts.Likes = cnt
	case dal.ReactionDislike.String():
		counts.Dislikes = cnt
	}
}

func videoExists(tx *gorm.DB, ownerEmail, title string) error {
	var count int64
	if err := tx.Model(&model.Video{}).
		Where("user_email = ? AND title = ?", ownerEmail, title).
		Count(&count).Error; err != nil {
		return errors.WithMessage(err, "failed to check video")
	}
	if count == 0 {
		return errno.VideoNotFoundErr
	}
	return nil
}
