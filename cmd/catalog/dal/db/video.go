package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cliptube/cmd/catalog/dal"
	"cliptube/cmd/model"
	"cliptube/pkg/cache"
	"cliptube/pkg/errno"
	"cliptube/pkg/pagination"
	"cliptube/pkg/utils"
)

// ownedVideoRow receives the videos-users join used by the global
// listings. Owner columns may be NULL when the auth layer has not synced
// the profile yet; the email then falls back to user_email.
type ownedVideoRow struct {
	VideoID      int64
	UserEmail    string
	Title        string
	Description  string
	CreationTime time.Time
	Visible      bool
	Location     string
	FileLocation string
	Email        string
	Fullname     string
	PhoneNumber  string
	Photo        string
}

func (r ownedVideoRow) owner() dal.UserRecord {
	email := r.Email
	if email == "" {
		email = r.UserEmail
	}
	return dal.UserRecord{
		Email:       email,
		Fullname:    r.Fullname,
		PhoneNumber: r.PhoneNumber,
		Photo:       r.Photo,
	}
}

func (r ownedVideoRow) video() dal.VideoData {
	return dal.VideoData{
		Title:        r.Title,
		Description:  r.Description,
		CreationTime: r.CreationTime,
		Visible:      r.Visible,
		Location:     r.Location,
		FileLocation: r.FileLocation,
	}
}

func (v *VideoDB) UpsertUser(ctx context.Context, user *model.User) error {
	if err := v.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		UpdateAll: true,
	}).Create(user).Error; err != nil {
		return errors.WithMessage(err, "failed to upsert user")
	}
	return nil
}

func (v *VideoDB) AddVideo(ctx context.Context, ownerEmail string, data dal.VideoData) error {
	video := &model.Video{
		VideoID:      utils.GenerateVideoID(),
		UserEmail:    ownerEmail,
		Title:        data.Title,
		Description:  data.Description,
		CreationTime: data.CreationTime,
		Visible:      data.Visible,
		Location:     data.Location,
		FileLocation: data.FileLocation,
	}
	if err := v.db.WithContext(ctx).Create(video).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errno.DuplicateVideoErr
		}
		return errors.WithMessage(err, "failed to insert video")
	}
	return nil
}

// ListUserVideos returns the owner's videos most recent first with their
// reaction counts. A version-valid cache entry mirrors the committed
// reaction rows, because every mutation bumps the owner's version before
// the entry could be served again; on a miss the list and the counts are
// read inside one transaction so they come from a single snapshot.
func (v *VideoDB) ListUserVideos(ctx context.Context, ownerEmail string) ([]dal.VideoWithCounts, error) {
	cached, version, cacheErr := v.counts.Get(ctx, ownerEmail)
	if cacheErr != nil {
		logrus.Warnf("count cache read failed for %s: %v", ownerEmail, cacheErr)
	}

	if cached != nil {
		videos, err := v.ownerVideos(v.db.WithContext(ctx), ownerEmail)
		if err != nil {
			return nil, err
		}
		return assembleWithCounts(videos, fromCountCache(cached)), nil
	}

	var videos []*model.Video
	var counts map[string]dal.ReactionCounts
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if videos, err = v.ownerVideos(tx, ownerEmail); err != nil {
			return err
		}
		counts, err = ownerReactionCounts(tx, ownerEmail)
		return err
	})
	if err != nil {
		return nil, err
	}

	if cacheErr == nil {
		if err := v.counts.Set(ctx, ownerEmail, toCountCache(counts), version); err != nil {
			logrus.Warnf("count cache write failed for %s: %v", ownerEmail, err)
		}
	}
	return assembleWithCounts(videos, counts), nil
}

func (v *VideoDB) ownerVideos(tx *gorm.DB, ownerEmail string) ([]*model.Video, error) {
	var videos []*model.Video
	if err := tx.Model(&model.Video{}).
		Where("user_email = ?", ownerEmail).
		Order("creation_time DESC, video_id DESC").
		Find(&videos).Error; err != nil {
		return nil, errors.WithMessage(err, "failed to list user videos")
	}
	return videos, nil
}

func assembleWithCounts(videos []*model.Video, counts map[string]dal.ReactionCounts) []dal.VideoWithCounts {
	result := make([]dal.VideoWithCounts, 0, len(videos))
	for _, video := range videos {
		result = append(result, dal.VideoWithCounts{
			Video: dal.VideoData{
				Title:        video.Title,
				Description:  video.Description,
				CreationTime: video.CreationTime,
				Visible:      video.Visible,
				Location:     video.Location,
				FileLocation: video.FileLocation,
			},
			Counts: counts[video.Title],
		})
	}
	return result
}

func toCountCache(counts map[string]dal.ReactionCounts) map[string]cache.CountCache {
	out := make(map[string]cache.CountCache, len(counts))
	for title, c := range counts {
		out[title] = cache.CountCache{LikeCount: c.Likes, DislikeCount: c.Dislikes}
	}
	return out
}

func fromCountCache(counts map[string]cache.CountCache) map[string]dal.ReactionCounts {
	out := make(map[string]dal.ReactionCounts, len(counts))
	for title, c := range counts {
		out[title] = dal.ReactionCounts{Likes: c.LikeCount, Dislikes: c.DislikeCount}
	}
	return out
}

// DeleteVideo removes the video row and cascades reactions and comments
// inside one transaction, so no reader sees a half-deleted video.
func (v *VideoDB) DeleteVideo(ctx context.Context, ownerEmail, title string) error {
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_email = ? AND title = ?", ownerEmail, title).
			Delete(&model.Video{})
		if result.Error != nil {
			return errors.WithMessage(result.Error, "failed to delete video")
		}
		if result.RowsAffected == 0 {
			return errno.VideoNotFoundErr
		}
		if err := tx.Where("owner_email = ? AND title = ?", ownerEmail, title).
			Delete(&model.VideoReaction{}).Error; err != nil {
			return errors.WithMessage(err, "failed to cascade reactions")
		}
		if err := tx.Where("owner_email = ? AND title = ?", ownerEmail, title).
			Delete(&model.VideoComment{}).Error; err != nil {
			return errors.WithMessage(err, "failed to cascade comments")
		}
		return nil
	})
	if err != nil {
		return err
	}
	v.invalidateCounts(ctx, ownerEmail)
	return nil
}

func (v *VideoDB) GetPaginatedVideos(ctx context.Context, page, perPage int64) ([]dal.OwnedVideo, int64, error) {
	var rows []ownedVideoRow
	var totalPages int64
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&model.Video{}).Count(&total).Error; err != nil {
			return errors.WithMessage(err, "failed to count videos")
		}
		totalPages = pagination.PageCount(total, perPage)
		if err := pagination.Validate(page, perPage, total); err != nil {
			return err
		}
		offset, limit := pagination.Window(page, perPage)
		if err := tx.Table("videos").
			Select("videos.*, users.email, users.fullname, users.phone_number, users.photo").
			Joins("LEFT JOIN users ON users.email = videos.user_email").
			Order("videos.creation_time DESC, videos.video_id DESC").
			Limit(int(limit)).Offset(int(offset)).
			Scan(&rows).Error; err != nil {
			return errors.WithMessage(err, "failed to list videos page")
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	result := make([]dal.OwnedVideo, 0, len(rows))
	for _, row := range rows {
		result = append(result, dal.OwnedVideo{Owner: row.owner(), Video: row.video()})
	}
	return result, totalPages, nil
}
