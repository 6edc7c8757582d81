package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"cliptube/cmd/catalog/dal"
	"cliptube/pkg/constants"
	"cliptube/pkg/errno"
)

type VideoService struct {
	ctx   context.Context
	store dal.VideoDatabase
}

func NewVideoService(ctx context.Context, store dal.VideoDatabase) *VideoService {
	return &VideoService{ctx: ctx, store: store}
}

// PublishVideo stamps the creation time when the caller left it zero and
// inserts the video.
func (s *VideoService) PublishVideo(ownerEmail string, data dal.VideoData) error {
	if ownerEmail == "" {
		return errno.ParamErr.WithMessage("owner email is required")
	}
	if strings.TrimSpace(data.Title) == "" {
		return errno.ParamErr.WithMessage("video title cannot be empty")
	}
	if data.CreationTime.IsZero() {
		data.CreationTime = time.Now()
	}
	if err := s.store.AddVideo(s.ctx, ownerEmail, data); err != nil {
		logrus.Errorf("publish video failed for %s: %v", ownerEmail, err)
		return err
	}
	return nil
}

func (s *VideoService) ListUserVideos(ownerEmail string) ([]dal.VideoWithCounts, error) {
	if ownerEmail == "" {
		return nil, errno.ParamErr.WithMessage("owner email is required")
	}
	return s.store.ListUserVideos(s.ctx, ownerEmail)
}

func (s *VideoService) DeleteVideo(ownerEmail, title string) error {
	if ownerEmail == "" || title == "" {
		return errno.ParamErr.WithMessage("owner email and title are required")
	}
	if err := s.store.DeleteVideo(s.ctx, ownerEmail, title); err != nil {
		logrus.Errorf("delete video %s/%s failed: %v", ownerEmail, title, err)
		return err
	}
	return nil
}

// GetPaginatedVideos lists the whole catalog most recent first in
// 0-indexed pages. A zero perPage falls back to the default page size.
func (s *VideoService) GetPaginatedVideos(page, perPage int64) ([]dal.OwnedVideo, int64, error) {
	if perPage == 0 {
		perPage = constants.DefaultPerPage
	}
	return s.store.GetPaginatedVideos(s.ctx, page, perPage)
}
