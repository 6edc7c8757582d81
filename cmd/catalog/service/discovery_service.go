package service

import (
	"context"
	"strings"

	"cliptube/cmd/catalog/dal"
	"cliptube/pkg/errno"
)

// DiscoveryService covers the read-only views over the catalog: search
// and the engagement ranking.
type DiscoveryService struct {
	ctx   context.Context
	store dal.VideoDatabase
}

func NewDiscoveryService(ctx context.Context, store dal.VideoDatabase) *DiscoveryService {
	return &DiscoveryService{ctx: ctx, store: store}
}

func (s *DiscoveryService) SearchVideos(query string) ([]dal.OwnedVideo, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errno.ParamErr.WithMessage("search query cannot be blank")
	}
	return s.store.SearchVideos(s.ctx, query)
}

func (s *DiscoveryService) ListTopVideos() ([]dal.RankedVideo, error) {
	return s.store.ListTopVideos(s.ctx)
}
