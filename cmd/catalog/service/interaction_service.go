package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"cliptube/cmd/catalog/dal"
	"cliptube/pkg/constants"
	"cliptube/pkg/errno"
)

type InteractionService struct {
	ctx   context.Context
	store dal.VideoDatabase
}

func NewInteractionService(ctx context.Context, store dal.VideoDatabase) *InteractionService {
	return &InteractionService{ctx: ctx, store: store}
}

func (s *InteractionService) ReactVideo(reactorEmail, ownerEmail, title string, reaction dal.Reaction) error {
	if reactorEmail == "" || ownerEmail == "" || title == "" {
		return errno.ParamErr.WithMessage("reactor, owner and title are required")
	}
	if err := s.store.ReactVideo(s.ctx, reactorEmail, ownerEmail, title, reaction); err != nil {
		logrus.Errorf("react %s on %s/%s failed: %v", reaction, ownerEmail, title, err)
		return err
	}
	return nil
}

func (s *InteractionService) GetVideoReaction(reactorEmail, ownerEmail, title string) (dal.Reaction, bool, error) {
	return s.store.GetVideoReaction(s.ctx, reactorEmail, ownerEmail, title)
}

func (s *InteractionService) DeleteReaction(reactorEmail, ownerEmail, title string) error {
	return s.store.DeleteReaction(s.ctx, reactorEmail, ownerEmail, title)
}

func (s *InteractionService) CommentVideo(commenterEmail, ownerEmail, title, content string) error {
	if err := validateCommentContent(content); err != nil {
		return err
	}
	if commenterEmail == "" || ownerEmail == "" || title == "" {
		return errno.ParamErr.WithMessage("commenter, owner and title are required")
	}
	if err := s.store.CommentVideo(s.ctx, commenterEmail, ownerEmail, title, content); err != nil {
		logrus.Errorf("comment on %s/%s failed: %v", ownerEmail, title, err)
		return err
	}
	return nil
}

func (s *InteractionService) GetComments(ownerEmail, title string) ([]dal.UserRecord, []dal.Comment, error) {
	return s.store.GetComments(s.ctx, ownerEmail, title)
}

func validateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return errno.ParamErr.WithMessage("comment content cannot be empty")
	}
	if utf8.RuneCountInString(content) > constants.MaxCommentLength {
		return errno.CommentTooLongErr
	}
	return nil
}
