package service

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"cliptube/cmd/social/dal"
	"cliptube/pkg/constants"
	"cliptube/pkg/errno"
)

type SocialService struct {
	ctx   context.Context
	store dal.FriendDatabase
}

func NewSocialService(ctx context.Context, store dal.FriendDatabase) *SocialService {
	return &SocialService{ctx: ctx, store: store}
}

func (s *SocialService) CreateFriendRequest(fromEmail, toEmail string) error {
	if err := validatePair(fromEmail, toEmail); err != nil {
		return err
	}
	if err := s.store.CreateFriendRequest(s.ctx, fromEmail, toEmail); err != nil {
		logrus.Errorf("friend request %s -> %s failed: %v", fromEmail, toEmail, err)
		return err
	}
	return nil
}

func (s *SocialService) AcceptFriendRequest(fromEmail, toEmail string) error {
	if err := validatePair(fromEmail, toEmail); err != nil {
		return err
	}
	return s.store.AcceptFriendRequest(s.ctx, fromEmail, toEmail)
}

func (s *SocialService) RejectFriendRequest(fromEmail, toEmail string) error {
	if err := validatePair(fromEmail, toEmail); err != nil {
		return err
	}
	return s.store.RejectFriendRequest(s.ctx, fromEmail, toEmail)
}

func (s *SocialService) GetFriendRequests(userEmail string) ([]string, error) {
	if userEmail == "" {
		return nil, errno.ParamErr.WithMessage("user email is required")
	}
	return s.store.GetFriendRequests(s.ctx, userEmail)
}

func (s *SocialService) GetFriends(userEmail string) ([]string, error) {
	if userEmail == "" {
		return nil, errno.ParamErr.WithMessage("user email is required")
	}
	return s.store.GetFriends(s.ctx, userEmail)
}

func (s *SocialService) AreFriends(email1, email2 string) (bool, error) {
	if email1 == "" || email2 == "" {
		return false, errno.ParamErr.WithMessage("both emails are required")
	}
	return s.store.AreFriends(s.ctx, email1, email2)
}

func (s *SocialService) ExistsFriendRequest(fromEmail, toEmail string) (bool, error) {
	if fromEmail == "" || toEmail == "" {
		return false, errno.ParamErr.WithMessage("both emails are required")
	}
	return s.store.ExistsFriendRequest(s.ctx, fromEmail, toEmail)
}

func (s *SocialService) SendMessage(fromEmail, toEmail, content string) error {
	if err := validatePair(fromEmail, toEmail); err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return errno.ParamErr.WithMessage("message content cannot be empty")
	}
	if err := s.store.SendMessage(s.ctx, fromEmail, toEmail, content); err != nil {
		logrus.Errorf("message %s -> %s failed: %v", fromEmail, toEmail, err)
		return err
	}
	return nil
}

// GetConversation pages the two users' message history most recent
// first. A zero perPage falls back to the default page size.
func (s *SocialService) GetConversation(email1, email2 string, page, perPage int64) ([]dal.Message, int64, error) {
	if email1 == "" || email2 == "" {
		return nil, 0, errno.ParamErr.WithMessage("both emails are required")
	}
	if perPage == 0 {
		perPage = constants.DefaultPerPage
	}
	return s.store.GetConversation(s.ctx, email1, email2, page, perPage)
}

func (s *SocialService) GetConversations(userEmail string) ([]dal.Conversation, error) {
	if userEmail == "" {
		return nil, errno.ParamErr.WithMessage("user email is required")
	}
	return s.store.GetConversations(s.ctx, userEmail)
}

func validatePair(fromEmail, toEmail string) error {
	if fromEmail == "" || toEmail == "" {
		return errno.ParamErr.WithMessage("both emails are required")
	}
	if fromEmail == toEmail {
		return errno.ParamErr.WithMessage("emails must differ")
	}
	return nil
}
