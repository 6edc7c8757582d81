package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"cliptube/cmd/model"
	"cliptube/cmd/social/dal"
	"cliptube/pkg/errno"
	"cliptube/pkg/pagination"
	"cliptube/pkg/utils"
)

func (f *FriendDB) SendMessage(ctx context.Context, fromEmail, toEmail, content string) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		friends, err := areFriends(tx, fromEmail, toEmail)
		if err != nil {
			return err
		}
		if !friends {
			return errno.NotFriendsErr
		}
		if err := tx.Create(&model.PrivateMessage{
			MessageID:    utils.GenerateMessageID(),
			FromEmail:    fromEmail,
			ToEmail:      toEmail,
			Content:      content,
			CreationTime: time.Now(),
		}).Error; err != nil {
			return errors.WithMessage(err, "failed to insert message")
		}
		return nil
	})
}

func (f *FriendDB) GetConversation(ctx context.Context, email1, email2 string, page, perPage int64) ([]dal.Message, int64, error) {
	var rows []model.PrivateMessage
	var totalPages int64
	err := f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// reused for count and page query, so pin the conditions
		between := tx.Model(&model.PrivateMessage{}).
			Where("(from_email = ? AND to_email = ?) OR (from_email = ? AND to_email = ?)",
				email1, email2, email2, email1).
			Session(&gorm.Session{})
		var total int64
		if err := between.Count(&total).Error; err != nil {
			return errors.WithMessage(err, "failed to count messages")
		}
		totalPages = pagination.PageCount(total, perPage)
		if err := pagination.ValidateConversation(page, perPage, total); err != nil {
			return err
		}
		offset, limit := pagination.Window(page, perPage)
		if err := between.
			Order("creation_time DESC, message_id DESC").
			Limit(int(limit)).Offset(int(offset)).
			Find(&rows).Error; err != nil {
			return errors.WithMessage(err, "failed to list messages page")
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	messages := make([]dal.Message, 0, len(rows))
	for _, row := range rows {
		messages = append(messages, toMessage(row))
	}
	return messages, totalPages, nil
}

// GetConversations walks the user's messages newest first and keeps the
// first one per peer.
func (f *FriendDB) GetConversations(ctx context.Context, userEmail string) ([]dal.Conversation, error) {
	var rows []model.PrivateMessage
	if err := f.db.WithContext(ctx).
		Where("from_email = ? OR to_email = ?", userEmail, userEmail).
		Order("creation_time DESC, message_id DESC").
		Find(&rows).Error; err != nil {
		return nil, errors.WithMessage(err, "failed to list conversations")
	}

	seen := make(map[string]bool)
	conversations := make([]dal.Conversation, 0)
	for _, row := range rows {
		peer := row.FromEmail
		if peer == userEmail {
			peer = row.ToEmail
		}
		if seen[peer] {
			continue
		}
		seen[peer] = true
		conversations = append(conversations, dal.Conversation{
			PeerEmail:   peer,
			LastMessage: toMessage(row),
		})
	}
	return conversations, nil
}

func toMessage(row model.PrivateMessage) dal.Message {
	return dal.Message{
		FromEmail:    row.FromEmail,
		ToEmail:      row.ToEmail,
		Content:      row.Content,
		CreationTime: row.CreationTime,
	}
}
