package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"cliptube/cmd/catalog/dal"
	"cliptube/cmd/model"
	"cliptube/pkg/utils"
)

func (v *VideoDB) CommentVideo(ctx context.Context, commenterEmail, ownerEmail, title, content string) error {
	return v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := videoExists(tx, ownerEmail, title); err != nil {
			return err
		}
		comment := &model.VideoComment{
			CommentID:    utils.GenerateCommentID(),
			OwnerEmail:   ownerEmail,
			Title:        title,
			UserEmail:    commenterEmail,
			Content:      content,
			CreationTime: time.Now(),
		}
		if err := tx.Create(comment).Error; err != nil {
			return errors.WithMessage(err, "failed to insert comment")
		}
		return nil
	})
}

// GetComments returns commenters and comments as parallel slices, newest
// comment first. Repeat commenters appear once per comment.
func (v *VideoDB) GetComments(ctx context.Context, ownerEmail, title string) ([]dal.UserRecord, []dal.Comment, error) {
	var comments []*model.VideoComment
	if err := v.db.WithContext(ctx).Model(&model.VideoComment{}).
		Where("owner_email = ? AND title = ?", ownerEmail, title).
		Order("creation_time DESC, comment_id DESC").
		Find(&comments).Error; err != nil {
		return nil, nil, errors.WithMessage(err, "failed to list comments")
	}
	if len(comments) == 0 {
		return []dal.UserRecord{}, []dal.Comment{}, nil
	}

	emails := make([]string, 0, len(comments))
	for _, comment := range comments {
		emails = append(emails, comment.UserEmail)
	}
	var users []*model.User
	if err := v.db.WithContext(ctx).Model(&model.User{}).
		Where("email IN ?", emails).
		Find(&users).Error; err != nil {
		return nil, nil, errors.WithMessage(err, "failed to load commenters")
	}
	byEmail := make(map[string]*model.User, len(users))
	for _, user := range users {
		byEmail[user.Email] = user
	}

	records := make([]dal.UserRecord, 0, len(comments))
	result := make([]dal.Comment, 0, len(comments))
	for _, comment := range comments {
		record := dal.UserRecord{Email: comment.UserEmail}
		if user, ok := byEmail[comment.UserEmail]; ok {
			record.Fullname = user.Fullname
			record.PhoneNumber = user.PhoneNumber
			record.Photo = user.Photo
		}
		records = append(records, record)
		result = append(result, dal.Comment{
			Content:      comment.Content,
			CreationTime: comment.CreationTime,
		})
	}
	return records, result, nil
}
