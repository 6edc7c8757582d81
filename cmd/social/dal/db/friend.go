package db

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cliptube/cmd/model"
	"cliptube/pkg/errno"
)

// orderedPair sorts the two emails so a friendship row covers both
// directions with one key.
func orderedPair(email1, email2 string) (string, string) {
	if email1 > email2 {
		return email2, email1
	}
	return email1, email2
}

func (f *FriendDB) CreateFriendRequest(ctx context.Context, fromEmail, toEmail string) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		friends, err := areFriends(tx, fromEmail, toEmail)
		if err != nil {
			return err
		}
		if friends {
			return errno.AlreadyFriendsErr
		}
		// re-sending an open request keeps the original timestamp
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.FriendRequest{
				FromEmail:    fromEmail,
				ToEmail:      toEmail,
				CreationTime: time.Now(),
			}).Error; err != nil {
			return errors.WithMessage(err, "failed to create friend request")
		}
		return nil
	})
}

func (f *FriendDB) AcceptFriendRequest(ctx context.Context, fromEmail, toEmail string) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := consumeRequest(tx, fromEmail, toEmail); err != nil {
			return err
		}
		userA, userB := orderedPair(fromEmail, toEmail)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Friendship{UserA: userA, UserB: userB}).Error; err != nil {
			return errors.WithMessage(err, "failed to record friendship")
		}
		return nil
	})
}

func (f *FriendDB) RejectFriendRequest(ctx context.Context, fromEmail, toEmail string) error {
	return f.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return consumeRequest(tx, fromEmail, toEmail)
	})
}

// consumeRequest deletes the pending request; zero rows means there was
// nothing to consume.
func consumeRequest(tx *gorm.DB, fromEmail, toEmail string) error {
	result := tx.Where("from_email = ? AND to_email = ?", fromEmail, toEmail).
		Delete(&model.FriendRequest{})
	if result.Error != nil {
		return errors.WithMessage(result.Error, "failed to delete friend request")
	}
	if result.RowsAffected == 0 {
		return errno.FriendRequestNotFoundErr
	}
	return nil
}

func (f *FriendDB) GetFriendRequests(ctx context.Context, userEmail string) ([]string, error) {
	var senders []string
	if err := f.db.WithContext(ctx).Model(&model.FriendRequest{}).
		Where("to_email = ?", userEmail).
		Order("creation_time DESC").
		Pluck("from_email", &senders).Error; err != nil {
		return nil, errors.WithMessage(err, "failed to list friend requests")
	}
	return senders, nil
}

func (f *FriendDB) GetFriends(ctx context.Context, userEmail string) ([]string, error) {
	var rows []model.Friendship
	if err := f.db.WithContext(ctx).
		Where("user_a = ? OR user_b = ?", userEmail, userEmail).
		Find(&rows).Error; err != nil {
		return nil, errors.WithMessage(err, "failed to list friends")
	}
	friends := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.UserA == userEmail {
			friends = append(friends, row.UserB)
		} else {
			friends = append(friends, row.UserA)
		}
	}
	return friends, nil
}

func (f *FriendDB) AreFriends(ctx context.Context, email1, email2 string) (bool, error) {
	return areFriends(f.db.WithContext(ctx), email1, email2)
}

func areFriends(tx *gorm.DB, email1, email2 string) (bool, error) {
	userA, userB := orderedPair(email1, email2)
	var count int64
	if err := tx.Model(&model.Friendship{}).
		Where("user_a = ? AND user_b = ?", userA, userB).
		Count(&count).Error; err != nil {
		return false, errors.WithMessage(err, "failed to check friendship")
	}
	return count > 0, nil
}

func (f *FriendDB) ExistsFriendRequest(ctx context.Context, fromEmail, toEmail string) (bool, error) {
	var count int64
	if err := f.db.WithContext(ctx).Model(&model.FriendRequest{}).
		Where("from_email = ? AND to_email = ?", fromEmail, toEmail).
		Count(&count).Error; err != nil {
		return false, errors.WithMessage(err, "failed to check friend request")
	}
	return count > 0, nil
}
