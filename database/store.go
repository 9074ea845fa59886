package database

import (
	"errors"

	"gorm.io/gorm"

	"chat-service/messenger"
	"chat-service/model"
)

// Store is the gorm-backed persistence collaborator for the messaging core.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ messenger.Store = (*Store)(nil)

func (s *Store) UserByID(id uint) (*model.User, error) {
	user := new(model.User)
	if err := s.db.First(user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, messenger.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *Store) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := s.db.Model(&model.Follow{}).
		Where(&model.Follow{FollowerID: followerID, FollowingID: followingID}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) FollowerIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.Model(&model.Follow{}).
		Where(&model.Follow{FollowingID: userID}).
		Pluck("follower_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *Store) SetOnline(userID uint, online bool) error {
	return s.db.Model(&model.User{}).
		Where("id = ?", userID).
		Update("is_online", online).Error
}

func (s *Store) CreateMessage(message *model.Message) error {
	return s.db.Create(message).Error
}

func (s *Store) MessageByID(id uint) (*model.Message, error) {
	message := new(model.Message)
	err := s.db.Preload("Sender").Preload("Receiver").First(message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, messenger.ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

func (s *Store) MarkMessageDeleted(id uint) error {
	return s.db.Model(&model.Message{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (s *Store) betweenQuery(userID, otherUserID uint) *gorm.DB {
	return s.db.Model(&model.Message{}).
		Where("is_deleted = ?", false).
		Where(
			s.db.Where("sender_id = ? AND receiver_id = ?", userID, otherUserID).
				Or("sender_id = ? AND receiver_id = ?", otherUserID, userID),
		)
}

func (s *Store) MessagesBetween(userID, otherUserID uint, offset, limit int) ([]model.Message, int64, error) {
	var total int64
	if err := s.betweenQuery(userID, otherUserID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []model.Message
	err := s.betweenQuery(userID, otherUserID).
		Preload("Sender").Preload("Receiver").
		Order("created_at asc, id asc").
		Offset(offset).Limit(limit).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (s *Store) MessagesInvolving(userID uint) ([]model.Message, error) {
	var messages []model.Message
	err := s.db.Model(&model.Message{}).
		Where("is_deleted = ?", false).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Preload("Sender").Preload("Receiver").
		Order("created_at desc, id desc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
