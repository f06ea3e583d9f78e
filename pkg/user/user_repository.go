package user

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		CheckUserExists(ctx context.Context, username, rollNumber, phoneNumber string) (bool, error)
		UpdateUser(ctx context.Context, user *entities.User) error
		UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error
		DeleteUser(ctx context.Context, id string) error
		ListAdmins(ctx context.Context) ([]*entities.User, error)

		AddFriend(ctx context.Context, user, friend *entities.User) error
		GetFriends(ctx context.Context, userID string) ([]*entities.User, error)
		IsFriend(ctx context.Context, userID, friendID string) (bool, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CheckUserExists(ctx context.Context, username, rollNumber, phoneNumber string) (bool, error) {
	var user entities.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR roll_number = ? OR phone_number = ?", username, rollNumber, phoneNumber).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&entities.User{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *userRepository) DeleteUser(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.User{}).Error
}

func (r *userRepository) ListAdmins(ctx context.Context) ([]*entities.User, error) {
	var admins []*entities.User
	if err := r.db.WithContext(ctx).Where("role = ?", domain.RoleAdmin).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *userRepository) AddFriend(ctx context.Context, user, friend *entities.User) error {
	return r.db.WithContext(ctx).Model(user).Association("Friends").Append(friend)
}

func (r *userRepository) GetFriends(ctx context.Context, userID string) ([]*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Preload("Friends").
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		return nil, err
	}
	return user.Friends, nil
}

func (r *userRepository) IsFriend(ctx context.Context, userID, friendID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Table("user_friends").
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
