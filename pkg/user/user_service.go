package user

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/entities"
	"CanteenHub-Backend/internal/utils"
	"CanteenHub-Backend/internal/utils/mailing"
	"CanteenHub-Backend/pkg/jwt"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Logout(ctx context.Context, userID string) error
		RefreshToken(ctx context.Context, refreshToken string) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) error
		UpdateRole(ctx context.Context, req domain.UpdateRoleRequest) error
		ToggleBlockUser(ctx context.Context, req domain.ToggleBlockUserRequest) (bool, error)
		DeleteUser(ctx context.Context, req domain.DeleteUserRequest) error
		AddFriend(ctx context.Context, req domain.AddFriendRequest, userID string) error
		GetFriends(ctx context.Context, userID string) ([]domain.FriendResponse, error)
		SendVerificationEmail(ctx context.Context, req domain.SendVerifyEmailRequest) error
		VerifyEmail(ctx context.Context, token string) error
		ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error
		ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	username := normalizeUsername(req.Username)

	exists, err := s.userRepository.CheckUserExists(ctx, username, req.RollNumber, req.PhoneNumber)
	if err != nil {
		return domain.RegisterResponse{}, err
	}
	if exists {
		return domain.RegisterResponse{}, domain.ErrUserAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	// Registration always creates a student; promotion is a separate admin action.
	user := &entities.User{
		ID:          uuid.New(),
		Username:    username,
		RollNumber:  req.RollNumber,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Password:    string(hashed),
		Role:        domain.RoleStudent,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.RegisterResponse{}, err
	}

	return domain.RegisterResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, normalizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialInvalid
		}
		return domain.LoginResponse{}, err
	}

	// Blocked accounts are rejected regardless of credential correctness.
	if user.Blocked {
		return domain.LoginResponse{}, domain.ErrUserBlocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialInvalid
	}

	accessToken := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return domain.LoginResponse{}, err
	}

	if err := s.userRepository.UpdateUserFields(ctx, user.ID.String(), map[string]interface{}{
		"refresh_token": refreshToken,
	}); err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Role:         user.Role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *userService) Logout(ctx context.Context, userID string) error {
	return s.userRepository.UpdateUserFields(ctx, userID, map[string]interface{}{
		"refresh_token": "",
	})
}

func (s *userService) RefreshToken(ctx context.Context, refreshToken string) (domain.LoginResponse, error) {
	userID, err := s.jwtService.GetUserIDByRefreshToken(refreshToken)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.LoginResponse{}, domain.ErrRefreshTokenInvalid
	}

	// The refresh token must match the one stored server-side.
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return domain.LoginResponse{}, domain.ErrRefreshTokenInvalid
	}

	accessToken := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	newRefresh, err := s.jwtService.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return domain.LoginResponse{}, err
	}

	if err := s.userRepository.UpdateUserFields(ctx, user.ID.String(), map[string]interface{}{
		"refresh_token": newRefresh,
	}); err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		ID:           user.ID.String(),
		Username:     user.Username,
		Role:         user.Role,
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return toUserResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, req domain.UpdateUserRequest, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if req.Email != "" {
		user.Email = req.Email
		user.Verified = false
	}
	if req.PhoneNumber != "" {
		user.PhoneNumber = req.PhoneNumber
	}
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hashed)
	}

	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) UpdateRole(ctx context.Context, req domain.UpdateRoleRequest) error {
	user, err := s.userRepository.GetUserByUsername(ctx, normalizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	// previous_role is recorded only the first time the role leaves "student".
	if user.PreviousRole == "" && user.Role == domain.RoleStudent && req.Role != domain.RoleStudent {
		user.PreviousRole = user.Role
	}
	user.Role = req.Role

	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) ToggleBlockUser(ctx context.Context, req domain.ToggleBlockUserRequest) (bool, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, normalizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, domain.ErrUserNotFound
		}
		return false, err
	}

	user.Blocked = !user.Blocked
	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return false, err
	}
	return user.Blocked, nil
}

func (s *userService) DeleteUser(ctx context.Context, req domain.DeleteUserRequest) error {
	user, err := s.userRepository.GetUserByUsername(ctx, normalizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	// A permanently seeded admin keeps the record alive.
	if user.Role == domain.RoleAdmin && user.PreviousRole == domain.RoleAdmin {
		return domain.ErrPermanentAdmin
	}

	return s.userRepository.DeleteUser(ctx, user.ID.String())
}

func (s *userService) AddFriend(ctx context.Context, req domain.AddFriendRequest, userID string) error {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	friend, err := s.userRepository.GetUserByUsername(ctx, normalizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	if friend.ID == user.ID {
		return domain.ErrFriendSelf
	}

	already, err := s.userRepository.IsFriend(ctx, user.ID.String(), friend.ID.String())
	if err != nil {
		return err
	}
	if already {
		return domain.ErrAlreadyFriends
	}

	return s.userRepository.AddFriend(ctx, user, friend)
}

func (s *userService) GetFriends(ctx context.Context, userID string) ([]domain.FriendResponse, error) {
	friends, err := s.userRepository.GetFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]domain.FriendResponse, 0, len(friends))
	for _, friend := range friends {
		result = append(result, domain.FriendResponse{
			ID:       friend.ID.String(),
			Username: friend.Username,
			Email:    friend.Email,
		})
	}
	return result, nil
}

func (s *userService) SendVerificationEmail(ctx context.Context, req domain.SendVerifyEmailRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenMail(map[string]any{
		"email": user.Email,
	}, time.Hour*24)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/api/v1/users/verify?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf("<p>Hi %s,</p><p>Verify your canteen account by clicking <a href=%q>here</a>.</p>", user.Username, link)
	return mailing.SendMail(user.Email, "Verify your account", body)
}

func (s *userService) VerifyEmail(ctx context.Context, token string) error {
	claims, err := s.jwtService.ValidateTokenMail(token)
	if err != nil {
		return err
	}

	email, _ := claims["email"].(string)
	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.ErrUserNotFound
	}

	return s.userRepository.UpdateUserFields(ctx, user.ID.String(), map[string]interface{}{
		"verified": true,
	})
}

func (s *userService) ForgotPassword(ctx context.Context, req domain.ForgotPasswordRequest) error {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Do not reveal whether the email exists.
			log.Printf("forgot password requested for unknown email %s", req.Email)
			return nil
		}
		return err
	}

	token, err := s.jwtService.GenerateTokenMail(map[string]any{
		"email": user.Email,
	}, time.Minute*30)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", utils.GetConfig("APP_URL"), token)
	body := fmt.Sprintf("<p>Hi %s,</p><p>Reset your password by clicking <a href=%q>here</a>. The link expires in 30 minutes.</p>", user.Username, link)
	return mailing.SendMail(user.Email, "Reset your password", body)
}

func (s *userService) ResetPassword(ctx context.Context, req domain.ResetPasswordRequest) error {
	claims, err := s.jwtService.ValidateTokenMail(req.Token)
	if err != nil {
		return err
	}

	email, _ := claims["email"].(string)
	user, err := s.userRepository.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.ErrUserNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return s.userRepository.UpdateUserFields(ctx, user.ID.String(), map[string]interface{}{
		"password": string(hashed),
	})
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:             user.ID.String(),
		Username:       user.Username,
		RollNumber:     user.RollNumber,
		PhoneNumber:    user.PhoneNumber,
		Email:          user.Email,
		Role:           user.Role,
		PreviousRole:   user.PreviousRole,
		WalletBalance:  user.WalletBalance,
		Blocked:        user.Blocked,
		CancelledCount: user.CancelledCount,
		Verified:       user.Verified,
		CreatedAt:      user.CreatedAt,
	}
}
