package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister        = "user registered successfully"
	MessageSuccessLogin           = "login successful"
	MessageSuccessLogout          = "logout successful"
	MessageSuccessRefreshToken    = "token refreshed successfully"
	MessageSuccessGetMe           = "user profile retrieved successfully"
	MessageSuccessUpdateUser      = "user profile updated successfully"
	MessageSuccessUpdateRole      = "user role updated successfully"
	MessageSuccessToggleBlockUser = "user block status toggled successfully"
	MessageSuccessDeleteUser      = "user deleted successfully"
	MessageSuccessAddFriend       = "friend added successfully"
	MessageSuccessGetFriends      = "friends retrieved successfully"
	MessageSuccessSendVerify      = "verification email sent successfully"
	MessageSuccessVerifyEmail     = "email verified successfully"
	MessageSuccessForgotPassword  = "password reset email sent successfully"
	MessageSuccessResetPassword   = "password reset successfully"

	MessageFailedRegister        = "failed to register user"
	MessageFailedLogin           = "failed to login"
	MessageFailedLogout          = "failed to logout"
	MessageFailedRefreshToken    = "failed to refresh token"
	MessageFailedGetMe           = "failed to retrieve user profile"
	MessageFailedUpdateUser      = "failed to update user profile"
	MessageFailedUpdateRole      = "failed to update user role"
	MessageFailedToggleBlockUser = "failed to toggle user block status"
	MessageFailedDeleteUser      = "failed to delete user"
	MessageFailedAddFriend       = "failed to add friend"
	MessageFailedGetFriends      = "failed to retrieve friends"
	MessageFailedSendVerify      = "failed to send verification email"
	MessageFailedVerifyEmail     = "failed to verify email"
	MessageFailedForgotPassword  = "failed to send password reset email"
	MessageFailedResetPassword   = "failed to reset password"

	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("username, roll number or phone number already registered")
	ErrCredentialInvalid   = errors.New("invalid username or password")
	ErrUserBlocked         = errors.New("account is blocked")
	ErrInvalidRole         = errors.New("invalid role")
	ErrPermanentAdmin      = errors.New("permanent admin cannot be deleted")
	ErrAlreadyFriends      = errors.New("users are already friends")
	ErrFriendSelf          = errors.New("cannot add yourself as a friend")
	ErrRefreshTokenInvalid = errors.New("refresh token invalid")
)

type (
	RegisterRequest struct {
		Username    string `json:"username" validate:"required,min=3,max=30"`
		RollNumber  string `json:"roll_number" validate:"required"`
		PhoneNumber string `json:"phone_number" validate:"required,min=10,max=15"`
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required,min=8"`
	}

	RegisterResponse struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		ID           string `json:"id"`
		Username     string `json:"username"`
		Role         string `json:"role"`
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}

	UpdateUserRequest struct {
		Email       string `json:"email" validate:"omitempty,email"`
		PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=15"`
		Password    string `json:"password" validate:"omitempty,min=8"`
	}

	UpdateRoleRequest struct {
		Username string `json:"username" validate:"required"`
		Role     string `json:"role" validate:"required,oneof=student staff admin"`
	}

	ToggleBlockUserRequest struct {
		Username string `json:"username" validate:"required"`
	}

	DeleteUserRequest struct {
		Username string `json:"username" validate:"required"`
	}

	AddFriendRequest struct {
		Username string `json:"username" validate:"required"`
	}

	SendVerifyEmailRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ForgotPasswordRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ResetPasswordRequest struct {
		Token    string `json:"token" validate:"required"`
		Password string `json:"password" validate:"required,min=8"`
	}

	UserResponse struct {
		ID             string    `json:"id"`
		Username       string    `json:"username"`
		RollNumber     string    `json:"roll_number"`
		PhoneNumber    string    `json:"phone_number"`
		Email          string    `json:"email"`
		Role           string    `json:"role"`
		PreviousRole   string    `json:"previous_role,omitempty"`
		WalletBalance  float64   `json:"wallet_balance"`
		Blocked        bool      `json:"blocked"`
		CancelledCount int       `json:"cancelled_count"`
		Verified       bool      `json:"verified"`
		CreatedAt      time.Time `json:"created_at"`
	}

	FriendResponse struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
)
