package user_test

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/entities"
	"CanteenHub-Backend/pkg/jwt"
	"CanteenHub-Backend/pkg/user"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users   map[string]*entities.User
	friends map[string][]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:   map[string]*entities.User{},
		friends: map[string][]string{},
	}
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, u *entities.User) error {
	r.users[u.ID.String()] = u
	return nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) CheckUserExists(ctx context.Context, username, rollNumber, phoneNumber string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.RollNumber == rollNumber || u.PhoneNumber == phoneNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, u *entities.User) error {
	r.users[u.ID.String()] = u
	return nil
}

func (r *fakeUserRepo) UpdateUserFields(ctx context.Context, id string, fields map[string]interface{}) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := fields["refresh_token"].(string); ok {
		u.RefreshToken = v
	}
	if v, ok := fields["verified"].(bool); ok {
		u.Verified = v
	}
	if v, ok := fields["password"].(string); ok {
		u.Password = v
	}
	return nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id string) error {
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) ListAdmins(ctx context.Context) ([]*entities.User, error) {
	var admins []*entities.User
	for _, u := range r.users {
		if u.Role == domain.RoleAdmin {
			admins = append(admins, u)
		}
	}
	return admins, nil
}

func (r *fakeUserRepo) AddFriend(ctx context.Context, u, friend *entities.User) error {
	r.friends[u.ID.String()] = append(r.friends[u.ID.String()], friend.ID.String())
	return nil
}

func (r *fakeUserRepo) GetFriends(ctx context.Context, userID string) ([]*entities.User, error) {
	var friends []*entities.User
	for _, id := range r.friends[userID] {
		friends = append(friends, r.users[id])
	}
	return friends, nil
}

func (r *fakeUserRepo) IsFriend(ctx context.Context, userID, friendID string) (bool, error) {
	for _, id := range r.friends[userID] {
		if id == friendID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) seed(username, role, previousRole string) *entities.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	u := &entities.User{
		ID:           uuid.New(),
		Username:     username,
		RollNumber:   "RN-" + username,
		PhoneNumber:  "99-" + username,
		Email:        username + "@test.local",
		Password:     string(hashed),
		Role:         role,
		PreviousRole: previousRole,
	}
	r.users[u.ID.String()] = u
	return u
}

func newUserService(repo *fakeUserRepo) user.UserService {
	return user.NewUserService(repo, jwt.NewJWTService())
}

func TestRegisterNormalizesAndForcesStudent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserService(repo)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username:    "  Asha  ",
		RollNumber:  "RN-1",
		PhoneNumber: "12345",
		Email:       "asha@test.local",
		Password:    "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "asha", res.Username)
	assert.Equal(t, domain.RoleStudent, res.Role)
}

func TestRegisterDuplicate(t *testing.T) {
	repo := newFakeUserRepo()
	repo.seed("asha", domain.RoleStudent, "")
	svc := newUserService(repo)

	_, err := svc.Register(context.Background(), domain.RegisterRequest{
		Username:    "ASHA",
		RollNumber:  "RN-2",
		PhoneNumber: "67890",
		Email:       "other@test.local",
		Password:    "secret123",
	})
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLoginBlockedUserRejected(t *testing.T) {
	repo := newFakeUserRepo()
	u := repo.seed("asha", domain.RoleStudent, "")
	u.Blocked = true
	svc := newUserService(repo)

	// Blocked wins even with the correct password.
	_, err := svc.Login(context.Background(), domain.LoginRequest{Username: "asha", Password: "secret123"})
	require.ErrorIs(t, err, domain.ErrUserBlocked)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	repo.seed("asha", domain.RoleStudent, "")
	svc := newUserService(repo)

	_, err := svc.Login(context.Background(), domain.LoginRequest{Username: "asha", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrCredentialInvalid)
}

func TestLoginIssuesAndPersistsTokens(t *testing.T) {
	repo := newFakeUserRepo()
	u := repo.seed("asha", domain.RoleStudent, "")
	svc := newUserService(repo)

	res, err := svc.Login(context.Background(), domain.LoginRequest{Username: "asha", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, res.RefreshToken, u.RefreshToken)
}

func TestRefreshTokenRotation(t *testing.T) {
	repo := newFakeUserRepo()
	repo.seed("asha", domain.RoleStudent, "")
	svc := newUserService(repo)
	ctx := context.Background()

	login, err := svc.Login(ctx, domain.LoginRequest{Username: "asha", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// The old token no longer matches the stored one.
	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	require.ErrorIs(t, err, domain.ErrRefreshTokenInvalid)
}

func TestUpdateRoleRecordsPreviousRoleOnce(t *testing.T) {
	repo := newFakeUserRepo()
	u := repo.seed("asha", domain.RoleStudent, "")
	svc := newUserService(repo)
	ctx := context.Background()

	require.NoError(t, svc.UpdateRole(ctx, domain.UpdateRoleRequest{Username: "asha", Role: domain.RoleStaff}))
	assert.Equal(t, domain.RoleStaff, u.Role)
	assert.Equal(t, domain.RoleStudent, u.PreviousRole)

	// Later promotions keep the original previous role.
	require.NoError(t, svc.UpdateRole(ctx, domain.UpdateRoleRequest{Username: "asha", Role: domain.RoleAdmin}))
	assert.Equal(t, domain.RoleAdmin, u.Role)
	assert.Equal(t, domain.RoleStudent, u.PreviousRole)
}

func TestDeleteUserPermanentAdminGuard(t *testing.T) {
	repo := newFakeUserRepo()
	root := repo.seed("root", domain.RoleAdmin, domain.RoleAdmin)
	promoted := repo.seed("boss", domain.RoleAdmin, domain.RoleStudent)
	svc := newUserService(repo)
	ctx := context.Background()

	err := svc.DeleteUser(ctx, domain.DeleteUserRequest{Username: "root"})
	require.ErrorIs(t, err, domain.ErrPermanentAdmin)
	_, ok := repo.users[root.ID.String()]
	assert.True(t, ok)

	// A promoted admin is still deletable.
	require.NoError(t, svc.DeleteUser(ctx, domain.DeleteUserRequest{Username: "boss"}))
	_, ok = repo.users[promoted.ID.String()]
	assert.False(t, ok)
}

func TestToggleBlockUser(t *testing.T) {
	repo := newFakeUserRepo()
	u := repo.seed("asha", domain.RoleStudent, "")
	svc := newUserService(repo)
	ctx := context.Background()

	blocked, err := svc.ToggleBlockUser(ctx, domain.ToggleBlockUserRequest{Username: "asha"})
	require.NoError(t, err)
	assert.True(t, blocked)
	assert.True(t, u.Blocked)

	blocked, err = svc.ToggleBlockUser(ctx, domain.ToggleBlockUserRequest{Username: "asha"})
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestAddFriendGuards(t *testing.T) {
	repo := newFakeUserRepo()
	u := repo.seed("asha", domain.RoleStudent, "")
	repo.seed("ravi", domain.RoleStudent, "")
	svc := newUserService(repo)
	ctx := context.Background()

	err := svc.AddFriend(ctx, domain.AddFriendRequest{Username: "asha"}, u.ID.String())
	require.ErrorIs(t, err, domain.ErrFriendSelf)

	require.NoError(t, svc.AddFriend(ctx, domain.AddFriendRequest{Username: "ravi"}, u.ID.String()))

	err = svc.AddFriend(ctx, domain.AddFriendRequest{Username: "ravi"}, u.ID.String())
	require.ErrorIs(t, err, domain.ErrAlreadyFriends)
}

func TestAddFriendUnknownUser(t *testing.T) {
	repo := newFakeUserRepo()
	u := repo.seed("asha", domain.RoleStudent, "")
	svc := newUserService(repo)

	err := svc.AddFriend(context.Background(), domain.AddFriendRequest{Username: "ghost"}, u.ID.String())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
