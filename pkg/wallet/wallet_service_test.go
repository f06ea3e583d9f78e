package wallet_test

import (
	"CanteenHub-Backend/domain"
	"CanteenHub-Backend/entities"
	"CanteenHub-Backend/pkg/wallet"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeWalletRepo applies the same conditional-debit contract as the real
// repository: a debit that would overdraw updates nothing.
type fakeWalletRepo struct {
	users map[string]*entities.User
}

func (r *fakeWalletRepo) GetUser(ctx context.Context, userID string) (*entities.User, error) {
	if u, ok := r.users[userID]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeWalletRepo) Credit(ctx context.Context, userID string, amount float64) error {
	if u, ok := r.users[userID]; ok {
		u.WalletBalance += amount
	}
	return nil
}

func (r *fakeWalletRepo) Debit(ctx context.Context, userID string, amount float64) (bool, error) {
	u, ok := r.users[userID]
	if !ok || u.WalletBalance < amount {
		return false, nil
	}
	u.WalletBalance -= amount
	return true, nil
}

func newWalletFixture(balance float64) (wallet.WalletService, *entities.User) {
	u := &entities.User{ID: uuid.New(), Username: "asha", WalletBalance: balance}
	repo := &fakeWalletRepo{users: map[string]*entities.User{u.ID.String(): u}}
	return wallet.NewWalletService(repo), u
}

func TestAddMoney(t *testing.T) {
	svc, u := newWalletFixture(10)

	res, err := svc.AddMoney(context.Background(), domain.AddMoneyRequest{Amount: 40}, u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, float64(50), res.WalletBalance)
	assert.Equal(t, "asha", res.Username)
}

func TestAddMoneyRejectsNonPositiveAmount(t *testing.T) {
	svc, u := newWalletFixture(10)

	_, err := svc.AddMoney(context.Background(), domain.AddMoneyRequest{Amount: 0}, u.ID.String())
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.AddMoney(context.Background(), domain.AddMoneyRequest{Amount: -5}, u.ID.String())
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	assert.Equal(t, float64(10), u.WalletBalance)
}

func TestDeductMoney(t *testing.T) {
	svc, u := newWalletFixture(50)

	res, err := svc.DeductMoney(context.Background(), domain.DeductMoneyRequest{Amount: 20}, u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, float64(30), res.WalletBalance)
}

func TestDeductMoneyNeverOverdraws(t *testing.T) {
	svc, u := newWalletFixture(15)

	_, err := svc.DeductMoney(context.Background(), domain.DeductMoneyRequest{Amount: 20}, u.ID.String())
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, float64(15), u.WalletBalance)

	// Draining to exactly zero is allowed.
	res, err := svc.DeductMoney(context.Background(), domain.DeductMoneyRequest{Amount: 15}, u.ID.String())
	require.NoError(t, err)
	assert.Equal(t, float64(0), res.WalletBalance)
}

func TestGetWalletUnknownUser(t *testing.T) {
	svc, _ := newWalletFixture(0)

	_, err := svc.GetWallet(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
