package services

import (
	"testing"
	"time"

	"rental_erp/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[string]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*models.User{}}
}

func (r *stubUserRepo) Create(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(id string) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetByEmail(email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) Update(user *models.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) ExistsByEmail(email string) (bool, error) {
	_, err := r.GetByEmail(email)
	if err != nil {
		return false, nil
	}
	return true, nil
}

type authFixture struct {
	svc          AuthService
	userRepo     *stubUserRepo
	customerRepo *stubCustomerRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	userRepo := newStubUserRepo()
	customerRepo := newStubCustomerRepo()
	customerRepo.userRepo = userRepo
	return &authFixture{
		svc:          NewAuthService(userRepo, customerRepo, "test-secret", time.Hour),
		userRepo:     userRepo,
		customerRepo: customerRepo,
	}
}

func registerInput() RegisterInput {
	return RegisterInput{
		Email:     "jane@example.com",
		Password:  "supersecret",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestRegisterCreatesCustomerProfile(t *testing.T) {
	f := newAuthFixture(t)

	token, user, err := f.svc.Register(registerInput())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, models.UserTypeCustomer, user.UserType)
	assert.Equal(t, models.UserStatusActive, user.Status)

	// Password is stored hashed, never verbatim.
	assert.NotEqual(t, "supersecret", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))

	customer, ok := f.customerRepo.customers[user.ID]
	require.True(t, ok, "customer profile must share the user id")
	assert.Regexp(t, `^CUST[0-9A-F]{8}$`, customer.CustomerNumber)
}

func TestRegisterStaffSkipsCustomerProfile(t *testing.T) {
	f := newAuthFixture(t)

	input := registerInput()
	input.UserType = models.UserTypeAgent

	_, user, err := f.svc.Register(input)
	require.NoError(t, err)
	assert.Equal(t, models.UserTypeAgent, user.UserType)
	assert.Empty(t, f.customerRepo.customers)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.svc.Register(registerInput())
	require.NoError(t, err)

	_, _, err = f.svc.Register(registerInput())
	assert.ErrorIs(t, err, ErrConflict)
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)

	_, registered, err := f.svc.Register(registerInput())
	require.NoError(t, err)

	token, user, err := f.svc.Login("jane@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, registered.ID, user.ID)
	assert.NotNil(t, user.LastLoginAt)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.svc.Register(registerInput())
	require.NoError(t, err)

	_, _, err = f.svc.Login("jane@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)

	_, _, err := f.svc.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLoginSuspendedAccount(t *testing.T) {
	f := newAuthFixture(t)

	_, user, err := f.svc.Register(registerInput())
	require.NoError(t, err)

	user.Status = models.UserStatusSuspended
	require.NoError(t, f.userRepo.Update(user))

	_, _, err = f.svc.Login("jane@example.com", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestValidateToken(t *testing.T) {
	f := newAuthFixture(t)

	token, user, err := f.svc.Register(registerInput())
	require.NoError(t, err)

	claims, err := f.svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.UserTypeCustomer, claims.UserType)
}

func TestValidateTokenRejectsForeignSecret(t *testing.T) {
	f := newAuthFixture(t)
	other := NewAuthService(newStubUserRepo(), newStubCustomerRepo(), "different-secret", time.Hour)

	token, _, err := f.svc.Register(registerInput())
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestChangePassword(t *testing.T) {
	f := newAuthFixture(t)

	_, user, err := f.svc.Register(registerInput())
	require.NoError(t, err)

	err = f.svc.ChangePassword(user.ID, "wrong", "newpassword1")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = f.svc.ChangePassword(user.ID, "supersecret", "short")
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, f.svc.ChangePassword(user.ID, "supersecret", "newpassword1"))

	_, _, err = f.svc.Login("jane@example.com", "newpassword1")
	assert.NoError(t, err)
}
