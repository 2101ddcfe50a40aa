package accounts

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ayodelep/weathercat/pkg/common"
	"github.com/ayodelep/weathercat/pkg/config"
	"github.com/ayodelep/weathercat/pkg/logger"
)

func init() {
	_ = logger.Init("development")
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) CreateUser(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *mockRepo) UpdatePasswordHash(ctx context.Context, username, hash string) error {
	args := m.Called(ctx, username, hash)
	return args.Error(0)
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "test-secret", Expiration: 1}
}

func TestCreateAccount(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, testJWTConfig())

	repo.On("CreateUser", mock.Anything, mock.AnythingOfType("*accounts.User")).Return(nil)

	user, err := svc.CreateAccount(context.Background(), "ayo", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "ayo", user.Username)
	assert.NotEmpty(t, user.Salt)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "hunter2", user.PasswordHash)
}

func TestCreateAccountMissingFields(t *testing.T) {
	svc := NewService(new(mockRepo), testJWTConfig())

	_, err := svc.CreateAccount(context.Background(), "", "hunter2")
	assert.True(t, common.IsCode(err, common.CodeValidation))

	_, err = svc.CreateAccount(context.Background(), "ayo", "")
	assert.True(t, common.IsCode(err, common.CodeValidation))
}

func TestCreateAccountDuplicate(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, testJWTConfig())

	repo.On("CreateUser", mock.Anything, mock.Anything).
		Return(common.NewDuplicateError("username %s already exists", "ayo"))

	_, err := svc.CreateAccount(context.Background(), "ayo", "hunter2")
	assert.True(t, common.IsCode(err, common.CodeDuplicate))
}

func TestLogin(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, testJWTConfig())

	repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil)
	user, err := svc.CreateAccount(context.Background(), "ayo", "hunter2")
	require.NoError(t, err)

	repo.On("GetUserByUsername", mock.Anything, "ayo").Return(user, nil)

	resp, err := svc.Login(context.Background(), "ayo", "hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	token, err := jwt.Parse(resp.Token, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "ayo", claims["sub"])
}

func TestLoginWrongPassword(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, testJWTConfig())

	repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil)
	user, err := svc.CreateAccount(context.Background(), "ayo", "hunter2")
	require.NoError(t, err)

	repo.On("GetUserByUsername", mock.Anything, "ayo").Return(user, nil)

	_, err = svc.Login(context.Background(), "ayo", "wrong")
	assert.True(t, common.IsCode(err, common.CodeUnauthorized))
}

func TestLoginUnknownUser(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, testJWTConfig())

	repo.On("GetUserByUsername", mock.Anything, "ghost").
		Return(nil, common.NewNotFoundError("user %s not found", "ghost"))

	// Unknown users and wrong passwords are indistinguishable to callers
	_, err := svc.Login(context.Background(), "ghost", "hunter2")
	assert.True(t, common.IsCode(err, common.CodeUnauthorized))
}

func TestUpdatePassword(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, testJWTConfig())

	repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil)
	user, err := svc.CreateAccount(context.Background(), "ayo", "hunter2")
	require.NoError(t, err)

	repo.On("GetUserByUsername", mock.Anything, "ayo").Return(user, nil)
	repo.On("UpdatePasswordHash", mock.Anything, "ayo", mock.AnythingOfType("string")).Return(nil)

	err = svc.UpdatePassword(context.Background(), "ayo", "hunter2", "correct-horse")
	require.NoError(t, err)
	repo.AssertCalled(t, "UpdatePasswordHash", mock.Anything, "ayo", mock.AnythingOfType("string"))
}

func TestUpdatePasswordWrongOldPassword(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, testJWTConfig())

	repo.On("CreateUser", mock.Anything, mock.Anything).Return(nil)
	user, err := svc.CreateAccount(context.Background(), "ayo", "hunter2")
	require.NoError(t, err)

	repo.On("GetUserByUsername", mock.Anything, "ayo").Return(user, nil)

	err = svc.UpdatePassword(context.Background(), "ayo", "wrong", "correct-horse")
	assert.True(t, common.IsCode(err, common.CodeUnauthorized))
	repo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}
