package loginwithemail

import (
	"context"
	c "pms/internal/core/domain/common"
	"pms/internal/core/domain/logging"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = c.Email("alice@example.com")
	PASSWORD      = user.RawPassword("password-1")
	SESSION_TOKEN = "session-token"
)

var NOW time.Time = time.Now().UTC()

type testSuite struct {
	suite.Suite
	Logger            *logging.FakeLogger
	UserRepository    *user.FakeUserRepository
	SessionRepository *user.FakeSessionRepository
	PasswordHasher    *user.FakePasswordHasher
	Service           services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.SessionRepository = user.NewFakeSessionRepository(suite.UserRepository)
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Service = New(
		suite.Logger,
		suite.UserRepository,
		suite.SessionRepository,
		suite.PasswordHasher,
		user.NewFakeSessionTokenGenerator(SESSION_TOKEN),
		func() time.Time { return NOW },
	)
}

func TestLogInWithEmailService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) createUser(isActive bool) user.User {
	hash, err := suite.PasswordHasher.HashPassword(PASSWORD)
	suite.Require().Nil(err)
	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Name:         "Alice",
		Email:        EMAIL,
		PasswordHash: hash,
		Role:         user.RoleDeveloper,
		IsActive:     isActive,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) TestSuccess() {
	u := suite.createUser(true)

	result, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.SessionToken(SESSION_TOKEN), result.Token)
	assert.Equal(u.ID, result.User.ID)
	assert.Equal(1, suite.SessionRepository.CountForUser(u.ID))
}

func (suite *testSuite) TestInvalidPassword() {
	suite.createUser(true)

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: "wrong-password-1"})

	suite.Require().ErrorIs(err, user.ErrInvalidCredentials)
}

func (suite *testSuite) TestUnknownEmail() {
	_, err := suite.Service.Run(context.Background(), Input{Email: "bob@example.com", Password: PASSWORD})

	suite.Require().ErrorIs(err, user.ErrInvalidCredentials)
}

func (suite *testSuite) TestInactiveUser() {
	u := suite.createUser(false)

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: PASSWORD})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrUserIsNotActive)
	assert.Equal(0, suite.SessionRepository.CountForUser(u.ID))
}

func (suite *testSuite) TestRepositoryError() {
	suite.createUser(true)
	suite.UserRepository.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Email: EMAIL, Password: PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.NotErrorIs(err, user.ErrInvalidCredentials)
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}
