package resetpassword

import (
	"context"
	"errors"
	"pms/internal/core/domain/logging"
	uow "pms/internal/core/domain/unit_of_work"
	"pms/internal/core/domain/user"
	"pms/internal/core/services"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

const (
	EMAIL         = "alice@example.com"
	OLD_PASSWORD  = user.RawPassword("old-password-1")
	NEW_PASSWORD  = user.RawPassword("new-password-2")
	TOKEN         = user.PasswordResetToken("9e2f4a6c8b0d1e3f5a7c9b2d4f6e8a0c1b3d5f7e9a2c4b6d8f0e1a3c5b7d9f2e")
	SESSION_TOKEN = user.SessionToken("session-token")
)

var NOW time.Time = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UnitOfWork     *uow.FakeUnitOfWork
	TokenHasher    *user.FakePasswordResetTokenHasher
	PasswordHasher *user.FakePasswordHasher
	Now            time.Time
	User           user.User
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UnitOfWork = uow.NewFakeUnitOfWork()
	suite.TokenHasher = user.NewFakePasswordResetTokenHasher()
	suite.PasswordHasher = user.NewFakePasswordHasher()
	suite.Now = NOW
	suite.Service = New(
		suite.Logger,
		suite.UnitOfWork,
		suite.TokenHasher,
		suite.PasswordHasher,
		func() time.Time { return suite.Now },
	)

	ctx := context.Background()
	oldHash, err := suite.PasswordHasher.HashPassword(OLD_PASSWORD)
	suite.Require().Nil(err)
	u, err := suite.users().Create(ctx, user.CreateUserInput{
		Name:         "Alice",
		Email:        EMAIL,
		PasswordHash: oldHash,
		Role:         user.RoleDeveloper,
		IsActive:     true,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	err = suite.users().SetPasswordResetToken(ctx, u.ID, suite.TokenHasher.HashToken(TOKEN), NOW.Add(10*time.Minute))
	suite.Require().Nil(err)
	err = suite.UnitOfWork.Context.SessionRepository.Create(ctx, user.CreateSessionInput{
		UserID:    u.ID,
		Token:     SESSION_TOKEN,
		CreatedAt: NOW,
	})
	suite.Require().Nil(err)
	suite.User = u
}

func TestResetPasswordService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) users() *user.FakeUserRepository {
	return suite.UnitOfWork.Context.UserRepository
}

func (suite *testSuite) storedUser() user.User {
	u, err := suite.users().GetByID(context.Background(), suite.User.ID)
	suite.Require().Nil(err)
	return u
}

func (suite *testSuite) TestSuccess() {
	result, err := suite.Service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(Message, result.Message)
	assert.True(suite.UnitOfWork.Context.WasCommitCalled)

	u := suite.storedUser()
	assert.True(suite.PasswordHasher.ValidatePassword(NEW_PASSWORD, u.PasswordHash))
	assert.False(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, u.PasswordHash))
	assert.False(u.ResetTokenHash.IsPresent)
	assert.False(u.ResetTokenExpiresAt.IsPresent)
	assert.Nil(u.Validate())
}

func (suite *testSuite) TestSessionsAreRevoked() {
	_, err := suite.Service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(0, suite.UnitOfWork.Context.SessionRepository.CountForUser(suite.User.ID))
}

func (suite *testSuite) TestTokenCanBeUsedOnce() {
	_, err := suite.Service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})
	suite.Require().Nil(err)

	_, err = suite.Service.Run(context.Background(), Input{Token: TOKEN, NewPassword: "another-password-3"})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
	assert.True(suite.PasswordHasher.ValidatePassword(NEW_PASSWORD, suite.storedUser().PasswordHash))
}

func (suite *testSuite) TestExpiredToken() {
	suite.Now = NOW.Add(11 * time.Minute)

	_, err := suite.Service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.PasswordHasher.ValidatePassword(OLD_PASSWORD, suite.storedUser().PasswordHash))
}

func (suite *testSuite) TestTokenIsInvalidAtExactExpiry() {
	suite.Now = NOW.Add(10 * time.Minute)

	_, err := suite.Service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	suite.Require().ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
}

func (suite *testSuite) TestTokenIsValidJustBeforeExpiry() {
	suite.Now = NOW.Add(10*time.Minute - time.Second)

	_, err := suite.Service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	suite.Require().Nil(err)
}

func (suite *testSuite) TestUnknownToken() {
	_, err := suite.Service.Run(
		context.Background(),
		Input{Token: user.PasswordResetToken("unknown"), NewPassword: NEW_PASSWORD},
	)

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
	assert.True(suite.storedUser().HasPendingReset())
	assert.Equal(1, suite.UnitOfWork.Context.SessionRepository.CountForUser(suite.User.ID))
}

func (suite *testSuite) TestEmptyToken() {
	_, err := suite.Service.Run(context.Background(), Input{Token: "", NewPassword: NEW_PASSWORD})

	suite.Require().ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
}

func (suite *testSuite) TestReplacedTokenIsRejected() {
	newer := user.PasswordResetToken("newer-token")
	err := suite.users().SetPasswordResetToken(
		context.Background(), suite.User.ID, suite.TokenHasher.HashToken(newer), NOW.Add(10*time.Minute),
	)
	suite.Require().Nil(err)

	_, err = suite.Service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})
	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)

	_, err = suite.Service.Run(context.Background(), Input{Token: newer, NewPassword: NEW_PASSWORD})
	assert.Nil(err)
}

func (suite *testSuite) TestConcurrentConsumerLoses() {
	racing := &racingUnitOfWork{
		FakeUnitOfWork: suite.UnitOfWork,
		hash:           suite.TokenHasher.HashToken(TOKEN),
		winner:         user.PasswordHash("winner"),
	}
	service := New(
		suite.Logger,
		racing,
		suite.TokenHasher,
		suite.PasswordHasher,
		func() time.Time { return NOW },
	)

	_, err := service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.ErrorIs(err, user.ErrInvalidOrExpiredPasswordResetToken)
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.Equal(user.PasswordHash("winner"), suite.storedUser().PasswordHash)
}

func (suite *testSuite) TestRepositoryError() {
	suite.users().ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.False(errors.Is(err, user.ErrInvalidOrExpiredPasswordResetToken))
	assert.Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}

func (suite *testSuite) TestSessionRevocationErrorRollsBack() {
	suite.UnitOfWork.Context.SessionRepository.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	assert := suite.Require()
	assert.NotNil(err)
	assert.False(suite.UnitOfWork.Context.WasCommitCalled)
	assert.True(suite.UnitOfWork.Context.WasRollbackCalled)
}

func (suite *testSuite) TestBeginError() {
	suite.UnitOfWork.BeginReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{Token: TOKEN, NewPassword: NEW_PASSWORD})

	suite.Require().NotNil(err)
}

// racingUnitOfWork lets another consumer redeem the token right after the
// lookup succeeds.
type racingUnitOfWork struct {
	*uow.FakeUnitOfWork
	hash   user.PasswordResetTokenHash
	winner user.PasswordHash
}

func (u *racingUnitOfWork) Begin(ctx context.Context) (uow.Context, error) {
	return &racingContext{FakeUnitOfWorkContext: u.Context, owner: u}, nil
}

type racingContext struct {
	*uow.FakeUnitOfWorkContext
	owner *racingUnitOfWork
}

func (c *racingContext) Users() user.UserRepository {
	return &racingUserRepository{FakeUserRepository: c.UserRepository, owner: c.owner}
}

type racingUserRepository struct {
	*user.FakeUserRepository
	owner *racingUnitOfWork
}

func (r *racingUserRepository) GetByPasswordResetTokenHash(
	ctx context.Context,
	hash user.PasswordResetTokenHash,
	now time.Time,
) (user.User, error) {
	u, err := r.FakeUserRepository.GetByPasswordResetTokenHash(ctx, hash, now)
	if err != nil {
		return u, err
	}
	_, err = r.FakeUserRepository.ResetPassword(ctx, r.owner.hash, r.owner.winner, now)
	return u, err
}
