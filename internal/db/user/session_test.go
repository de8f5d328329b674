package user

import (
	"context"
	"pms/internal/core/domain/user"
	"pms/internal/db"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

type sessionTestSuite struct {
	suite.Suite
	pool     *pgxpool.Pool
	users    *PgxUserRepository
	sessions *PgxSessionRepository
}

func (suite *sessionTestSuite) SetupSuite() {
	suite.pool = db.CreateTestPool(suite.T())
	suite.users = NewPgxRepository(suite.pool)
	suite.sessions = NewPgxSessionRepository(suite.pool)
}

func (suite *sessionTestSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *sessionTestSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxSessionRepository(t *testing.T) {
	suite.Run(t, new(sessionTestSuite))
}

func (suite *sessionTestSuite) createUserWithSessions(tokens ...user.SessionToken) user.User {
	ctx := context.Background()
	u, err := suite.users.Create(ctx, user.CreateUserInput{
		Name:         "Alice",
		Email:        EMAIL,
		PasswordHash: PASSWORD_HASH,
		Role:         user.RoleDeveloper,
		IsActive:     true,
		CreatedAt:    NOW,
	})
	suite.Require().Nil(err)
	for _, token := range tokens {
		err := suite.sessions.Create(ctx, user.CreateSessionInput{UserID: u.ID, Token: token, CreatedAt: NOW})
		suite.Require().Nil(err)
	}
	return u
}

func (suite *sessionTestSuite) TestGetUserByToken() {
	u := suite.createUserWithSessions("token-1")

	found, err := suite.sessions.GetUserByToken(context.Background(), "token-1")

	suite.Require().Nil(err)
	suite.Require().Equal(u, found)

	_, err = suite.sessions.GetUserByToken(context.Background(), "unknown")
	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *sessionTestSuite) TestDelete() {
	u := suite.createUserWithSessions("token-1")

	userID, err := suite.sessions.Delete(context.Background(), "token-1")
	suite.Require().Nil(err)
	suite.Require().Equal(u.ID, userID)

	_, err = suite.sessions.Delete(context.Background(), "token-1")
	suite.Require().ErrorIs(err, user.ErrSessionDoesNotExist)
}

func (suite *sessionTestSuite) TestDeleteAllForUser() {
	suite.createUserWithSessions("token-1", "token-2")
	u, err := suite.sessions.GetUserByToken(context.Background(), "token-1")
	suite.Require().Nil(err)

	err = suite.sessions.DeleteAllForUser(context.Background(), u.ID)
	suite.Require().Nil(err)

	for _, token := range []user.SessionToken{"token-1", "token-2"} {
		_, err = suite.sessions.GetUserByToken(context.Background(), token)
		suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
	}
}

func (suite *sessionTestSuite) TestDeleteAllForUserExcept() {
	u := suite.createUserWithSessions("token-1", "token-2", "token-3")

	err := suite.sessions.DeleteAllForUserExcept(context.Background(), u.ID, "token-2")
	suite.Require().Nil(err)

	kept, err := suite.sessions.GetUserByToken(context.Background(), "token-2")
	suite.Require().Nil(err)
	suite.Require().Equal(u.ID, kept.ID)
	for _, token := range []user.SessionToken{"token-1", "token-3"} {
		_, err = suite.sessions.GetUserByToken(context.Background(), token)
		suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
	}
}

func (suite *sessionTestSuite) TestDeletingUserDropsSessions() {
	u := suite.createUserWithSessions("token-1")

	suite.Require().Nil(suite.users.Delete(context.Background(), u.ID))

	_, err := suite.sessions.GetUserByToken(context.Background(), "token-1")
	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}
