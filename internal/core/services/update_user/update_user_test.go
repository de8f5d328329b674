package updateuser

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

const SYSTEM_ADMIN = c.Email("root@pms.local")

type testSuite struct {
	suite.Suite
	Logger         *logging.FakeLogger
	UserRepository *user.FakeUserRepository
	Admin          user.User
	SystemAdmin    user.User
	Developer      user.User
	Service        services.Service[Input, Result]
}

func (suite *testSuite) SetupTest() {
	suite.Logger = logging.NewFakeLogger()
	suite.UserRepository = user.NewFakeUserRepository()
	suite.Admin = suite.createUser("admin@example.com", user.RoleAdmin)
	suite.SystemAdmin = suite.createUser(SYSTEM_ADMIN, user.RoleAdmin)
	suite.Developer = suite.createUser("dev@example.com", user.RoleDeveloper)
	suite.Service = New(suite.Logger, suite.UserRepository, SYSTEM_ADMIN)
}

func (suite *testSuite) createUser(email c.Email, role user.Role) user.User {
	u, err := suite.UserRepository.Create(context.Background(), user.CreateUserInput{
		Name:         "User",
		Email:        email,
		PasswordHash: "hash",
		Role:         role,
		Department:   "Platform",
		IsActive:     true,
		CreatedAt:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})
	suite.Require().Nil(err)
	return u
}

func TestUpdateUserService(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (suite *testSuite) TestAdminUpdatesGivenFields() {
	result, err := suite.Service.Run(context.Background(), Input{
		ID:       suite.Developer.ID,
		Role:     c.NewOptional(user.RoleManager, true),
		IsActive: c.NewOptional(false, true),
		User:     suite.Admin,
	})

	assert := suite.Require()
	assert.Nil(err)
	assert.Equal(user.RoleManager, result.User.Role)
	assert.False(result.User.IsActive)
	assert.Equal("User", result.User.Name)
	assert.Equal("Platform", result.User.Department)
	assert.Equal(c.Email("dev@example.com"), result.User.Email)
}

func (suite *testSuite) TestEmptyDepartmentIsApplied() {
	result, err := suite.Service.Run(context.Background(), Input{
		ID:         suite.Developer.ID,
		Department: c.NewOptional("", true),
		User:       suite.Admin,
	})

	suite.Require().Nil(err)
	suite.Require().Equal("", result.User.Department)
}

func (suite *testSuite) TestSameEmailIsNotADuplicate() {
	_, err := suite.Service.Run(context.Background(), Input{
		ID:    suite.Developer.ID,
		Email: c.NewOptional(suite.Developer.Email, true),
		User:  suite.Admin,
	})

	suite.Require().Nil(err)
}

func (suite *testSuite) TestEmailInUse() {
	_, err := suite.Service.Run(context.Background(), Input{
		ID:    suite.Developer.ID,
		Email: c.NewOptional(suite.Admin.Email, true),
		User:  suite.Admin,
	})

	suite.Require().ErrorIs(err, user.ErrEmailAlreadyExists)
}

func (suite *testSuite) TestNonAdminIsRejected() {
	for _, caller := range []user.User{suite.Developer, {ID: 99, Role: user.RoleManager}} {
		_, err := suite.Service.Run(context.Background(), Input{
			ID:   suite.Developer.ID,
			Name: c.NewOptional("Mallory", true),
			User: caller,
		})

		suite.Require().ErrorIs(err, user.ErrNotAllowed)
	}
	u, err := suite.UserRepository.GetByID(context.Background(), suite.Developer.ID)
	suite.Require().Nil(err)
	suite.Require().Equal("User", u.Name)
}

func (suite *testSuite) TestSystemAdministratorIsProtected() {
	_, err := suite.Service.Run(context.Background(), Input{
		ID:       suite.SystemAdmin.ID,
		IsActive: c.NewOptional(false, true),
		User:     suite.Admin,
	})

	suite.Require().ErrorIs(err, user.ErrSystemAdministrator)
}

func (suite *testSuite) TestGuardDisabledWithoutSystemAdministrator() {
	service := New(suite.Logger, suite.UserRepository, "")

	result, err := service.Run(context.Background(), Input{
		ID:   suite.SystemAdmin.ID,
		Name: c.NewOptional("Root", true),
		User: suite.Admin,
	})

	suite.Require().Nil(err)
	suite.Require().Equal("Root", result.User.Name)
}

func (suite *testSuite) TestUnknownUser() {
	_, err := suite.Service.Run(context.Background(), Input{ID: 404, User: suite.Admin})

	suite.Require().ErrorIs(err, user.ErrUserDoesNotExist)
}

func (suite *testSuite) TestRepositoryError() {
	suite.UserRepository.ReturnError = true

	_, err := suite.Service.Run(context.Background(), Input{ID: suite.Developer.ID, User: suite.Admin})

	suite.Require().Error(err)
	suite.Require().Equal(1, suite.Logger.CountByLevel(logging.ERROR))
}
