package repositories

import (
	"context"
	"testing"

	"medivision/internal/common"
	"medivision/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    UserRepository
	context context.Context
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewUserRepository(mock)
	suite.context = context.Background()
}

func (suite *UserRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func (suite *UserRepoTestSuite) TestGetByUsername_Success() {
	id := uuid.New()
	rows := pgxmock.NewRows([]string{"id", "username", "password_hash", "company", "role",
		"is_active", "profile_pic"}).
		AddRow(id, "asha", "$2a$10$hash", "MediVision", "admin", true, nil)

	suite.mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("asha").
		WillReturnRows(rows)

	user, err := suite.repo.GetByUsername(suite.context, "asha")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), id, user.ID)
	assert.Equal(suite.T(), "admin", user.Role)
}

func (suite *UserRepoTestSuite) TestGetByUsername_NotFound() {
	suite.mock.ExpectQuery(`FROM users WHERE username = \$1`).
		WithArgs("nobody").
		WillReturnError(pgx.ErrNoRows)

	user, err := suite.repo.GetByUsername(suite.context, "nobody")
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	assert.Nil(suite.T(), user)
}

func (suite *UserRepoTestSuite) TestCreate_Success() {
	user := &models.User{
		ID:           uuid.New(),
		Username:     "ravi",
		PasswordHash: "$2a$10$hash",
		Company:      "MediVision",
		Role:         "staff",
	}

	suite.mock.ExpectExec(`INSERT INTO users`).
		WithArgs(user.ID, user.Username, user.PasswordHash, user.Company, user.Role,
			user.IsActive, user.ProfilePic).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, user)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestSetActive() {
	suite.mock.ExpectExec(`UPDATE users SET is_active = \$1 WHERE username = \$2`).
		WithArgs(true, "asha").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err := suite.repo.SetActive(suite.context, "asha", true)
	assert.NoError(suite.T(), err)
}

func (suite *UserRepoTestSuite) TestDelete_NotFound() {
	suite.mock.ExpectExec(`DELETE FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := suite.repo.Delete(suite.context, "ghost")
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}
