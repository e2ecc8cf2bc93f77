package repositories

import (
	"context"
	"testing"
	"time"

	"medivision/internal/models"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ChatRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    ChatRepository
	context context.Context
}

func (suite *ChatRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewChatRepository(mock)
	suite.context = context.Background()
}

func (suite *ChatRepoTestSuite) TearDownTest() {
	suite.mock.Close()
}

func TestChatRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ChatRepoTestSuite))
}

func (suite *ChatRepoTestSuite) TestCreate_FillsServerFields() {
	now := time.Now()
	msg := &models.ChatMessage{Sender: "asha", Receiver: "ravi", Message: "stock arrived"}

	suite.mock.ExpectQuery(`INSERT INTO chat_messages \(sender, receiver, message, timestamp, is_read\)`).
		WithArgs("asha", "ravi", "stock arrived").
		WillReturnRows(pgxmock.NewRows([]string{"id", "timestamp"}).AddRow(int64(9), now))

	err := suite.repo.Create(suite.context, msg)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(9), msg.ID)
	assert.Equal(suite.T(), now, msg.Timestamp)
	assert.False(suite.T(), msg.IsRead)
}

func (suite *ChatRepoTestSuite) TestConversation_BothDirectionsAscending() {
	t1 := time.Now().Add(-time.Hour)
	t2 := time.Now()
	rows := pgxmock.NewRows([]string{"id", "sender", "receiver", "message", "timestamp", "is_read"}).
		AddRow(int64(1), "asha", "ravi", "hello", t1, true).
		AddRow(int64(2), "ravi", "asha", "hi", t2, false)

	suite.mock.ExpectQuery(`WHERE \(sender = \$1 AND receiver = \$2\) OR \(sender = \$2 AND receiver = \$1\)`).
		WithArgs("asha", "ravi").
		WillReturnRows(rows)

	messages, err := suite.repo.Conversation(suite.context, "asha", "ravi")
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), messages, 2)
	assert.True(suite.T(), messages[0].Timestamp.Before(messages[1].Timestamp))
}

func (suite *ChatRepoTestSuite) TestMarkRead_OnlyOtherToViewer() {
	suite.mock.ExpectExec(`UPDATE chat_messages SET is_read = true`).
		WithArgs("ravi", "asha").
		WillReturnResult(pgxmock.NewResult("UPDATE", 4))

	err := suite.repo.MarkRead(suite.context, "ravi", "asha")
	assert.NoError(suite.T(), err)
}

func (suite *ChatRepoTestSuite) TestUnreadCount() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM chat_messages WHERE receiver = \$1 AND is_read = false`).
		WithArgs("asha").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	count, err := suite.repo.UnreadCount(suite.context, "asha")
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 3, count)
}
