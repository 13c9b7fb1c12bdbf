package chatdb_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/chatroom/chat-service/internal/config"
	"github.com/chatroom/chat-service/internal/core/docdb"
	"github.com/chatroom/chat-service/internal/domain/models"
	"github.com/chatroom/chat-service/internal/services/chatdb"
	"github.com/chatroom/chat-service/internal/testutil/mocks"
)

// mockedRepository wires a repository to a single mocked session whose Close
// must be called exactly once.
func mockedRepository(t *testing.T, table string) (*chatdb.Repository, *mocks.MockSession, *mocks.MockTable) {
	t.Helper()

	mockTable := &mocks.MockTable{}
	session := &mocks.MockSession{}
	session.On("ID").Return("conn-1")
	session.On("Table", "chat", table).Return(mockTable)
	session.On("Close", mock.Anything).Return(nil).Once()

	provider := &mocks.MockProvider{}
	provider.On("Acquire", mock.Anything).Return(session, nil).Once()

	repo, err := chatdb.NewRepository(provider, config.Default().Store, chatdb.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	t.Cleanup(func() {
		provider.AssertExpectations(t)
		session.AssertExpectations(t)
		mockTable.AssertExpectations(t)
	})
	return repo, session, mockTable
}

func TestFindUserByEmail_CursorPullFails(t *testing.T) {
	repo, _, table := mockedRepository(t, "users")
	cursor := &mocks.MockCursor{}
	cursor.On("Next", mock.Anything).Return(false)
	cursor.On("Err").Return(errors.New("cursor broke"))
	cursor.On("Close", mock.Anything).Return(nil)
	table.On("Find", mock.Anything, map[string]interface{}{"mail": "a@b.com"}, &docdb.FindOptions{Limit: 1}).Return(cursor, nil)

	user, err := repo.FindUserByEmail(context.Background(), "a@b.com")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestFindUserByEmail_DecodeFails(t *testing.T) {
	repo, _, table := mockedRepository(t, "users")
	cursor := &mocks.MockCursor{}
	cursor.On("Next", mock.Anything).Return(true)
	cursor.On("Decode", mock.Anything).Return(errors.New("bad document"))
	cursor.On("Close", mock.Anything).Return(nil)
	table.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(cursor, nil)

	user, err := repo.FindUserByEmail(context.Background(), "a@b.com")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestFindUserByEmail_SurfacesRawStoreError(t *testing.T) {
	repo, _, table := mockedRepository(t, "users")
	storeErr := errors.New("ReqlOpFailedError: table missing")
	table.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, storeErr)

	user, err := repo.FindUserByEmail(context.Background(), "a@b.com")

	assert.Same(t, storeErr, err)
	assert.Nil(t, user)
}

func TestFindUserByID_QueryErrorDegrades(t *testing.T) {
	repo, _, table := mockedRepository(t, "users")
	result := &mocks.MockSingleResult{}
	result.On("Err").Return(errors.New("lookup failed"))
	table.On("Get", mock.Anything, "7").Return(result)

	user, err := repo.FindUserByID(context.Background(), "7")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestFindUserByID_DecodeFails(t *testing.T) {
	repo, _, table := mockedRepository(t, "users")
	result := &mocks.MockSingleResult{}
	result.On("Err").Return(nil)
	result.On("Decode", mock.Anything).Return(errors.New("bad document"))
	table.On("Get", mock.Anything, "7").Return(result)

	user, err := repo.FindUserByID(context.Background(), "7")

	assert.NoError(t, err)
	assert.Nil(t, user)
}

func TestFindMessages_MaterialiseFails(t *testing.T) {
	repo, _, table := mockedRepository(t, "messages")
	cursor := &mocks.MockCursor{}
	cursor.On("All", mock.Anything, mock.Anything).Return(errors.New("network reset"))
	cursor.On("Close", mock.Anything).Return(nil)
	table.On("Find", mock.Anything, map[string]interface{}(nil), &docdb.FindOptions{
		Limit: 3,
		Sort:  []docdb.SortField{docdb.Desc("timestamp")},
	}).Return(cursor, nil)

	messages, err := repo.FindMessages(context.Background(), 3)

	assert.NoError(t, err)
	assert.NotNil(t, messages)
	assert.Empty(t, messages)
}

func TestFindMessages_QueryFails(t *testing.T) {
	repo, _, table := mockedRepository(t, "messages")
	table.On("Find", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("boom"))

	messages, err := repo.FindMessages(context.Background(), 3)

	assert.NoError(t, err)
	assert.Empty(t, messages)
}

func TestSaveMessage_SurfacesRawStoreError(t *testing.T) {
	repo, _, table := mockedRepository(t, "messages")
	storeErr := errors.New("write failed")
	table.On("Insert", mock.Anything, mock.Anything).Return(nil, storeErr)

	ok, err := repo.SaveMessage(context.Background(), &models.Message{Content: "m"})

	assert.Same(t, storeErr, err)
	assert.False(t, ok)
}

func TestSaveUser_ZeroInserted(t *testing.T) {
	repo, _, table := mockedRepository(t, "users")
	table.On("Insert", mock.Anything, mock.Anything).Return(&docdb.InsertResult{Errors: 1, FirstError: "conflict"}, nil)

	ok, err := repo.SaveUser(context.Background(), &models.User{ID: "1"})

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveUser_MoreThanOneInserted(t *testing.T) {
	repo, _, table := mockedRepository(t, "users")
	table.On("Insert", mock.Anything, mock.Anything).Return(&docdb.InsertResult{Inserted: 2}, nil)

	ok, err := repo.SaveUser(context.Background(), &models.User{ID: "1"})

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSessionClosedWhenQueryPanics(t *testing.T) {
	repo, _, table := mockedRepository(t, "messages")
	table.On("Insert", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		panic("driver bug")
	})

	assert.Panics(t, func() {
		_, _ = repo.SaveMessage(context.Background(), &models.Message{Content: "m"})
	})
}

func TestSessionCloseErrorIsNotSurfaced(t *testing.T) {
	mockTable := &mocks.MockTable{}
	session := &mocks.MockSession{}
	session.On("ID").Return("conn-1")
	session.On("Table", "chat", "messages").Return(mockTable)
	session.On("Close", mock.Anything).Return(errors.New("already closed")).Once()
	mockTable.On("Insert", mock.Anything, mock.Anything).Return(&docdb.InsertResult{Inserted: 1}, nil)

	provider := &mocks.MockProvider{}
	provider.On("Acquire", mock.Anything).Return(session, nil)

	repo, err := chatdb.NewRepository(provider, config.Default().Store, chatdb.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	ok, err := repo.SaveMessage(context.Background(), &models.Message{Content: "m"})

	assert.NoError(t, err)
	assert.True(t, ok)
	session.AssertExpectations(t)
}

func TestSetup_SwallowsAllErrors(t *testing.T) {
	session := &mocks.MockSession{}
	session.On("ID").Return("conn-1")
	session.On("CreateDatabase", mock.Anything, "chat").Return(errors.New("permission denied"))
	session.On("CreateTable", mock.Anything, "chat", "messages", "id").Return(errors.New("permission denied"))
	session.On("CreateTable", mock.Anything, "chat", "cache", "cid").Return(docdb.ErrTableExists)
	session.On("CreateTable", mock.Anything, "chat", "users", "id").Return(nil)
	session.On("Close", mock.Anything).Return(nil).Once()

	provider := &mocks.MockProvider{}
	provider.On("Acquire", mock.Anything).Return(session, nil)

	repo, err := chatdb.NewRepository(provider, config.Default().Store, chatdb.WithLogger(zerolog.Nop()))
	require.NoError(t, err)

	assert.NotPanics(t, func() { repo.Setup(context.Background()) })
	session.AssertExpectations(t)
}
