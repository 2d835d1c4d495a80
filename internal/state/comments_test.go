package state

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teamboard/internal/api"
	"teamboard/internal/models"
	"teamboard/internal/notify"
)

func newCommentStore(t *testing.T) (*CommentStore, *MockAPI, *notify.Recorder) {
	t.Helper()
	mockAPI := new(MockAPI)
	recorder := new(notify.Recorder)
	return NewCommentStore(mockAPI, recorder), mockAPI, recorder
}

func TestCommentStoreLoad(t *testing.T) {
	t.Run("success replaces the collection", func(t *testing.T) {
		store, mockAPI, _ := newCommentStore(t)
		comments := []models.Comment{
			{ID: 1, TaskID: 5, UserID: 2, Body: "looks good", AuthorName: "Dana"},
		}
		mockAPI.On("ListComments", mock.Anything, int64(5)).Return(comments, nil).Once()

		require.NoError(t, store.Load(context.Background(), 5))

		assert.Equal(t, comments, store.Comments())
		assert.False(t, store.Loading())
	})

	t.Run("the previous task's comments never linger", func(t *testing.T) {
		store, mockAPI, _ := newCommentStore(t)
		mockAPI.On("ListComments", mock.Anything, int64(5)).
			Return([]models.Comment{{ID: 1, TaskID: 5, Body: "old"}}, nil).Once()
		require.NoError(t, store.Load(context.Background(), 5))

		mockAPI.On("ListComments", mock.Anything, int64(6)).
			Return(nil, &api.Error{Status: 500}).Once()
		require.Error(t, store.Load(context.Background(), 6))

		assert.Empty(t, store.Comments())
	})

	t.Run("central statuses are not double-notified", func(t *testing.T) {
		store, mockAPI, recorder := newCommentStore(t)
		mockAPI.On("ListComments", mock.Anything, int64(5)).
			Return(nil, &api.Error{Status: 404}).Once()

		require.Error(t, store.Load(context.Background(), 5))
		assert.Empty(t, recorder.Errors())
	})
}

func TestCommentStoreAdd(t *testing.T) {
	t.Run("success appends the server entity", func(t *testing.T) {
		store, mockAPI, recorder := newCommentStore(t)
		created := &models.Comment{ID: 2, TaskID: 5, Body: "done", AuthorName: "Dana"}
		mockAPI.On("CreateComment", mock.Anything, models.CreateCommentPayload{TaskID: 5, Body: "done"}).
			Return(created, nil).Once()

		require.NoError(t, store.Add(context.Background(), 5, "done"))

		require.Len(t, store.Comments(), 1)
		assert.Equal(t, *created, store.Comments()[0])
		all := recorder.All()
		require.Len(t, all, 1)
		assert.Equal(t, notify.LevelSuccess, all[0].Level)
	})

	t.Run("the body is trimmed before sending", func(t *testing.T) {
		store, mockAPI, _ := newCommentStore(t)
		created := &models.Comment{ID: 2, TaskID: 5, Body: "done"}
		mockAPI.On("CreateComment", mock.Anything, models.CreateCommentPayload{TaskID: 5, Body: "done"}).
			Return(created, nil).Once()

		require.NoError(t, store.Add(context.Background(), 5, "  done \n"))
		mockAPI.AssertExpectations(t)
	})

	t.Run("a blank body never reaches the server", func(t *testing.T) {
		store, mockAPI, recorder := newCommentStore(t)

		err := store.Add(context.Background(), 5, "   \t ")

		require.ErrorIs(t, err, ErrEmptyComment)
		assert.Empty(t, store.Comments())
		assert.Equal(t, []string{"Can't post an empty comment"}, recorder.Errors())
		mockAPI.AssertNotCalled(t, "CreateComment", mock.Anything, mock.Anything)
	})

	t.Run("failure leaves the collection untouched", func(t *testing.T) {
		store, mockAPI, recorder := newCommentStore(t)
		mockAPI.On("CreateComment", mock.Anything, mock.Anything).
			Return(nil, &api.Error{Status: 422, Message: "body too long"}).Once()

		require.Error(t, store.Add(context.Background(), 5, "x"))

		assert.Empty(t, store.Comments())
		assert.False(t, store.Loading())
		assert.Equal(t, []string{"body too long"}, recorder.Errors())
	})
}

func TestCommentStoreClear(t *testing.T) {
	store, mockAPI, _ := newCommentStore(t)
	mockAPI.On("ListComments", mock.Anything, int64(5)).
		Return([]models.Comment{{ID: 1, TaskID: 5, Body: "hi"}}, nil).Once()
	require.NoError(t, store.Load(context.Background(), 5))

	store.Clear()

	assert.Empty(t, store.Comments())
}
